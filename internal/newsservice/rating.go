package newsservice

// ComputeRating is the author rating formula: post ratings weigh three times as much as comment ratings.
func ComputeRating(postsRating, commentsRating int) int {
	return 3*postsRating + commentsRating
}
