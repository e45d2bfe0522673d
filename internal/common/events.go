package common

// UserCreatedEvent is published on UserCreatedKey after signup.
type UserCreatedEvent struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// PostCreatedEvent is published on PostCreatedKey after a post is stored.
// Recipients are the subscribers of the post's categories.
type PostCreatedEvent struct {
	PostID     int      `json:"post_id"`
	Title      string   `json:"title"`
	Preview    string   `json:"preview"`
	Categories []string `json:"categories"`
	Recipients []string `json:"recipients"`
}
