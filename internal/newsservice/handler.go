package newsservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/metrics"
)

func NewNewsService(db *sql.DB, mb common.MessageProducer, c categoryCache, products productInvalidator, logger *slog.Logger, rec metrics.Recorder) *NewsService {
	return &NewsService{
		m:        newNewsModel(db),
		mb:       mb,
		c:        c,
		products: products,
		logger:   logger,
		metrics:  rec,
	}
}

// GetAuthorByID returns an author with its stored rating.
func (s *NewsService) GetAuthorByID(ctx context.Context, id int) (*Author, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getAuthorByID(ctx, id)
}

// UpdateAuthorRating recomputes the author rating as 3 * sum of the author's post ratings
// plus the sum of the ratings of every comment written by the author's user, and stores it.
func (s *NewsService) UpdateAuthorRating(ctx context.Context, id int) (*Author, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	author, sums, err := s.m.updateRating(ctx, id)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRatingUpdate()
	s.logger.Info("author rating updated",
		slog.String("author", author.Username),
		slog.Int("posts_rating", sums.posts),
		slog.Int("comments_rating", sums.comments),
		slog.Int("rating", author.Rating))

	return author, nil
}

func (s *NewsService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	v := common.NewValidator()
	validateCategoryName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := &Category{Name: name}
	if err := s.m.insertCategory(ctx, c); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyCategories())

	return c, nil
}

// GetCategories returns every category ordered by name. The list is cached until a category is created or deleted.
func (s *NewsService) GetCategories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.c.Get(common.CacheKeyCategories()); ok {
		if categories, ok := cached.([]Category); ok {
			return categories, nil
		}
	}

	categories, err := s.m.getCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyCategories(), categories)

	return categories, nil
}

// DeleteCategory deletes a category together with its post links, subscriptions and products.
func (s *NewsService) DeleteCategory(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	productIDs, err := s.m.deleteCategory(ctx, id)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyCategories())
	for _, pid := range productIDs {
		s.products.Delete(common.CacheKeyProduct(pid))
		s.metrics.RecordCacheEviction()
	}

	return nil
}

type CreatePostRequest struct {
	UserID     int
	Type       PostType
	Title      string
	Text       string
	Categories []int
}

// CreatePost stores a post written by the author profile of req.UserID and notifies the subscribers of its categories.
func (s *NewsService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	if req.Type == "" {
		req.Type = PostTypeArticle
	}

	v := common.NewValidator()
	validateInt(v, req.UserID, "user_id")
	validatePostType(v, req.Type)
	validateTitle(v, req.Title)
	validateText(v, req.Text)
	validateCategoryIDs(v, req.Categories)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	authorID, err := s.m.getAuthorIDByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	categoryIDs := uniqueIDs(req.Categories)

	p := &Post{
		AuthorID: authorID,
		Type:     req.Type,
		Title:    req.Title,
		Text:     sanitizePost(req.Text),
	}

	if err := s.m.insertPost(ctx, p, categoryIDs); err != nil {
		return nil, err
	}

	p.Categories, err = s.m.getCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	// the post is already stored, a failed notification must not fail the request
	if err := s.notifySubscribers(ctx, p, categoryIDs); err != nil {
		s.logger.Error("could not notify subscribers", slog.Int("post_id", p.ID), slog.String("error", err.Error()))
	}

	return p, nil
}

func (s *NewsService) notifySubscribers(ctx context.Context, p *Post, categoryIDs []int) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	recipients, err := s.m.getSubscriberEmails(ctx, categoryIDs)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}

	msg, err := json.Marshal(common.PostCreatedEvent{
		PostID:     p.ID,
		Title:      p.Title,
		Preview:    p.Preview(DefaultPreviewLength),
		Categories: names,
		Recipients: recipients,
	})
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, msg, common.PostCreatedKey, common.PostExchange)
}

func (s *NewsService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPostByID(ctx, id)
}

// GetPosts returns posts newest first with a preview instead of the full text.
// Default limit is 10 and default offset is 0. An empty postType lists every type.
func (s *NewsService) GetPosts(ctx context.Context, postType PostType, limit, offset *int) ([]Post, error) {
	if postType != "" {
		v := common.NewValidator()
		validatePostType(v, postType)
		if !v.Valid() {
			return nil, v.ValidationError()
		}
	}

	l, o := 10, 0
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}

	posts, err := s.m.getPosts(ctx, postType, l, o)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Excerpt = posts[i].Preview(DefaultPreviewLength)
		posts[i].Text = ""
	}

	return posts, nil
}

func (s *NewsService) LikePost(ctx context.Context, id int) (int, error) {
	return s.react(ctx, "post", "like", id, 1)
}

func (s *NewsService) DislikePost(ctx context.Context, id int) (int, error) {
	return s.react(ctx, "post", "dislike", id, -1)
}

func (s *NewsService) LikeComment(ctx context.Context, id int) (int, error) {
	return s.react(ctx, "comment", "like", id, 1)
}

func (s *NewsService) DislikeComment(ctx context.Context, id int) (int, error) {
	return s.react(ctx, "comment", "dislike", id, -1)
}

// react changes the rating of a post or comment by delta and returns the new rating.
func (s *NewsService) react(ctx context.Context, entity, kind string, id, delta int) (int, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	rating, err := s.m.adjustRating(ctx, entity, id, delta)
	if err != nil {
		return 0, err
	}

	s.metrics.RecordReaction(entity, kind)

	return rating, nil
}

func (s *NewsService) CreateComment(ctx context.Context, postID, userID int, text string) (*Comment, error) {
	text = strings.TrimSpace(sanitizeComment(text))

	v := common.NewValidator()
	validateInt(v, postID, "post_id")
	validateInt(v, userID, "user_id")
	validateText(v, text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := &Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}

	if err := s.m.insertComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetCommentsByPostID returns the comments of a post, oldest first.
func (s *NewsService) GetCommentsByPostID(ctx context.Context, postID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, postID, "post_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.postExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrRecordNotFound
	}

	return s.m.getCommentsByPostID(ctx, postID)
}

func (s *NewsService) Subscribe(ctx context.Context, userID, categoryID int) (*Subscription, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, categoryID, "category_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	sub := &Subscription{UserID: userID, CategoryID: categoryID}
	if err := s.m.insertSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *NewsService) Unsubscribe(ctx context.Context, userID, categoryID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, categoryID, "category_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteSubscription(ctx, userID, categoryID)
}

func (s *NewsService) GetSubscriberEmails(ctx context.Context, categoryIDs []int) ([]string, error) {
	v := common.NewValidator()
	validateCategoryIDs(v, categoryIDs)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getSubscriberEmails(ctx, uniqueIDs(categoryIDs))
}

// uniqueIDs drops repeated ids, keeping the first occurrence order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
