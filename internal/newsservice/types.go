package newsservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/metrics"
)

type PostType string

const (
	PostTypeNews    PostType = "NW"
	PostTypeArticle PostType = "AR"

	DefaultPreviewLength = 124
)

// Label is the human readable name of the post type.
func (t PostType) Label() string {
	switch t {
	case PostTypeNews:
		return "News"
	case PostTypeArticle:
		return "Article"
	default:
		return string(t)
	}
}

type Author struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Post struct {
	ID         int        `json:"id"`
	AuthorID   int        `json:"author_id"`
	Author     string     `json:"author,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Type       PostType   `json:"post_type"`
	Categories []Category `json:"categories,omitempty"`
	Title      string     `json:"title"`
	// Text is sanitized HTML.
	Text   string `json:"text,omitempty"`
	Rating int    `json:"rating"`
	// Excerpt is filled in listings instead of Text.
	Excerpt string `json:"preview,omitempty"`
}

type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Rating    int       `json:"rating"`
}

type Subscription struct {
	ID         int `json:"id"`
	UserID     int `json:"user_id"`
	CategoryID int `json:"category_id"`
}

type NewsModel struct {
	db *sql.DB
}

// categoryCache is the part of common.Cache the service needs.
type categoryCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, expiration ...time.Duration)
	Delete(key string)
}

// productInvalidator evicts product entries whose rows went away with a category.
type productInvalidator interface {
	Delete(key string)
}

type NewsService struct {
	m        *NewsModel
	mb       common.MessageProducer
	c        categoryCache
	products productInvalidator
	logger   *slog.Logger
	metrics  metrics.Recorder
}
