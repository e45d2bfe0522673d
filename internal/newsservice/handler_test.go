package newsservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/metrics"
	"github.com/sushihentaime/newsportal/internal/productservice"
)

type recordingProducer struct {
	keys   []common.BindingKey
	bodies [][]byte
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, msg)
	return nil
}

type mapCache map[string]interface{}

func (c mapCache) Get(key string) (interface{}, bool) {
	v, ok := c[key]
	return v, ok
}

func (c mapCache) Set(key string, value interface{}, expiration ...time.Duration) {
	c[key] = value
}

func (c mapCache) Delete(key string) {
	delete(c, key)
}

type testEnv struct {
	s     *NewsService
	db    *sql.DB
	mb    *recordingProducer
	cache mapCache
}

func setupTestEnvironment(t *testing.T) *testEnv {
	db := common.TestDB("file://../../migrations", t)
	mb := &recordingProducer{}
	c := mapCache{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		s:     NewNewsService(db, mb, c, c, logger, metrics.Noop{}),
		db:    db,
		mb:    mb,
		cache: c,
	}
}

func (e *testEnv) reset(t *testing.T) {
	for _, table := range []string{"users", "categories"} {
		if _, err := e.db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("could not clean %s: %v", table, err)
		}
	}
	e.mb.keys, e.mb.bodies = nil, nil
	for k := range e.cache {
		delete(e.cache, k)
	}
}

func (e *testEnv) insertUser(t *testing.T, username string) int {
	var id int
	err := e.db.QueryRow(
		"INSERT INTO users (username, email, password, activated) VALUES ($1, $2, $3, TRUE) RETURNING id",
		username, username+"@example.com", []byte("hash")).Scan(&id)
	if err != nil {
		t.Fatalf("could not insert user: %v", err)
	}
	return id
}

func (e *testEnv) insertAuthor(t *testing.T, username string) (userID, authorID int) {
	userID = e.insertUser(t, username)
	if err := e.db.QueryRow("INSERT INTO authors (user_id) VALUES ($1) RETURNING id", userID).Scan(&authorID); err != nil {
		t.Fatalf("could not insert author: %v", err)
	}
	return userID, authorID
}

func (e *testEnv) setRating(t *testing.T, table string, id, rating int) {
	if _, err := e.db.Exec("UPDATE "+table+" SET rating = $1 WHERE id = $2", rating, id); err != nil {
		t.Fatalf("could not set rating: %v", err)
	}
}

func TestNewsService(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	t.Run("update author rating", func(t *testing.T) {
		defer env.reset(t)

		userID, authorID := env.insertAuthor(t, "writer")
		cat, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)

		for _, r := range []int{2, 3} {
			p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Title", Text: "Body", Categories: []int{cat.ID}})
			assert.NoError(t, err)
			env.setRating(t, "posts", p.ID, r)

			c, err := env.s.CreateComment(ctx, p.ID, userID, "comment")
			assert.NoError(t, err)
			env.setRating(t, "comments", c.ID, []int{1, -1}[r-2])
		}

		author, err := env.s.UpdateAuthorRating(ctx, authorID)
		assert.NoError(t, err)
		assert.Equal(t, 15, author.Rating)

		stored, err := env.s.GetAuthorByID(ctx, authorID)
		assert.NoError(t, err)
		assert.Equal(t, 15, stored.Rating)
	})

	t.Run("update rating without posts or comments", func(t *testing.T) {
		defer env.reset(t)

		_, authorID := env.insertAuthor(t, "newbie")
		env.setRating(t, "authors", authorID, 42)

		author, err := env.s.UpdateAuthorRating(ctx, authorID)
		assert.NoError(t, err)
		assert.Equal(t, 0, author.Rating)
	})

	t.Run("comments by other users do not count", func(t *testing.T) {
		defer env.reset(t)

		userID, authorID := env.insertAuthor(t, "writer")
		other := env.insertUser(t, "reader")

		p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Title", Text: "Body"})
		assert.NoError(t, err)
		env.setRating(t, "posts", p.ID, 1)

		c, err := env.s.CreateComment(ctx, p.ID, other, "nice")
		assert.NoError(t, err)
		env.setRating(t, "comments", c.ID, 10)

		author, err := env.s.UpdateAuthorRating(ctx, authorID)
		assert.NoError(t, err)
		assert.Equal(t, 3, author.Rating)
	})

	t.Run("update rating of missing author", func(t *testing.T) {
		_, err := env.s.UpdateAuthorRating(ctx, 999)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})

	t.Run("like and dislike", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Title", Text: "Body"})
		assert.NoError(t, err)

		rating, err := env.s.LikePost(ctx, p.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1, rating)

		rating, err = env.s.DislikePost(ctx, p.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, rating)

		c, err := env.s.CreateComment(ctx, p.ID, userID, "comment")
		assert.NoError(t, err)

		rating, err = env.s.DislikeComment(ctx, c.ID)
		assert.NoError(t, err)
		assert.Equal(t, -1, rating)

		rating, err = env.s.LikeComment(ctx, c.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, rating)

		_, err = env.s.LikePost(ctx, 999)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})

	t.Run("create post", func(t *testing.T) {
		defer env.reset(t)

		userID, authorID := env.insertAuthor(t, "writer")
		tech, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)
		sport, err := env.s.CreateCategory(ctx, "Sport")
		assert.NoError(t, err)

		p, err := env.s.CreatePost(ctx, &CreatePostRequest{
			UserID:     userID,
			Type:       PostTypeNews,
			Title:      "Hello",
			Text:       `<p>hi</p><script>alert(1)</script>`,
			Categories: []int{tech.ID, sport.ID, tech.ID},
		})
		assert.NoError(t, err)
		assert.Equal(t, authorID, p.AuthorID)
		assert.Equal(t, "<p>hi</p>", p.Text)
		assert.Len(t, p.Categories, 2)

		got, err := env.s.GetPostByID(ctx, p.ID)
		assert.NoError(t, err)
		assert.Equal(t, PostTypeNews, got.Type)
		assert.Equal(t, "writer", got.Author)
		assert.Len(t, got.Categories, 2)
		assert.Equal(t, 0, got.Rating)
	})

	t.Run("create post defaults to article", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body"})
		assert.NoError(t, err)
		assert.Equal(t, PostTypeArticle, p.Type)
	})

	t.Run("create post without author profile", func(t *testing.T) {
		defer env.reset(t)

		userID := env.insertUser(t, "reader")
		_, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body"})
		assert.ErrorIs(t, err, ErrAuthorNotFound)
	})

	t.Run("create post with unknown category", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		_, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body", Categories: []int{999}})
		assert.ErrorIs(t, err, ErrCategoryForeignKey)

		var count int
		assert.NoError(t, env.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("create post with invalid input", func(t *testing.T) {
		_, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: 1, Type: "XX", Title: "", Text: ""})

		var verr common.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("create post notifies subscribers", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		reader := env.insertUser(t, "reader")
		cat, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)

		_, err = env.s.Subscribe(ctx, reader, cat.ID)
		assert.NoError(t, err)

		_, err = env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body", Categories: []int{cat.ID}})
		assert.NoError(t, err)

		if assert.Len(t, env.mb.bodies, 1) {
			assert.Equal(t, common.PostCreatedKey, env.mb.keys[0])

			var event common.PostCreatedEvent
			assert.NoError(t, json.Unmarshal(env.mb.bodies[0], &event))
			assert.Equal(t, "Hello", event.Title)
			assert.Equal(t, []string{"Tech"}, event.Categories)
			assert.Equal(t, []string{"reader@example.com"}, event.Recipients)
		}
	})

	t.Run("create post without subscribers publishes nothing", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		cat, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)

		_, err = env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body", Categories: []int{cat.ID}})
		assert.NoError(t, err)
		assert.Empty(t, env.mb.bodies)
	})

	t.Run("get posts", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		long := ""
		for i := 0; i < 200; i++ {
			long += "a"
		}

		for _, pt := range []PostType{PostTypeNews, PostTypeArticle, PostTypeNews} {
			_, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Type: pt, Title: "Hello", Text: long})
			assert.NoError(t, err)
		}

		posts, err := env.s.GetPosts(ctx, "", nil, nil)
		assert.NoError(t, err)
		assert.Len(t, posts, 3)
		assert.Equal(t, long[:124]+"...", posts[0].Excerpt)
		assert.Empty(t, posts[0].Text)

		news, err := env.s.GetPosts(ctx, PostTypeNews, nil, nil)
		assert.NoError(t, err)
		assert.Len(t, news, 2)

		limit, offset := 1, 1
		page, err := env.s.GetPosts(ctx, "", &limit, &offset)
		assert.NoError(t, err)
		if assert.Len(t, page, 1) {
			assert.Equal(t, posts[1].ID, page[0].ID)
		}

		_, err = env.s.GetPosts(ctx, "XX", nil, nil)
		var verr common.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("comments", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body"})
		assert.NoError(t, err)

		_, err = env.s.CreateComment(ctx, p.ID, userID, "<b>first</b>")
		assert.NoError(t, err)
		_, err = env.s.CreateComment(ctx, p.ID, userID, "second")
		assert.NoError(t, err)

		comments, err := env.s.GetCommentsByPostID(ctx, p.ID)
		assert.NoError(t, err)
		if assert.Len(t, comments, 2) {
			assert.Equal(t, "first", comments[0].Text)
			assert.Equal(t, "writer", comments[0].Username)
		}

		_, err = env.s.GetCommentsByPostID(ctx, 999)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)

		_, err = env.s.CreateComment(ctx, 999, userID, "text")
		assert.ErrorIs(t, err, ErrPostForeignKey)

		for _, text := range []string{"<b></b>", "  <script>alert(1)</script> "} {
			_, err = env.s.CreateComment(ctx, p.ID, userID, text)
			var verr common.ValidationError
			assert.ErrorAs(t, err, &verr, text)
		}
	})

	t.Run("categories are cached", func(t *testing.T) {
		defer env.reset(t)

		_, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)

		categories, err := env.s.GetCategories(ctx)
		assert.NoError(t, err)
		assert.Len(t, categories, 1)
		assert.Contains(t, env.cache, common.CacheKeyCategories())

		_, err = env.s.CreateCategory(ctx, "Sport")
		assert.NoError(t, err)
		assert.NotContains(t, env.cache, common.CacheKeyCategories())

		categories, err = env.s.GetCategories(ctx)
		assert.NoError(t, err)
		assert.Len(t, categories, 2)

		_, err = env.s.CreateCategory(ctx, "Sport")
		assert.ErrorIs(t, err, ErrDuplicateCategory)
	})

	t.Run("delete category cascades", func(t *testing.T) {
		defer env.reset(t)

		userID, _ := env.insertAuthor(t, "writer")
		cat, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)

		p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body", Categories: []int{cat.ID}})
		assert.NoError(t, err)
		_, err = env.s.Subscribe(ctx, userID, cat.ID)
		assert.NoError(t, err)

		assert.NoError(t, env.s.DeleteCategory(ctx, cat.ID))

		var links, subs int
		assert.NoError(t, env.db.QueryRow("SELECT COUNT(*) FROM post_categories").Scan(&links))
		assert.NoError(t, env.db.QueryRow("SELECT COUNT(*) FROM subscriptions").Scan(&subs))
		assert.Zero(t, links)
		assert.Zero(t, subs)

		got, err := env.s.GetPostByID(ctx, p.ID)
		assert.NoError(t, err)
		assert.Empty(t, got.Categories)

		assert.ErrorIs(t, env.s.DeleteCategory(ctx, cat.ID), common.ErrRecordNotFound)
	})

	t.Run("delete category evicts cached products", func(t *testing.T) {
		defer env.reset(t)

		cat, err := env.s.CreateCategory(ctx, "Gadgets")
		assert.NoError(t, err)

		ps := productservice.NewProductService(env.db, env.cache, env.cache, metrics.Noop{})
		p := &productservice.Product{Name: "Phone", Price: 10, Quantity: 1, CategoryID: cat.ID}
		assert.NoError(t, ps.CreateProduct(ctx, p))

		_, err = ps.GetProduct(ctx, p.ID)
		assert.NoError(t, err)
		_, cached := env.cache[common.CacheKeyProduct(p.ID)]
		assert.True(t, cached)

		assert.NoError(t, env.s.DeleteCategory(ctx, cat.ID))

		_, cached = env.cache[common.CacheKeyProduct(p.ID)]
		assert.False(t, cached)
		_, err = ps.GetProduct(ctx, p.ID)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})

	t.Run("delete user cascades to posts", func(t *testing.T) {
		defer env.reset(t)

		userID, authorID := env.insertAuthor(t, "writer")
		p, err := env.s.CreatePost(ctx, &CreatePostRequest{UserID: userID, Title: "Hello", Text: "Body"})
		assert.NoError(t, err)

		_, err = env.db.Exec("DELETE FROM users WHERE id = $1", userID)
		assert.NoError(t, err)

		_, err = env.s.GetAuthorByID(ctx, authorID)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
		_, err = env.s.GetPostByID(ctx, p.ID)
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})

	t.Run("subscriptions", func(t *testing.T) {
		defer env.reset(t)

		reader := env.insertUser(t, "reader")
		cat, err := env.s.CreateCategory(ctx, "Tech")
		assert.NoError(t, err)

		first, err := env.s.Subscribe(ctx, reader, cat.ID)
		assert.NoError(t, err)
		second, err := env.s.Subscribe(ctx, reader, cat.ID)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		emails, err := env.s.GetSubscriberEmails(ctx, []int{cat.ID, cat.ID})
		assert.NoError(t, err)
		assert.Equal(t, []string{"reader@example.com"}, emails)

		_, err = env.s.Subscribe(ctx, reader, 999)
		assert.ErrorIs(t, err, ErrCategoryForeignKey)

		assert.NoError(t, env.s.Unsubscribe(ctx, reader, cat.ID))
		assert.ErrorIs(t, env.s.Unsubscribe(ctx, reader, cat.ID), common.ErrRecordNotFound)
	})
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, uniqueIDs([]int{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
