package newsservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/newsportal/internal/common"
)

// insertPost stores the post and links it to its categories in one transaction.
func (m *NewsModel) insertPost(ctx context.Context, p *Post, categoryIDs []int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (author_id, post_type, title, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, rating`

	err = tx.QueryRowContext(ctx, query, p.AuthorID, p.Type, p.Title, p.Text).Scan(&p.ID, &p.CreatedAt, &p.Rating)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "posts_author_id_fkey"):
			return ErrAuthorNotFound
		default:
			return err
		}
	}

	for _, id := range categoryIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, category_id) DO NOTHING`, p.ID, id)
		if err != nil {
			switch {
			case common.ForeignKeyError(err, "post_categories_category_id_fkey"):
				return ErrCategoryForeignKey
			default:
				return err
			}
		}
	}

	return tx.Commit()
}

func (m *NewsModel) getPostByID(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.author_id, u.username, p.created_at, p.post_type, p.title, p.text, p.rating
		FROM posts p
		JOIN authors a ON p.author_id = a.id
		JOIN users u ON a.user_id = u.id
		WHERE p.id = $1`

	var p Post
	err := m.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.AuthorID, &p.Author, &p.CreatedAt, &p.Type, &p.Title, &p.Text, &p.Rating)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	p.Categories, err = m.getPostCategories(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// getPosts returns posts newest first. An empty postType matches every type.
func (m *NewsModel) getPosts(ctx context.Context, postType PostType, limit, offset int) ([]Post, error) {
	query := `
		SELECT p.id, p.author_id, u.username, p.created_at, p.post_type, p.title, p.text, p.rating
		FROM posts p
		JOIN authors a ON p.author_id = a.id
		JOIN users u ON a.user_id = u.id
		WHERE ($1::text = '' OR p.post_type::text = $1::text)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, string(postType), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		err := rows.Scan(&p.ID, &p.AuthorID, &p.Author, &p.CreatedAt, &p.Type, &p.Title, &p.Text, &p.Rating)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (m *NewsModel) postExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)", id).Scan(&exists)
	return exists, err
}
