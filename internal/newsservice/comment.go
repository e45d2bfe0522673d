package newsservice

import (
	"context"

	"github.com/sushihentaime/newsportal/internal/common"
)

func (m *NewsModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, rating`

	err := m.db.QueryRowContext(ctx, query, c.PostID, c.UserID, c.Text).Scan(&c.ID, &c.CreatedAt, &c.Rating)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "comments_post_id_fkey"):
			return ErrPostForeignKey
		case common.ForeignKeyError(err, "comments_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *NewsModel) getCommentsByPostID(ctx context.Context, postID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, u.username, c.text, c.created_at, c.rating
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt, &c.Rating)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
