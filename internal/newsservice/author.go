package newsservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/newsportal/internal/common"
)

func (m *NewsModel) getAuthorByID(ctx context.Context, id int) (*Author, error) {
	query := `
		SELECT a.id, a.user_id, u.username, a.rating
		FROM authors a
		JOIN users u ON a.user_id = u.id
		WHERE a.id = $1`

	var a Author
	err := m.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Username, &a.Rating)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &a, nil
}

func (m *NewsModel) getAuthorIDByUserID(ctx context.Context, userID int) (int, error) {
	var id int
	err := m.db.QueryRowContext(ctx, "SELECT id FROM authors WHERE user_id = $1", userID).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrAuthorNotFound
		default:
			return 0, err
		}
	}

	return id, nil
}

type ratingSums struct {
	posts    int
	comments int
}

// updateRating recomputes and stores the rating of an author. The author row is locked for the duration of the transaction.
func (m *NewsModel) updateRating(ctx context.Context, id int) (*Author, ratingSums, error) {
	var sums ratingSums

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, sums, err
	}
	defer tx.Rollback()

	var a Author
	err = tx.QueryRowContext(ctx, `
		SELECT a.id, a.user_id, u.username
		FROM authors a
		JOIN users u ON a.user_id = u.id
		WHERE a.id = $1
		FOR UPDATE OF a`, id).Scan(&a.ID, &a.UserID, &a.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, sums, common.ErrRecordNotFound
		default:
			return nil, sums, err
		}
	}

	err = tx.QueryRowContext(ctx, "SELECT COALESCE(SUM(rating), 0) FROM posts WHERE author_id = $1", a.ID).Scan(&sums.posts)
	if err != nil {
		return nil, sums, err
	}

	err = tx.QueryRowContext(ctx, "SELECT COALESCE(SUM(rating), 0) FROM comments WHERE user_id = $1", a.UserID).Scan(&sums.comments)
	if err != nil {
		return nil, sums, err
	}

	a.Rating = ComputeRating(sums.posts, sums.comments)

	_, err = tx.ExecContext(ctx, "UPDATE authors SET rating = $1 WHERE id = $2", a.Rating, a.ID)
	if err != nil {
		return nil, sums, err
	}

	if err := tx.Commit(); err != nil {
		return nil, sums, err
	}

	return &a, sums, nil
}
