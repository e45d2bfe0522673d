package newsservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/newsportal/internal/common"
)

var (
	ErrDuplicateCategory  = errors.New("category name already exists")
	ErrCategoryForeignKey = errors.New("category does not exist")
	ErrPostForeignKey     = errors.New("post does not exist")
	ErrUserForeignKey     = errors.New("user does not exist")
	ErrAuthorNotFound     = errors.New("user is not an author")
)

func newNewsModel(db *sql.DB) *NewsModel {
	return &NewsModel{db: db}
}

// rated lists the tables whose rating can be liked or disliked.
var rated = map[string]string{
	"post":    "posts",
	"comment": "comments",
}

// adjustRating adds delta to the rating in one statement so concurrent reactions are not lost.
func (m *NewsModel) adjustRating(ctx context.Context, entity string, id, delta int) (int, error) {
	table, ok := rated[entity]
	if !ok {
		return 0, fmt.Errorf("unknown rated entity %q", entity)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET rating = rating + $2
		WHERE id = $1
		RETURNING rating`, table)

	var rating int
	err := m.db.QueryRowContext(ctx, query, id, delta).Scan(&rating)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return rating, nil
}
