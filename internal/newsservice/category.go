package newsservice

import (
	"context"

	"github.com/lib/pq"
	"github.com/sushihentaime/newsportal/internal/common"
)

func (m *NewsModel) insertCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, c.Name).Scan(&c.ID)
	if err != nil {
		switch {
		case common.UniqueError(err, "categories_name_key"):
			return ErrDuplicateCategory
		default:
			return err
		}
	}

	return nil
}

func (m *NewsModel) getCategories(ctx context.Context) ([]Category, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (m *NewsModel) getCategoriesByIDs(ctx context.Context, ids []int) ([]Category, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT id, name FROM categories WHERE id = ANY($1) ORDER BY name", pq.Array(toInt64s(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (m *NewsModel) getPostCategories(ctx context.Context, postID int) ([]Category, error) {
	query := `
		SELECT c.id, c.name
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1
		ORDER BY c.name`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCategories(rows rowScanner) ([]Category, error) {
	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// deleteCategory removes the category and returns the ids of the products deleted with it.
// Post links, subscriptions and products go through ON DELETE CASCADE.
func (m *NewsModel) deleteCategory(ctx context.Context, id int) ([]int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM products WHERE category_id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, err
	}

	productIDs := []int{}
	for rows.Next() {
		var pid int
		if err := rows.Scan(&pid); err != nil {
			rows.Close()
			return nil, err
		}
		productIDs = append(productIDs, pid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, common.ErrRecordNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return productIDs, nil
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
