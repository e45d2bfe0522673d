package productservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/newsportal/internal/common"
)

var ErrCategoryForeignKey = errors.New("category does not exist")

func newProductModel(db *sql.DB) *ProductModel {
	return &ProductModel{db: db}
}

// constraintError maps constraint violations to the errors callers understand.
func constraintError(err error) error {
	switch {
	case common.ForeignKeyError(err, "products_category_id_fkey"):
		return ErrCategoryForeignKey
	case common.CheckError(err, "products_price_check"):
		return common.ValidationError{Errors: map[string]string{"price": "must not be negative"}}
	case common.CheckError(err, "products_quantity_check"):
		return common.ValidationError{Errors: map[string]string{"quantity": "must not be negative"}}
	default:
		return err
	}
}

func (m *ProductModel) insertProduct(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (name, price, quantity, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Quantity, p.CategoryID).Scan(&p.ID)
	if err != nil {
		return constraintError(err)
	}

	return nil
}

func (m *ProductModel) getProductByID(ctx context.Context, id int) (*Product, error) {
	query := `SELECT id, name, price, quantity, category_id FROM products WHERE id = $1`

	var p Product
	err := m.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &p, nil
}

func (m *ProductModel) updateProduct(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name = $1, price = $2, quantity = $3, category_id = $4
		WHERE id = $5`

	res, err := m.db.ExecContext(ctx, query, p.Name, p.Price, p.Quantity, p.CategoryID, p.ID)
	if err != nil {
		return constraintError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *ProductModel) getProducts(ctx context.Context, limit, offset int) ([]Product, error) {
	query := `
		SELECT id, name, price, quantity, category_id
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryID); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
