package productservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/newsportal/internal/metrics"
)

type Product struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	CategoryID int     `json:"category_id"`
}

type ProductModel struct {
	db *sql.DB
}

// productStore is the read-through side of the product cache.
type productStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, expiration ...time.Duration)
}

// invalidator evicts cache entries after a write. Deleting a missing key must be a no-op.
type invalidator interface {
	Delete(key string)
}

type ProductService struct {
	m       *ProductModel
	store   productStore
	inv     invalidator
	metrics metrics.Recorder
}
