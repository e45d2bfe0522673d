package productservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/metrics"
)

// NewProductService wires store for cached reads and inv for eviction after saves.
// Both are usually the same *common.Cache.
func NewProductService(db *sql.DB, store productStore, inv invalidator, rec metrics.Recorder) *ProductService {
	return &ProductService{
		m:       newProductModel(db),
		store:   store,
		inv:     inv,
		metrics: rec,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, p *Product) error {
	p.Name = strings.TrimSpace(p.Name)

	v := common.NewValidator()
	validateProduct(v, p)
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.insertProduct(ctx, p); err != nil {
		return err
	}

	s.invalidate(p.ID)

	return nil
}

// GetProduct reads product-{id} from the cache and falls back to storage on a miss.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*Product, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyProduct(id)
	if cached, ok := s.store.Get(key); ok {
		if p, ok := cached.(Product); ok {
			return &p, nil
		}
	}

	p, err := s.m.getProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store.Set(key, *p)

	return p, nil
}

// UpdateProduct saves every field of p and evicts its cache entry once the write succeeded.
func (s *ProductService) UpdateProduct(ctx context.Context, p *Product) error {
	p.Name = strings.TrimSpace(p.Name)

	v := common.NewValidator()
	validateInt(v, p.ID, "id")
	validateProduct(v, p)
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.updateProduct(ctx, p); err != nil {
		return err
	}

	s.invalidate(p.ID)

	return nil
}

// GetProducts lists products by id. Default limit is 10 and default offset is 0.
func (s *ProductService) GetProducts(ctx context.Context, limit, offset *int) ([]Product, error) {
	l, o := 10, 0
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}

	return s.m.getProducts(ctx, l, o)
}

func (s *ProductService) invalidate(id int) {
	s.inv.Delete(common.CacheKeyProduct(id))
	s.metrics.RecordCacheEviction()
}
