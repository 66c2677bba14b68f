package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

const defaultProductImage = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop"

// ProductStore persists the product catalog.
type ProductStore struct {
	c collection
}

func NewProductStore(rdb redis.Cmdable) *ProductStore {
	return &ProductStore{c: newCollection(rdb, "products")}
}

// SearchProducts filters the catalog by case-insensitive keyword over name,
// brand and description, optional category (the literal "All" disables the
// filter) and optional price bounds. Results come back in product-id order.
func (s *ProductStore) SearchProducts(ctx context.Context, keyword, category string, minPrice, maxPrice *float64) ([]model.Product, error) {
	products, err := decodeAll[model.Product](ctx, &s.c)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchesProduct(p, keyword, category, minPrice, maxPrice) {
			matched = append(matched, withProductDefaults(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ProductID < matched[j].ProductID })

	logx.Info().Int("count", len(matched)).Str("keyword", keyword).Msg("product search finished")
	return matched, nil
}

// matchesProduct applies the search criteria to one product.
func matchesProduct(p model.Product, keyword, category string, minPrice, maxPrice *float64) bool {
	if kw := strings.TrimSpace(strings.ToLower(keyword)); kw != "" {
		if !strings.Contains(strings.ToLower(p.ProductName), kw) &&
			!strings.Contains(strings.ToLower(p.Brand), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) {
			return false
		}
	}
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, "All") {
		if !strings.EqualFold(p.Category, c) {
			return false
		}
	}
	if minPrice != nil && p.Price < *minPrice {
		return false
	}
	if maxPrice != nil && p.Price > *maxPrice {
		return false
	}
	return true
}

// GetByProductID returns nil when the product does not exist.
func (s *ProductStore) GetByProductID(ctx context.Context, productID int) (*model.Product, error) {
	var p model.Product
	ok, err := s.c.get(ctx, strconv.Itoa(productID), &p)
	if err != nil || !ok {
		return nil, err
	}
	p = withProductDefaults(p)
	return &p, nil
}

func (s *ProductStore) All(ctx context.Context) ([]model.Product, error) {
	products, err := decodeAll[model.Product](ctx, &s.c)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i] = withProductDefaults(products[i])
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

// Recommendations returns up to limit popular products.
func (s *ProductStore) Recommendations(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	popular := make([]model.Product, 0, limit)
	for _, p := range products {
		if !p.IsPopular {
			continue
		}
		popular = append(popular, p)
		if len(popular) >= limit {
			break
		}
	}
	return popular, nil
}

// UpdateImages rewrites image URLs in bulk and reports how many products
// were updated; unknown product ids are skipped.
func (s *ProductStore) UpdateImages(ctx context.Context, mappings map[int]string) (int, error) {
	updated := 0
	for productID, url := range mappings {
		p, err := s.GetByProductID(ctx, productID)
		if err != nil {
			return updated, err
		}
		if p == nil {
			continue
		}
		p.ImageURL = url
		p.UpdatedAt = time.Now()
		if err := s.Save(ctx, *p); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *ProductStore) Save(ctx context.Context, p model.Product) error {
	return s.c.put(ctx, strconv.Itoa(p.ProductID), p)
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	return s.c.size(ctx)
}

// withProductDefaults fills the presentation defaults the original catalog
// relies on for sparse documents.
func withProductDefaults(p model.Product) model.Product {
	if p.Category == "" {
		p.Category = "General"
	}
	if p.ImageURL == "" {
		p.ImageURL = defaultProductImage
	}
	if p.Rating == 0 {
		p.Rating = 4.5
	}
	return p
}
