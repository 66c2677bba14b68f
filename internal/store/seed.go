package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

//go:embed seed/products.yaml
var productSeed []byte

type seedFile struct {
	Products []model.Product `yaml:"products"`
}

// SeedCatalog loads the embedded starter catalog when the products
// collection is empty. A populated catalog is left untouched.
func (s *ProductStore) SeedCatalog(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logx.Debug().Int64("count", n).Msg("product catalog already populated, skipping seed")
		return nil
	}

	var f seedFile
	if err := yaml.Unmarshal(productSeed, &f); err != nil {
		return fmt.Errorf("parse product seed: %w", err)
	}

	now := time.Now()
	for _, p := range f.Products {
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := s.Save(ctx, p); err != nil {
			return err
		}
	}

	logx.Info().Int("count", len(f.Products)).Msg("seeded product catalog")
	return nil
}
