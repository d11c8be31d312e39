package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/productcatalog/internal/domain"
)

type ProductUC struct {
	Store domain.CatalogStore
}

// CreateProduct validates payload against the industry selected by
// industryKey and assembles the product in a single transaction.
func (uc *ProductUC) CreateProduct(ctx context.Context, payload []byte, industryKey string) (uint, error) {
	schema, err := domain.LookupIndustry(industryKey)
	if err != nil {
		return 0, err
	}
	data, err := normalize(schema, payload)
	if err != nil {
		return 0, err
	}

	name := data.scalars[domain.FieldName]
	exists, err := uc.Store.ProductExists(ctx, name)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %q", domain.ErrDuplicateProduct, name)
	}

	start := time.Now()
	var product *domain.Product
	err = uc.Store.Assemble(ctx, func(tx domain.AssemblyTx) error {
		p, err := newAssembly(schema, data, tx).run()
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("industry", string(schema.Industry)).Str("name", name).Msg("product assembly rolled back")
		return 0, err
	}
	log.Info().
		Str("industry", string(schema.Industry)).
		Uint("product_id", product.ID).
		Str("name", name).
		Dur("took", time.Since(start)).
		Msg("product created")
	return product.ID, nil
}

// List returns every product of the industry's subtype with its relations.
func (uc *ProductUC) List(ctx context.Context, industryKey string) ([]domain.Product, error) {
	schema, err := domain.LookupIndustry(industryKey)
	if err != nil {
		return nil, err
	}
	return uc.Store.ListProducts(ctx, schema.ProductType)
}

func (uc *ProductUC) Ping(ctx context.Context) error {
	return uc.Store.Ping(ctx)
}
