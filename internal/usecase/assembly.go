package usecase

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/productcatalog/internal/domain"
)

// assembly builds one product aggregate from a canonical payload. Entities
// are created in registry order: independent ones first, then the product
// row, then everything that needs the product's id, and finally the
// multi-valued relations are linked.
type assembly struct {
	schema  domain.IndustrySchema
	data    *payload
	tx      domain.AssemblyTx
	single  map[domain.Field]domain.Entity
	multi   map[domain.Field][]domain.Entity
	product *domain.Product
}

func newAssembly(schema domain.IndustrySchema, data *payload, tx domain.AssemblyTx) *assembly {
	return &assembly{
		schema: schema,
		data:   data,
		tx:     tx,
		single: map[domain.Field]domain.Entity{},
		multi:  map[domain.Field][]domain.Entity{},
	}
}

func (a *assembly) run() (*domain.Product, error) {
	if err := a.createObjects(a.schema.IndependentFields); err != nil {
		return nil, fmt.Errorf("independent entities: %w", err)
	}
	if err := a.tx.Flush(); err != nil {
		return nil, err
	}
	if err := a.createBaseProduct(); err != nil {
		return nil, err
	}
	if err := a.createObjects(a.schema.ProductDependentFields); err != nil {
		return nil, fmt.Errorf("product entities: %w", err)
	}

	relations := append([]domain.Field(nil), a.schema.MultiRelationFields...)
	if len(a.schema.IndustryDependentFields) > 0 {
		if err := a.createObjects(a.schema.IndustryDependentFields); err != nil {
			return nil, fmt.Errorf("%s entities: %w", a.schema.Industry, err)
		}
		relations = append(relations, a.schema.IndustryDependentFields...)
	}

	for _, field := range relations {
		entities := a.multi[field]
		if len(entities) == 0 {
			continue
		}
		if err := a.tx.Link(a.product, field, entities); err != nil {
			return nil, fmt.Errorf("link %s: %w", field, err)
		}
	}
	return a.product, nil
}

func (a *assembly) createBaseProduct() error {
	base := domain.BaseFields{
		Scalars:   map[domain.Field]string{},
		Relations: map[domain.Field]domain.Entity{},
	}
	for _, field := range a.schema.BaseProductFields {
		if a.schema.IsSingleRelation(field) {
			base.Relations[field] = a.single[field]
			continue
		}
		base.Scalars[field] = a.data.scalars[field]
	}
	p, err := a.schema.ProductType.NewProduct(base)
	if err != nil {
		return err
	}
	if err := a.tx.CreateProduct(p); err != nil {
		return err
	}
	a.product = p
	log.Debug().Uint("product_id", p.ID).Str("name", p.Name).Msg("base product stored")
	return nil
}

func (a *assembly) createObjects(fields []domain.Field) error {
	for _, field := range fields {
		if !a.data.has(field) {
			continue
		}
		kind, err := domain.KindOf(field)
		if err != nil {
			return err
		}
		if kind.Owned() && a.product == nil {
			return fmt.Errorf("%s needs the product to exist first", field)
		}

		if name, ok := a.data.scalars[field]; ok {
			e, _, err := a.tx.GetOrCreate(kind, name)
			if err != nil {
				return err
			}
			a.single[field] = e
			continue
		}

		var entities []domain.Entity
		for _, name := range a.data.lists[field] {
			e, err := a.resolve(kind, mappingItem{Name: name})
			if err != nil {
				return err
			}
			entities = append(entities, e)
		}
		for _, item := range a.data.mappings[field] {
			e, err := a.resolve(kind, item)
			if err != nil {
				return err
			}
			entities = append(entities, e)
		}
		a.multi[field] = entities
	}
	return nil
}

func (a *assembly) resolve(kind domain.EntityKind, item mappingItem) (domain.Entity, error) {
	if kind.Owned() {
		return a.tx.CreateMaterial(a.product.ID, item.Name, item.Spec)
	}
	e, _, err := a.tx.GetOrCreate(kind, item.Name)
	return e, err
}
