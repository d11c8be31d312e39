package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/productcatalog/internal/domain"
)

// assemblyTx is the write side of a single product assembly. Every method
// runs on the transaction opened by CatalogRepo.Assemble.
type assemblyTx struct{ db *gorm.DB }

func (t *assemblyTx) GetOrCreate(kind domain.EntityKind, name string) (domain.Entity, bool, error) {
	if kind.Owned() {
		return nil, false, fmt.Errorf("%s rows are owned by a product and not deduplicated", kind)
	}
	e, err := domain.NewEntity(kind, name)
	if err != nil {
		return nil, false, err
	}
	created, err := getOrCreate(t.db, e, map[string]any{"name": name})
	if err != nil {
		return nil, false, fmt.Errorf("%s %q: %w", kind, name, err)
	}
	return e, created, nil
}

func (t *assemblyTx) CreateMaterial(productID uint, name string, spec domain.MaterialSpec) (*domain.Material, error) {
	m := &domain.Material{ProductID: productID, Name: name, Quantity: spec.Quantity, Units: spec.Units}
	if err := t.db.Create(m).Error; err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	return m, nil
}

// CreateProduct stores the product row by get-or-create on its full field
// set. Finding an existing row means another request won the name, which is
// reported as a duplicate rather than reused.
func (t *assemblyTx) CreateProduct(p *domain.Product) error {
	created, err := getOrCreate(t.db, p, map[string]any{"name": p.Name, "type": p.Type, "group_id": p.GroupID})
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !created) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateProduct, p.Name)
	}
	if err != nil {
		return err
	}

	switch {
	case p.Food != nil:
		p.Food.ProductID = p.ID
		err = t.db.Omit(clause.Associations).Create(p.Food).Error
	case p.Textile != nil:
		p.Textile.ProductID = p.ID
		err = t.db.Omit(clause.Associations).Create(p.Textile).Error
	default:
		err = fmt.Errorf("%w: product %q has no %s payload", domain.ErrUnknownEntityClass, p.Name, p.Type)
	}
	return err
}

func (t *assemblyTx) Link(p *domain.Product, field domain.Field, entities []domain.Entity) error {
	switch field {
	case domain.FieldTags:
		tags, err := entitiesAs[domain.Tag](entities)
		if err != nil {
			return err
		}
		return t.db.Model(p).Omit("Tags.*").Association("Tags").Append(tags)
	case domain.FieldMaterials:
		materials, err := entitiesAs[domain.Material](entities)
		if err != nil {
			return err
		}
		return t.db.Model(p).Association("Materials").Append(materials)
	case domain.FieldAllergens:
		if p.Food == nil {
			return fmt.Errorf("%w: allergens on %s", domain.ErrUnknownEntityClass, p.Type)
		}
		allergens, err := entitiesAs[domain.Allergen](entities)
		if err != nil {
			return err
		}
		return t.db.Model(p.Food).Omit("Allergens.*").Association("Allergens").Append(allergens)
	}
	return fmt.Errorf("%w: no relation for field %q", domain.ErrUnknownEntityClass, field)
}

// Flush reports a transaction already poisoned by an earlier statement.
// Rows are written eagerly, so their ids are known as soon as they return.
func (t *assemblyTx) Flush() error { return t.db.Error }

func entitiesAs[T any, PT interface {
	*T
	domain.Entity
}](entities []domain.Entity) ([]PT, error) {
	out := make([]PT, 0, len(entities))
	for _, e := range entities {
		v, ok := e.(PT)
		if !ok {
			return nil, fmt.Errorf("%w: %s cannot be linked here", domain.ErrUnknownEntityClass, e.EntityKind())
		}
		out = append(out, v)
	}
	return out, nil
}
