package domain

import (
	"fmt"
	"time"
)

type ProductType string

const (
	ProductTypeFood    ProductType = "food_product"
	ProductTypeTextile ProductType = "textile_product"
)

// Product is the shared row of every industry. Exactly one of Food or Textile
// is populated, selected by Type.
type Product struct {
	ID uint `gorm:"primaryKey"`
	Named
	Type      ProductType `gorm:"size:30;index;not null"`
	GroupID   uint        `gorm:"index;not null"`
	Group     *Group
	Tags      []Tag `gorm:"many2many:product_tags"`
	Materials []Material
	Food      *FoodProduct
	Textile   *TextileProduct
	CreatedAt time.Time
}

type FoodProduct struct {
	ID         uint      `gorm:"primaryKey"`
	ProductID  uint      `gorm:"uniqueIndex;not null"`
	CustomerID uint      `gorm:"index;not null"`
	Customer   *Customer
	Allergens  []Allergen `gorm:"many2many:food_product_allergens"`
}

type TextileProduct struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"uniqueIndex;not null"`
	Colour    string `gorm:"size:50"`
}

// BaseFields holds the values the product row is built from: plain scalars
// and the already persisted single relations.
type BaseFields struct {
	Scalars   map[Field]string
	Relations map[Field]Entity
}

// NewProduct builds the unsaved product row and its subtype payload.
func (t ProductType) NewProduct(f BaseFields) (*Product, error) {
	group, ok := f.Relations[FieldGroup].(*Group)
	if !ok || group == nil {
		return nil, fmt.Errorf("%w: %s needs a resolved group", ErrUnknownEntityClass, t)
	}
	p := &Product{Named: Named{Name: f.Scalars[FieldName]}, Type: t, GroupID: group.ID, Group: group}
	switch t {
	case ProductTypeFood:
		customer, ok := f.Relations[FieldCustomer].(*Customer)
		if !ok || customer == nil {
			return nil, fmt.Errorf("%w: %s needs a resolved customer", ErrUnknownEntityClass, t)
		}
		p.Food = &FoodProduct{CustomerID: customer.ID, Customer: customer}
	case ProductTypeTextile:
		p.Textile = &TextileProduct{Colour: f.Scalars[FieldColour]}
	default:
		return nil, fmt.Errorf("%w: product type %q", ErrUnknownEntityClass, t)
	}
	return p, nil
}
