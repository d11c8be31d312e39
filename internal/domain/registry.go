package domain

import (
	"fmt"
	"strings"
)

// Industry is the tenant selected by the X-API-KEY header.
type Industry string

const (
	IndustryFood     Industry = "food"
	IndustryTextiles Industry = "textiles"
)

// Field is a canonical payload field name.
type Field string

const (
	FieldName      Field = "name"
	FieldTags      Field = "tags"
	FieldGroup     Field = "group"
	FieldCustomer  Field = "customer"
	FieldMaterials Field = "materials"
	FieldAllergens Field = "allergens"
	FieldColour    Field = "colour"
)

// Source field names as industries send them.
const (
	sourceFamily          = "family"
	sourceRange           = "range"
	sourceBillOfMaterials = "billOfMaterials"
)

type EntityKind string

const (
	KindGroup    EntityKind = "group"
	KindTag      EntityKind = "tag"
	KindCustomer EntityKind = "customer"
	KindAllergen EntityKind = "allergen"
	KindMaterial EntityKind = "material"
)

// Shape describes how a canonical field's JSON value is laid out.
type Shape int

const (
	ShapeScalar  Shape = iota // "sausage"
	ShapeList                 // ["spicy", "spanish"]
	ShapeMapping              // {"paprika": {"quantity": 100, "units": "tablespoons"}}
)

// IndustrySchema declares everything the assembly needs to know about one
// industry. It carries no behaviour.
type IndustrySchema struct {
	Industry                Industry
	ProductType             ProductType
	RequiredFields          []string
	FieldRenames            map[string]Field
	IndependentFields       []Field
	ProductDependentFields  []Field
	IndustryDependentFields []Field
	BaseProductFields       []Field
	SingleRelationFields    []Field
	MultiRelationFields     []Field
}

var Registry = map[Industry]IndustrySchema{
	IndustryFood: {
		Industry:    IndustryFood,
		ProductType: ProductTypeFood,
		RequiredFields: []string{
			string(FieldName), string(FieldTags), sourceFamily, string(FieldCustomer), sourceBillOfMaterials, string(FieldAllergens),
		},
		FieldRenames: map[string]Field{
			sourceFamily:          FieldGroup,
			sourceBillOfMaterials: FieldMaterials,
		},
		IndependentFields:       []Field{FieldTags, FieldGroup, FieldCustomer},
		ProductDependentFields:  []Field{FieldMaterials},
		IndustryDependentFields: []Field{FieldAllergens},
		BaseProductFields:       []Field{FieldName, FieldGroup, FieldCustomer},
		SingleRelationFields:    []Field{FieldGroup, FieldCustomer},
		MultiRelationFields:     []Field{FieldTags, FieldMaterials},
	},
	IndustryTextiles: {
		Industry:    IndustryTextiles,
		ProductType: ProductTypeTextile,
		RequiredFields: []string{
			string(FieldName), string(FieldTags), sourceRange, sourceBillOfMaterials, string(FieldColour),
		},
		FieldRenames: map[string]Field{
			sourceRange:           FieldGroup,
			sourceBillOfMaterials: FieldMaterials,
		},
		IndependentFields:      []Field{FieldTags, FieldGroup},
		ProductDependentFields: []Field{FieldMaterials},
		BaseProductFields:      []Field{FieldName, FieldGroup, FieldColour},
		SingleRelationFields:   []Field{FieldGroup},
		MultiRelationFields:    []Field{FieldTags, FieldMaterials},
	},
}

var industryAliases = map[string]Industry{
	"textile": IndustryTextiles,
}

var FieldShapes = map[Field]Shape{
	FieldName:      ShapeScalar,
	FieldGroup:     ShapeScalar,
	FieldCustomer:  ShapeScalar,
	FieldColour:    ShapeScalar,
	FieldTags:      ShapeList,
	FieldAllergens: ShapeList,
	FieldMaterials: ShapeMapping,
}

var fieldKinds = map[Field]EntityKind{
	FieldTags:      KindTag,
	FieldGroup:     KindGroup,
	FieldCustomer:  KindCustomer,
	FieldAllergens: KindAllergen,
	FieldMaterials: KindMaterial,
}

var entityConstructors = map[EntityKind]func(name string) Entity{
	KindGroup:    func(name string) Entity { return &Group{Named: Named{Name: name}} },
	KindTag:      func(name string) Entity { return &Tag{Named: Named{Name: name}} },
	KindCustomer: func(name string) Entity { return &Customer{Named: Named{Name: name}} },
	KindAllergen: func(name string) Entity { return &Allergen{Named: Named{Name: name}} },
	KindMaterial: func(name string) Entity { return &Material{Name: name} },
}

// LookupIndustry resolves an API key to its registry entry.
func LookupIndustry(key string) (IndustrySchema, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	ind := Industry(k)
	if alias, ok := industryAliases[k]; ok {
		ind = alias
	}
	s, ok := Registry[ind]
	if !ok {
		return IndustrySchema{}, fmt.Errorf("%w: %q", ErrUnknownIndustry, key)
	}
	return s, nil
}

// KindOf returns the entity kind backing a canonical field.
func KindOf(f Field) (EntityKind, error) {
	k, ok := fieldKinds[f]
	if !ok {
		return "", fmt.Errorf("%w: field %q", ErrUnknownEntityClass, f)
	}
	return k, nil
}

// NewEntity returns an unsaved entity of the given kind.
func NewEntity(kind EntityKind, name string) (Entity, error) {
	ctor, ok := entityConstructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownEntityClass, kind)
	}
	return ctor(name), nil
}

// Owned reports whether entities of this kind belong to one product and are
// therefore always inserted fresh instead of deduplicated.
func (k EntityKind) Owned() bool { return k == KindMaterial }

// Canonical maps a source field name to its canonical name.
func (s IndustrySchema) Canonical(source string) Field {
	if f, ok := s.FieldRenames[source]; ok {
		return f
	}
	return Field(source)
}

func (s IndustrySchema) IsSingleRelation(f Field) bool {
	for _, x := range s.SingleRelationFields {
		if x == f {
			return true
		}
	}
	return false
}
