package domain

import "context"

// MaterialSpec is one bill-of-materials entry.
type MaterialSpec struct {
	Quantity float64 `mapstructure:"quantity"`
	Units    string  `mapstructure:"units"`
}

// CatalogStore is the persistence the product use cases run against.
type CatalogStore interface {
	ProductExists(ctx context.Context, name string) (bool, error)
	ListProducts(ctx context.Context, t ProductType) ([]Product, error)
	// Assemble runs fn inside one transaction. Returning an error from fn
	// rolls back every write made through the AssemblyTx.
	Assemble(ctx context.Context, fn func(tx AssemblyTx) error) error
	Ping(ctx context.Context) error
}

// AssemblyTx is the write surface available while a product is assembled.
type AssemblyTx interface {
	// GetOrCreate returns the row of the given kind named name, inserting it
	// when absent. Losing an insert race to another writer is recovered.
	GetOrCreate(kind EntityKind, name string) (Entity, bool, error)
	// CreateMaterial always inserts a new material owned by productID.
	CreateMaterial(productID uint, name string, spec MaterialSpec) (*Material, error)
	// CreateProduct persists the product row and its subtype payload.
	CreateProduct(p *Product) error
	// Link attaches entities to the product relation named by field.
	Link(p *Product, field Field, entities []Entity) error
	Flush() error
}
