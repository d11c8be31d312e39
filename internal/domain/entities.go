package domain

// MaxNameLength matches the size of the name, units and colour columns.
const MaxNameLength = 50

// Named is the unique natural key shared by every reference entity.
type Named struct {
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

type Group struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Named
}

type Tag struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Named
}

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Named
}

type Allergen struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Named
}

// Material is owned by a single product and never shared.
type Material struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Name      string  `gorm:"size:50;not null" json:"name"`
	Quantity  float64 `json:"quantity"`
	Units     string  `gorm:"size:50" json:"units"`
}

// Entity is any row the assembly can resolve or create for a payload field.
type Entity interface {
	EntityKind() EntityKind
	PrimaryKey() uint
}

func (g *Group) EntityKind() EntityKind    { return KindGroup }
func (t *Tag) EntityKind() EntityKind      { return KindTag }
func (c *Customer) EntityKind() EntityKind { return KindCustomer }
func (a *Allergen) EntityKind() EntityKind { return KindAllergen }
func (m *Material) EntityKind() EntityKind { return KindMaterial }

func (g *Group) PrimaryKey() uint    { return g.ID }
func (t *Tag) PrimaryKey() uint      { return t.ID }
func (c *Customer) PrimaryKey() uint { return c.ID }
func (a *Allergen) PrimaryKey() uint { return a.ID }
func (m *Material) PrimaryKey() uint { return m.ID }
