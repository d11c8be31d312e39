package httpserver

import "github.com/phenrril/productcatalog/internal/domain"

type namedJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// productJSON flattens a product and its industry payload into one object.
// Industry fields are omitted for products of the other industry.
type productJSON struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	GroupID    uint              `json:"group_id"`
	Group      *namedJSON        `json:"group"`
	Tags       []namedJSON       `json:"tags"`
	Materials  []domain.Material `json:"materials"`
	CustomerID *uint             `json:"customer_id,omitempty"`
	Customer   *namedJSON        `json:"customer,omitempty"`
	Allergens  []namedJSON       `json:"allergens,omitempty"`
	Colour     *string           `json:"colour,omitempty"`
}

func toProductJSON(p *domain.Product) productJSON {
	out := productJSON{
		ID:        p.ID,
		Name:      p.Name,
		Type:      string(p.Type),
		GroupID:   p.GroupID,
		Tags:      make([]namedJSON, 0, len(p.Tags)),
		Materials: p.Materials,
	}
	if out.Materials == nil {
		out.Materials = []domain.Material{}
	}
	if p.Group != nil {
		out.Group = &namedJSON{ID: p.Group.ID, Name: p.Group.Name}
	}
	for _, t := range p.Tags {
		out.Tags = append(out.Tags, namedJSON{ID: t.ID, Name: t.Name})
	}
	if f := p.Food; f != nil {
		customerID := f.CustomerID
		out.CustomerID = &customerID
		if f.Customer != nil {
			out.Customer = &namedJSON{ID: f.Customer.ID, Name: f.Customer.Name}
		}
		out.Allergens = make([]namedJSON, 0, len(f.Allergens))
		for _, a := range f.Allergens {
			out.Allergens = append(out.Allergens, namedJSON{ID: a.ID, Name: a.Name})
		}
	}
	if t := p.Textile; t != nil {
		colour := t.Colour
		out.Colour = &colour
	}
	return out
}
