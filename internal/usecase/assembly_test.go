package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/productcatalog/internal/domain"
)

// recordingStore keeps everything in memory and records the order of writes.
type recordingStore struct {
	existing map[string]bool
	calls    []string
	nextID   uint
	failOn   string
	opened   bool
}

func (s *recordingStore) ProductExists(_ context.Context, name string) (bool, error) {
	return s.existing[name], nil
}

func (s *recordingStore) ListProducts(context.Context, domain.ProductType) ([]domain.Product, error) {
	return nil, nil
}

func (s *recordingStore) Ping(context.Context) error { return nil }

func (s *recordingStore) Assemble(_ context.Context, fn func(tx domain.AssemblyTx) error) error {
	s.opened = true
	return fn(s)
}

func (s *recordingStore) record(call string) error {
	s.calls = append(s.calls, call)
	if call == s.failOn {
		return errors.New("boom")
	}
	return nil
}

func (s *recordingStore) GetOrCreate(kind domain.EntityKind, name string) (domain.Entity, bool, error) {
	if err := s.record(fmt.Sprintf("get %s %s", kind, name)); err != nil {
		return nil, false, err
	}
	s.nextID++
	e, err := domain.NewEntity(kind, name)
	if err != nil {
		return nil, false, err
	}
	switch v := e.(type) {
	case *domain.Group:
		v.ID = s.nextID
	case *domain.Customer:
		v.ID = s.nextID
	case *domain.Tag:
		v.ID = s.nextID
	case *domain.Allergen:
		v.ID = s.nextID
	}
	return e, true, nil
}

func (s *recordingStore) CreateMaterial(productID uint, name string, spec domain.MaterialSpec) (*domain.Material, error) {
	if err := s.record(fmt.Sprintf("material %s product=%d", name, productID)); err != nil {
		return nil, err
	}
	s.nextID++
	return &domain.Material{ID: s.nextID, ProductID: productID, Name: name, Quantity: spec.Quantity, Units: spec.Units}, nil
}

func (s *recordingStore) CreateProduct(p *domain.Product) error {
	if err := s.record("product " + p.Name); err != nil {
		return err
	}
	s.nextID++
	p.ID = s.nextID
	if p.Food != nil {
		p.Food.ProductID = p.ID
	}
	return nil
}

func (s *recordingStore) Link(p *domain.Product, field domain.Field, entities []domain.Entity) error {
	return s.record(fmt.Sprintf("link %s %d", field, len(entities)))
}

func (s *recordingStore) Flush() error { return s.record("flush") }

func TestCreateProductRunsPhasesInOrder(t *testing.T) {
	store := &recordingStore{}
	uc := &ProductUC{Store: store}

	id, err := uc.CreateProduct(context.Background(), []byte(chorizoJSON), "food")
	require.NoError(t, err)
	assert.NotZero(t, id)

	assert.Equal(t, []string{
		"get tag spicy",
		"get tag spanish",
		"get group sausage",
		"get customer Deans Butchers",
		"flush",
		"product Chorizo",
		"material paprika product=5",
		"material pork mince product=5",
		"get allergen cereals",
		"link tags 2",
		"link materials 2",
		"link allergens 1",
	}, store.calls)
}

func TestCreateProductLeavesRegistryUntouched(t *testing.T) {
	before := len(domain.Registry[domain.IndustryFood].MultiRelationFields)
	uc := &ProductUC{Store: &recordingStore{}}
	for i := 0; i < 3; i++ {
		body := []byte(fmt.Sprintf(`{"name":"p%d","family":"f","tags":["t"],"allergens":["a"],"customer":"c","billOfMaterials":{}}`, i))
		_, err := uc.CreateProduct(context.Background(), body, "food")
		require.NoError(t, err)
	}
	assert.Len(t, domain.Registry[domain.IndustryFood].MultiRelationFields, before)
}

func TestCreateProductValidationNeverOpensTransaction(t *testing.T) {
	cases := []struct {
		name string
		key  string
		body string
		want error
	}{
		{"unknown key", "skeleton_key", chorizoJSON, domain.ErrUnknownIndustry},
		{"no body", "food", "", domain.ErrMissingBody},
		{"missing field", "food", `{"name":"Chorizo"}`, domain.ErrSchemaMismatch},
		{"duplicate", "food", chorizoJSON, domain.ErrDuplicateProduct},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &recordingStore{existing: map[string]bool{"Chorizo": true}}
			uc := &ProductUC{Store: store}
			_, err := uc.CreateProduct(context.Background(), []byte(tc.body), tc.key)
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, store.opened)
			assert.Empty(t, store.calls)
		})
	}
}

func TestCreateProductStopsAtFirstFailure(t *testing.T) {
	store := &recordingStore{failOn: "material paprika product=5"}
	uc := &ProductUC{Store: store}

	_, err := uc.CreateProduct(context.Background(), []byte(chorizoJSON), "food")
	require.Error(t, err)
	assert.Equal(t, "material paprika product=5", store.calls[len(store.calls)-1])
}
