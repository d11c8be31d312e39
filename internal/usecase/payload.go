package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/phenrril/productcatalog/internal/domain"
)

type mappingItem struct {
	Name string
	Spec domain.MaterialSpec
}

// payload is the canonical working copy of a request body: industry field
// names are already renamed and every value is decoded into its shape.
type payload struct {
	scalars  map[domain.Field]string
	lists    map[domain.Field][]string
	mappings map[domain.Field][]mappingItem
}

func (p *payload) has(f domain.Field) bool {
	if v, ok := p.scalars[f]; ok {
		return v != ""
	}
	if v, ok := p.lists[f]; ok {
		return len(v) > 0
	}
	if v, ok := p.mappings[f]; ok {
		return len(v) > 0
	}
	return false
}

// normalize validates raw against the industry's required fields and
// produces the canonical payload. It never touches storage.
func normalize(schema domain.IndustrySchema, raw []byte) (*payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, domain.ErrMissingBody
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}

	if mismatch := compareFields(schema.RequiredFields, fields); mismatch != nil {
		return nil, mismatch
	}

	p := &payload{
		scalars:  map[domain.Field]string{},
		lists:    map[domain.Field][]string{},
		mappings: map[domain.Field][]mappingItem{},
	}
	var invalid []string
	for source, value := range fields {
		field := schema.Canonical(source)
		var err error
		switch domain.FieldShapes[field] {
		case domain.ShapeList:
			p.lists[field], err = decodeList(value)
			if err == nil {
				err = checkNames(p.lists[field]...)
			}
		case domain.ShapeMapping:
			p.mappings[field], err = decodeMapping(value)
			if err == nil {
				err = checkMapping(p.mappings[field])
			}
		default:
			p.scalars[field], err = decodeScalar(value)
			if err == nil && p.scalars[field] == "" {
				err = errEmptyValue
			}
			if err == nil {
				err = checkNames(p.scalars[field])
			}
		}
		if err != nil {
			invalid = append(invalid, source)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &domain.SchemaMismatchError{Invalid: invalid}
	}
	return p, nil
}

func compareFields(required []string, got map[string]json.RawMessage) error {
	want := make(map[string]struct{}, len(required))
	var missing, extra []string
	for _, f := range required {
		want[f] = struct{}{}
		if _, ok := got[f]; !ok {
			missing = append(missing, f)
		}
	}
	for f := range got {
		if _, ok := want[f]; !ok {
			extra = append(extra, f)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return &domain.SchemaMismatchError{Missing: missing, Extra: extra}
}

func decodeScalar(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func decodeList(raw json.RawMessage) ([]string, error) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, err := cast.ToStringE(it)
		if err != nil {
			return nil, err
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

var (
	errNotObject  = errors.New("expected a json object")
	errEmptyValue = errors.New("empty value")
	errTooLong    = fmt.Errorf("longer than %d characters", domain.MaxNameLength)
)

func checkNames(names ...string) error {
	for _, n := range names {
		if utf8.RuneCountInString(n) > domain.MaxNameLength {
			return errTooLong
		}
	}
	return nil
}

func checkMapping(items []mappingItem) error {
	for _, it := range items {
		if it.Name == "" {
			return errEmptyValue
		}
		if err := checkNames(it.Name, it.Spec.Units); err != nil {
			return err
		}
	}
	return nil
}

// decodeMapping keeps the object's keys in document order. A repeated key
// keeps its first position and its last value.
func decodeMapping(raw json.RawMessage) ([]mappingItem, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}
	var items []mappingItem
	seen := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var attrs map[string]any
		if err := dec.Decode(&attrs); err != nil {
			return nil, err
		}
		var spec domain.MaterialSpec
		md, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: &spec})
		if err != nil {
			return nil, err
		}
		if err := md.Decode(attrs); err != nil {
			return nil, err
		}
		item := mappingItem{Name: strings.TrimSpace(name), Spec: spec}
		if i, ok := seen[item.Name]; ok {
			items[i] = item
			continue
		}
		seen[item.Name] = len(items)
		items = append(items, item)
	}
	return items, nil
}
