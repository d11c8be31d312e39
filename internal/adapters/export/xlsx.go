package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/productcatalog/internal/domain"
)

const sheetName = "products"

var baseHeader = []string{"id", "name", "type", "group", "tags", "material", "quantity", "units"}

// WriteXLSX writes products as a workbook with one row per material. Products
// without materials still get a single row.
func WriteXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	header := append([]string{}, baseHeader...)
	header = append(header, "customer", "allergens", "colour")
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, p := range products {
		materials := p.Materials
		if len(materials) == 0 {
			materials = []domain.Material{{}}
		}
		for _, m := range materials {
			cells := productRow(p, m)
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
			row++
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func productRow(p domain.Product, m domain.Material) []interface{} {
	group := ""
	if p.Group != nil {
		group = p.Group.Name
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}
	var quantity interface{}
	if m.ID != 0 {
		quantity = m.Quantity
	}
	cells := []interface{}{p.ID, p.Name, string(p.Type), group, strings.Join(tags, ", "), m.Name, quantity, m.Units}

	customer, allergens, colour := "", "", ""
	if p.Food != nil {
		if p.Food.Customer != nil {
			customer = p.Food.Customer.Name
		}
		names := make([]string, 0, len(p.Food.Allergens))
		for _, a := range p.Food.Allergens {
			names = append(names, a.Name)
		}
		allergens = strings.Join(names, ", ")
	}
	if p.Textile != nil {
		colour = p.Textile.Colour
	}
	return append(cells, customer, allergens, colour)
}
