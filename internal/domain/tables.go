package domain

// Tables lists every model the catalog migrates, parents first.
var Tables = []interface{}{
	&Group{},
	&Tag{},
	&Customer{},
	&Allergen{},
	&Product{},
	&Material{},
	&FoodProduct{},
	&TextileProduct{},
}
