package models

// Product is an orderable blank offered in the catalog
type Product struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Specs       string `json:"specs,omitempty" yaml:"specs"`
	Turnaround  string `json:"turnaround,omitempty" yaml:"turnaround"`
	MinQuantity int    `json:"minQuantity" yaml:"minQuantity"`
}

// PrintMethod is a decoration technique (screen print, DTG, ...)
type PrintMethod struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Colorway is a predefined garment color
type Colorway struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Hex   string `json:"hex" yaml:"hex"`
}

// BudgetRange is one option of the budget selector
type BudgetRange struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

const (
	// DefaultMinimumOrderQuantity applies when a catalog does not set one
	DefaultMinimumOrderQuantity = 50
	// DefaultRushThresholdDays applies when a catalog does not set one
	DefaultRushThresholdDays = 3
)

// Catalog is everything the request wizard offers to choose from
type Catalog struct {
	MinimumOrderQuantity int           `json:"minimumOrderQuantity" yaml:"minimumOrderQuantity"`
	RushThresholdDays    int           `json:"rushThresholdDays" yaml:"rushThresholdDays"`
	Products             []Product     `json:"products" yaml:"products"`
	PrintMethods         []PrintMethod `json:"printMethods" yaml:"printMethods"`
	Colorways            []Colorway    `json:"colorways" yaml:"colorways"`
	PrintLocations       []string      `json:"printLocations" yaml:"printLocations"`
	BudgetRanges         []BudgetRange `json:"budgetRanges" yaml:"budgetRanges"`
}

// MOQ is the minimum order quantity per product line
func (c *Catalog) MOQ() int {
	if c == nil || c.MinimumOrderQuantity <= 0 {
		return DefaultMinimumOrderQuantity
	}
	return c.MinimumOrderQuantity
}

// RushDays is the lead time in days under which an order is a rush order.
// Zero means the default.
func (c *Catalog) RushDays() int {
	if c == nil || c.RushThresholdDays <= 0 {
		return DefaultRushThresholdDays
	}
	return c.RushThresholdDays
}

// ProductByID returns the product with the given id
func (c *Catalog) ProductByID(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// PrintMethodByID returns the print method with the given id
func (c *Catalog) PrintMethodByID(id string) (PrintMethod, bool) {
	for _, m := range c.PrintMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PrintMethod{}, false
}

// ColorwayByID returns the predefined colorway with the given id
func (c *Catalog) ColorwayByID(id string) (Colorway, bool) {
	for _, cw := range c.Colorways {
		if cw.ID == id {
			return cw, true
		}
	}
	return Colorway{}, false
}

// BudgetRangeByID returns the budget range with the given id
func (c *Catalog) BudgetRangeByID(id string) (BudgetRange, bool) {
	for _, b := range c.BudgetRanges {
		if b.ID == id {
			return b, true
		}
	}
	return BudgetRange{}, false
}
