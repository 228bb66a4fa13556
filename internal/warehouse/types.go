package warehouse

import (
	"strings"
	"time"
)

// Unknown is the label reported for dimension attributes when a fact row
// has no matching dimension record (left-outer-join semantics).
const Unknown = "n/a"

// SalesFact is a single transactional sale from the fact table.
// OrderDate may be nil; such rows are excluded from all analysis.
type SalesFact struct {
	OrderNumber string
	OrderDate   *time.Time
	CustomerKey int
	ProductKey  int
	SalesAmount float64
	Quantity    int
	Price       float64
}

// Customer is a row from the customer dimension.
type Customer struct {
	CustomerKey    int
	CustomerNumber string
	FirstName      string
	LastName       string
	Birthdate      *time.Time
}

// FullName returns the customer's display name, or Unknown when the
// dimension carries no name at all.
func (c Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return Unknown
	}
	return name
}

// Product is a row from the product dimension.
type Product struct {
	ProductKey  int
	ProductName string
	Category    string
	Subcategory string
	Cost        float64
}

// Dataset is an immutable snapshot of the three warehouse tables.
// Reports are always recomputed from a Dataset; nothing here is mutated.
type Dataset struct {
	Facts     []SalesFact
	Customers []Customer
	Products  []Product
}

// CustomerByKey builds a lookup index over the customer dimension.
func (d *Dataset) CustomerByKey() map[int]Customer {
	index := make(map[int]Customer, len(d.Customers))
	for _, c := range d.Customers {
		index[c.CustomerKey] = c
	}
	return index
}

// ProductByKey builds a lookup index over the product dimension.
func (d *Dataset) ProductByKey() map[int]Product {
	index := make(map[int]Product, len(d.Products))
	for _, p := range d.Products {
		index[p.ProductKey] = p
	}
	return index
}
