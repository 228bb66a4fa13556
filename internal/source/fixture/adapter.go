package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"salescope/internal/warehouse"
)

// dateLayout is the wire format for dates in fixture files.
const dateLayout = "2006-01-02"

// datasetFixture is the JSON fixture file format.
type datasetFixture struct {
	Facts     []factRow     `json:"facts"`
	Customers []customerRow `json:"customers"`
	Products  []productRow  `json:"products"`
}

type factRow struct {
	OrderNumber string  `json:"orderNumber"`
	OrderDate   *string `json:"orderDate"` // "2006-01-02", null when unknown
	CustomerKey int     `json:"customerKey"`
	ProductKey  int     `json:"productKey"`
	SalesAmount float64 `json:"salesAmount"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type customerRow struct {
	CustomerKey    int     `json:"customerKey"`
	CustomerNumber string  `json:"customerNumber"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Birthdate      *string `json:"birthdate"`
}

type productRow struct {
	ProductKey  int     `json:"productKey"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Cost        float64 `json:"cost"`
}

// Adapter is a warehouse provider backed by a JSON fixture file. It exists
// for tests and local runs without a real warehouse.
type Adapter struct {
	path string
}

// NewAdapter creates a fixture adapter for the given file path.
func NewAdapter(path string) *Adapter {
	return &Adapter{path: path}
}

// Dataset implements the source.Provider interface.
func (a *Adapter) Dataset() (*warehouse.Dataset, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var fx datasetFixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	return fx.toDataset()
}

func (fx *datasetFixture) toDataset() (*warehouse.Dataset, error) {
	ds := &warehouse.Dataset{
		Facts:     make([]warehouse.SalesFact, 0, len(fx.Facts)),
		Customers: make([]warehouse.Customer, 0, len(fx.Customers)),
		Products:  make([]warehouse.Product, 0, len(fx.Products)),
	}

	for i, f := range fx.Facts {
		date, err := parseDate(f.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("facts[%d]: %w", i, err)
		}
		ds.Facts = append(ds.Facts, warehouse.SalesFact{
			OrderNumber: f.OrderNumber,
			OrderDate:   date,
			CustomerKey: f.CustomerKey,
			ProductKey:  f.ProductKey,
			SalesAmount: f.SalesAmount,
			Quantity:    f.Quantity,
			Price:       f.Price,
		})
	}

	for i, c := range fx.Customers {
		birthdate, err := parseDate(c.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("customers[%d]: %w", i, err)
		}
		ds.Customers = append(ds.Customers, warehouse.Customer{
			CustomerKey:    c.CustomerKey,
			CustomerNumber: c.CustomerNumber,
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			Birthdate:      birthdate,
		})
	}

	for _, p := range fx.Products {
		ds.Products = append(ds.Products, warehouse.Product{
			ProductKey:  p.ProductKey,
			ProductName: p.ProductName,
			Category:    p.Category,
			Subcategory: p.Subcategory,
			Cost:        p.Cost,
		})
	}

	return ds, nil
}

// parseDate converts an optional "2006-01-02" string to a time. A nil or
// empty value stays nil, which downstream aggregation treats as excluded.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &t, nil
}
