package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"salescope/internal/warehouse"
)

// dateLayout is how the warehouse stores dates (TEXT columns).
const dateLayout = "2006-01-02"

// Adapter is a warehouse provider backed by a SQLite database holding the
// star schema: fact_sales plus the dim_customers and dim_products tables.
// The adapter only ever reads.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens the warehouse database at the given path.
func NewAdapter(dbPath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach warehouse: %w", err)
	}
	return &Adapter{db: db}, nil
}

// Dataset implements the source.Provider interface by scanning all three
// tables into memory.
func (a *Adapter) Dataset() (*warehouse.Dataset, error) {
	facts, err := a.loadFacts()
	if err != nil {
		return nil, err
	}
	customers, err := a.loadCustomers()
	if err != nil {
		return nil, err
	}
	products, err := a.loadProducts()
	if err != nil {
		return nil, err
	}
	return &warehouse.Dataset{Facts: facts, Customers: customers, Products: products}, nil
}

func (a *Adapter) loadFacts() ([]warehouse.SalesFact, error) {
	rows, err := a.db.Query(`
		SELECT order_number, order_date, customer_key, product_key, sales_amount, quantity, price
		FROM fact_sales
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fact_sales: %w", err)
	}
	defer rows.Close()

	var facts []warehouse.SalesFact
	for rows.Next() {
		var f warehouse.SalesFact
		var orderDate sql.NullString
		if err := rows.Scan(&f.OrderNumber, &orderDate, &f.CustomerKey, &f.ProductKey,
			&f.SalesAmount, &f.Quantity, &f.Price); err != nil {
			return nil, fmt.Errorf("failed to scan fact row: %w", err)
		}
		date, err := parseNullDate(orderDate)
		if err != nil {
			return nil, fmt.Errorf("fact %s: %w", f.OrderNumber, err)
		}
		f.OrderDate = date
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fact row iteration error: %w", err)
	}
	return facts, nil
}

func (a *Adapter) loadCustomers() ([]warehouse.Customer, error) {
	rows, err := a.db.Query(`
		SELECT customer_key, customer_number, first_name, last_name, birthdate
		FROM dim_customers
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dim_customers: %w", err)
	}
	defer rows.Close()

	var customers []warehouse.Customer
	for rows.Next() {
		var c warehouse.Customer
		var birthdate sql.NullString
		if err := rows.Scan(&c.CustomerKey, &c.CustomerNumber, &c.FirstName, &c.LastName, &birthdate); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		date, err := parseNullDate(birthdate)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", c.CustomerKey, err)
		}
		c.Birthdate = date
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customer row iteration error: %w", err)
	}
	return customers, nil
}

func (a *Adapter) loadProducts() ([]warehouse.Product, error) {
	rows, err := a.db.Query(`
		SELECT product_key, product_name, category, subcategory, cost
		FROM dim_products
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dim_products: %w", err)
	}
	defer rows.Close()

	var products []warehouse.Product
	for rows.Next() {
		var p warehouse.Product
		if err := rows.Scan(&p.ProductKey, &p.ProductName, &p.Category, &p.Subcategory, &p.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product row iteration error: %w", err)
	}
	return products, nil
}

// Close closes the database connection.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func parseNullDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v.String)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", v.String, err)
	}
	return &t, nil
}
