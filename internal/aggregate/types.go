package aggregate

import "time"

// CustomerAggregate holds per-customer totals over the dated fact rows.
type CustomerAggregate struct {
	CustomerKey   int
	TotalSales    float64
	TotalQuantity int
	TotalOrders   int // distinct order numbers
	TotalProducts int // distinct product keys
	FirstOrder    time.Time
	LastOrder     time.Time
}

// ProductAggregate holds per-product totals over the dated fact rows.
// AvgSellingPrice is the mean of sales_amount/quantity across rows with
// quantity > 0; rows with zero quantity contribute no price.
type ProductAggregate struct {
	ProductKey      int
	TotalSales      float64
	TotalQuantity   int
	TotalOrders     int // distinct order numbers
	TotalCustomers  int // distinct customer keys
	FirstSale       time.Time
	LastSale        time.Time
	AvgSellingPrice float64
}

// MonthlyAggregate holds totals for one calendar month bucket.
// AvgPrice is the mean unit price over the month's rows.
type MonthlyAggregate struct {
	Month          time.Time
	TotalSales     float64
	TotalQuantity  int
	TotalCustomers int // distinct customer keys
	AvgPrice       float64
}

// CategoryAggregate holds totals for one product category. Fact rows with
// no matching product dimension group under warehouse.Unknown.
type CategoryAggregate struct {
	Category   string
	TotalSales float64
}

// ProductYearAggregate holds totals for one (product, year) pair.
type ProductYearAggregate struct {
	ProductKey int
	Year       int
	TotalSales float64
}
