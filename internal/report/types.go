package report

import (
	"time"

	"salescope/internal/segment"
)

// View identifies one of the reporting views.
type View string

const (
	ViewCustomers         View = "customers"
	ViewProducts          View = "products"
	ViewMonthlyTrend      View = "monthly_trend"
	ViewYearlyPerformance View = "yearly_performance"
	ViewCategoryShare     View = "category_share"
)

// KnownView reports whether v names a view this builder can produce.
func KnownView(v View) bool {
	switch v {
	case ViewCustomers, ViewProducts, ViewMonthlyTrend, ViewYearlyPerformance, ViewCategoryShare:
		return true
	}
	return false
}

// CustomerRow is one row of the customer report.
type CustomerRow struct {
	CustomerKey     int                     `json:"customerKey"`
	CustomerNumber  string                  `json:"customerNumber"`
	CustomerName    string                  `json:"customerName"`
	Age             *int                    `json:"age,omitempty"`
	AgeGroup        string                  `json:"ageGroup"`
	Segment         segment.CustomerSegment `json:"segment"`
	TotalOrders     int                     `json:"totalOrders"`
	TotalSales      float64                 `json:"totalSales"`
	TotalQuantity   int                     `json:"totalQuantity"`
	TotalProducts   int                     `json:"totalProducts"`
	LifespanMonths  int                     `json:"lifespanMonths"`
	RecencyMonths   int                     `json:"recencyMonths"`
	LastOrder       time.Time               `json:"lastOrder"`
	AvgOrderValue   float64                 `json:"avgOrderValue"`
	AvgMonthlySpend float64                 `json:"avgMonthlySpend"`
}

// ProductRow is one row of the product report.
type ProductRow struct {
	ProductKey        int                        `json:"productKey"`
	ProductName       string                     `json:"productName"`
	Category          string                     `json:"category"`
	Subcategory       string                     `json:"subcategory"`
	Cost              float64                    `json:"cost"`
	CostSegment       string                     `json:"costSegment"`
	Segment           segment.PerformanceSegment `json:"segment"`
	TotalOrders       int                        `json:"totalOrders"`
	TotalSales        float64                    `json:"totalSales"`
	TotalQuantity     int                        `json:"totalQuantity"`
	TotalCustomers    int                        `json:"totalCustomers"`
	LifespanMonths    int                        `json:"lifespanMonths"`
	RecencyMonths     int                        `json:"recencyMonths"`
	LastSale          time.Time                  `json:"lastSale"`
	AvgSellingPrice   float64                    `json:"avgSellingPrice"`
	AvgOrderRevenue   float64                    `json:"avgOrderRevenue"`
	AvgMonthlyRevenue float64                    `json:"avgMonthlyRevenue"`
}

// MonthlyTrendRow is one month of the sales trend view. RunningTotal and
// MovingAvgPrice accumulate over all months up to and including this one.
type MonthlyTrendRow struct {
	Month          time.Time `json:"month"`
	TotalSales     float64   `json:"totalSales"`
	TotalCustomers int       `json:"totalCustomers"`
	TotalQuantity  int       `json:"totalQuantity"`
	AvgPrice       float64   `json:"avgPrice"`
	RunningTotal   float64   `json:"runningTotal"`
	MovingAvgPrice float64   `json:"movingAvgPrice"`
}

// YearlyPerformanceRow compares one product-year against the product's
// all-years average and its previous year. The previous-year fields are
// absent for a product's first observed year.
type YearlyPerformanceRow struct {
	ProductKey    int      `json:"productKey"`
	ProductName   string   `json:"productName"`
	Year          int      `json:"year"`
	TotalSales    float64  `json:"totalSales"`
	AvgSales      float64  `json:"avgSales"`
	DiffAvg       float64  `json:"diffAvg"`
	AvgChange     string   `json:"avgChange"`
	PrevYearSales *float64 `json:"prevYearSales,omitempty"`
	DiffPrevYear  *float64 `json:"diffPrevYear,omitempty"`
	PrevChange    string   `json:"prevChange,omitempty"`
}

// CategoryShareRow is one category's contribution to overall sales.
type CategoryShareRow struct {
	Category   string  `json:"category"`
	TotalSales float64 `json:"totalSales"`
	SharePct   float64 `json:"sharePct"`
}

// Snapshot is a fully built view plus the metadata the cache, history
// store and API need.
type Snapshot struct {
	View          View        `json:"view"`
	ReferenceDate time.Time   `json:"referenceDate"`
	BuiltAt       time.Time   `json:"builtAt"`
	RowCount      int         `json:"rowCount"`
	TotalSales    float64     `json:"totalSales"`
	Rows          interface{} `json:"rows"`
}
