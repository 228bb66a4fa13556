package report

import (
	"fmt"
	"sort"
	"time"

	"salescope/internal/aggregate"
	"salescope/internal/segment"
	"salescope/internal/source"
	"salescope/internal/warehouse"
)

// Builder assembles report views from a warehouse provider. Every build
// re-fetches the dataset and recomputes from scratch; views hold no state
// between runs.
type Builder struct {
	src source.Provider
}

// NewBuilder creates a builder over the given warehouse provider.
func NewBuilder(src source.Provider) *Builder {
	return &Builder{src: src}
}

// Build produces a snapshot of the named view. The reference date feeds
// recency and age calculations; views that do not need one still record it.
func (b *Builder) Build(view View, now time.Time) (*Snapshot, error) {
	ds, err := b.src.Dataset()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	snap := &Snapshot{
		View:          view,
		ReferenceDate: now,
		BuiltAt:       time.Now(),
	}

	switch view {
	case ViewCustomers:
		rows := buildCustomerRows(ds, now)
		for _, r := range rows {
			snap.TotalSales += r.TotalSales
		}
		snap.RowCount = len(rows)
		snap.Rows = rows

	case ViewProducts:
		rows := buildProductRows(ds, now)
		for _, r := range rows {
			snap.TotalSales += r.TotalSales
		}
		snap.RowCount = len(rows)
		snap.Rows = rows

	case ViewMonthlyTrend:
		rows := buildMonthlyTrendRows(ds)
		if n := len(rows); n > 0 {
			snap.TotalSales = rows[n-1].RunningTotal
		}
		snap.RowCount = len(rows)
		snap.Rows = rows

	case ViewYearlyPerformance:
		rows := buildYearlyPerformanceRows(ds)
		for _, r := range rows {
			snap.TotalSales += r.TotalSales
		}
		snap.RowCount = len(rows)
		snap.Rows = rows

	case ViewCategoryShare:
		rows := buildCategoryShareRows(ds)
		for _, r := range rows {
			snap.TotalSales += r.TotalSales
		}
		snap.RowCount = len(rows)
		snap.Rows = rows

	default:
		return nil, fmt.Errorf("unknown view: %s", view)
	}

	return snap, nil
}

// CustomerReport builds the customer report rows directly.
func (b *Builder) CustomerReport(now time.Time) ([]CustomerRow, error) {
	ds, err := b.src.Dataset()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	return buildCustomerRows(ds, now), nil
}

// ProductReport builds the product report rows directly.
func (b *Builder) ProductReport(now time.Time) ([]ProductRow, error) {
	ds, err := b.src.Dataset()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	return buildProductRows(ds, now), nil
}

func buildCustomerRows(ds *warehouse.Dataset, now time.Time) []CustomerRow {
	customers := ds.CustomerByKey()
	aggs := aggregate.ByCustomer(ds.Facts)

	rows := make([]CustomerRow, 0, len(aggs))
	for _, agg := range aggs {
		lifespan := aggregate.MonthsBetween(agg.FirstOrder, agg.LastOrder)

		row := CustomerRow{
			CustomerKey:     agg.CustomerKey,
			CustomerNumber:  warehouse.Unknown,
			CustomerName:    warehouse.Unknown,
			AgeGroup:        segment.AgeUnknown,
			Segment:         segment.ClassifyCustomer(lifespan, agg.TotalSales),
			TotalOrders:     agg.TotalOrders,
			TotalSales:      agg.TotalSales,
			TotalQuantity:   agg.TotalQuantity,
			TotalProducts:   agg.TotalProducts,
			LifespanMonths:  lifespan,
			RecencyMonths:   aggregate.MonthsBetween(agg.LastOrder, now),
			LastOrder:       agg.LastOrder,
			AvgOrderValue:   segment.AvgOrderValue(agg.TotalSales, agg.TotalOrders),
			AvgMonthlySpend: segment.AvgMonthlySpend(agg.TotalSales, lifespan),
		}

		// Left join against the customer dimension: an unmatched fact row
		// keeps its numbers, descriptive fields stay n/a.
		if c, ok := customers[agg.CustomerKey]; ok {
			row.CustomerNumber = c.CustomerNumber
			row.CustomerName = c.FullName()
			if c.Birthdate != nil {
				age := aggregate.YearsBetween(*c.Birthdate, now)
				row.Age = &age
				row.AgeGroup = segment.ClassifyAge(age)
			}
		}

		rows = append(rows, row)
	}
	return rows
}

func buildProductRows(ds *warehouse.Dataset, now time.Time) []ProductRow {
	products := ds.ProductByKey()
	aggs := aggregate.ByProduct(ds.Facts)

	rows := make([]ProductRow, 0, len(aggs))
	for _, agg := range aggs {
		lifespan := aggregate.MonthsBetween(agg.FirstSale, agg.LastSale)

		row := ProductRow{
			ProductKey:        agg.ProductKey,
			ProductName:       warehouse.Unknown,
			Category:          warehouse.Unknown,
			Subcategory:       warehouse.Unknown,
			CostSegment:       warehouse.Unknown,
			Segment:           segment.ClassifyPerformance(agg.TotalSales),
			TotalOrders:       agg.TotalOrders,
			TotalSales:        agg.TotalSales,
			TotalQuantity:     agg.TotalQuantity,
			TotalCustomers:    agg.TotalCustomers,
			LifespanMonths:    lifespan,
			RecencyMonths:     aggregate.MonthsBetween(agg.LastSale, now),
			LastSale:          agg.LastSale,
			AvgSellingPrice:   agg.AvgSellingPrice,
			AvgOrderRevenue:   segment.AvgOrderValue(agg.TotalSales, agg.TotalOrders),
			AvgMonthlyRevenue: segment.AvgMonthlySpend(agg.TotalSales, lifespan),
		}

		if p, ok := products[agg.ProductKey]; ok {
			row.ProductName = p.ProductName
			row.Category = p.Category
			row.Subcategory = p.Subcategory
			row.Cost = p.Cost
			row.CostSegment = segment.ClassifyCost(p.Cost)
		}

		rows = append(rows, row)
	}
	return rows
}

func buildMonthlyTrendRows(ds *warehouse.Dataset) []MonthlyTrendRow {
	aggs := aggregate.ByMonth(ds.Facts)

	// ByMonth returns months sorted ascending; the cumulative pass depends
	// on that ordering.
	rows := make([]MonthlyTrendRow, 0, len(aggs))
	var runningTotal float64
	var priceSum float64
	for i, agg := range aggs {
		runningTotal += agg.TotalSales
		priceSum += agg.AvgPrice
		rows = append(rows, MonthlyTrendRow{
			Month:          agg.Month,
			TotalSales:     agg.TotalSales,
			TotalCustomers: agg.TotalCustomers,
			TotalQuantity:  agg.TotalQuantity,
			AvgPrice:       agg.AvgPrice,
			RunningTotal:   runningTotal,
			MovingAvgPrice: priceSum / float64(i+1),
		})
	}
	return rows
}

func buildYearlyPerformanceRows(ds *warehouse.Dataset) []YearlyPerformanceRow {
	products := ds.ProductByKey()
	aggs := aggregate.ByProductYear(ds.Facts)

	// Mean sales per product across all its years.
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, agg := range aggs {
		sums[agg.ProductKey] += agg.TotalSales
		counts[agg.ProductKey]++
	}

	rows := make([]YearlyPerformanceRow, 0, len(aggs))
	for i, agg := range aggs {
		avg := sums[agg.ProductKey] / float64(counts[agg.ProductKey])
		diffAvg := agg.TotalSales - avg

		row := YearlyPerformanceRow{
			ProductKey:  agg.ProductKey,
			ProductName: warehouse.Unknown,
			Year:        agg.Year,
			TotalSales:  agg.TotalSales,
			AvgSales:    avg,
			DiffAvg:     diffAvg,
			AvgChange:   classifyDiff(diffAvg, segment.ChangeAboveAvg, segment.ChangeBelowAvg, segment.ChangeAvg),
		}
		if p, ok := products[agg.ProductKey]; ok {
			row.ProductName = p.ProductName
		}

		// ByProductYear is ordered by (product, year), so the preceding
		// slice entry is this product's previous year when keys match.
		// A product's first year has no basis for comparison.
		if i > 0 && aggs[i-1].ProductKey == agg.ProductKey {
			prev := aggs[i-1].TotalSales
			diff := agg.TotalSales - prev
			row.PrevYearSales = &prev
			row.DiffPrevYear = &diff
			row.PrevChange = classifyDiff(diff, segment.ChangeIncrease, segment.ChangeDecrease, segment.ChangeNone)
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].ProductKey < rows[j].ProductKey
	})
	return rows
}

func buildCategoryShareRows(ds *warehouse.Dataset) []CategoryShareRow {
	aggs := aggregate.ByCategory(ds.Facts, ds.ProductByKey())

	var grand float64
	for _, agg := range aggs {
		grand += agg.TotalSales
	}

	rows := make([]CategoryShareRow, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, CategoryShareRow{
			Category:   agg.Category,
			TotalSales: agg.TotalSales,
			SharePct:   segment.ContributionPct(agg.TotalSales, grand),
		})
	}
	return rows
}

// classifyDiff labels a difference by sign; exactly zero takes the last label.
func classifyDiff(diff float64, positive, negative, zero string) string {
	switch {
	case diff > 0:
		return positive
	case diff < 0:
		return negative
	default:
		return zero
	}
}
