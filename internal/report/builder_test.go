package report

import (
	"math"
	"testing"
	"time"

	"salescope/internal/segment"
	"salescope/internal/source/fixture"
	"salescope/internal/warehouse"
)

// referenceDate matches the fixture dataset's last activity plus a few
// months, so recency values are meaningful.
var referenceDate = time.Date(2014, time.December, 31, 0, 0, 0, 0, time.UTC)

func fixtureBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(fixture.NewAdapter("../../fixtures/warehouse/dataset.json"))
}

func TestCustomerReport(t *testing.T) {
	builder := fixtureBuilder(t)

	rows, err := builder.CustomerReport(referenceDate)
	if err != nil {
		t.Fatalf("failed to build customer report: %v", err)
	}

	// 3 known customers plus one fact-only key.
	if len(rows) != 4 {
		t.Fatalf("expected 4 customer rows, got %d", len(rows))
	}

	byKey := make(map[int]CustomerRow)
	for _, r := range rows {
		byKey[r.CustomerKey] = r
	}

	c1 := byKey[1]
	if c1.Segment != segment.SegmentVIP {
		t.Errorf("expected customer 1 to be VIP, got %s", c1.Segment)
	}
	if c1.LifespanMonths != 13 {
		t.Errorf("expected lifespan 13, got %d", c1.LifespanMonths)
	}
	if c1.RecencyMonths != 10 {
		t.Errorf("expected recency 10, got %d", c1.RecencyMonths)
	}
	if c1.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", c1.TotalOrders)
	}
	if math.Abs(c1.AvgOrderValue-1880) > 0.0001 {
		t.Errorf("expected AOV 1880, got %.4f", c1.AvgOrderValue)
	}
	if c1.Age == nil || *c1.Age != 44 {
		t.Errorf("expected age 44, got %v", c1.Age)
	}
	if c1.AgeGroup != segment.Age40To49 {
		t.Errorf("expected age group 40-49, got %s", c1.AgeGroup)
	}

	c2 := byKey[2]
	if c2.Segment != segment.SegmentNew {
		t.Errorf("expected customer 2 to be New, got %s", c2.Segment)
	}
	if c2.AgeGroup != segment.Age20To29 {
		t.Errorf("expected age group 20-29, got %s", c2.AgeGroup)
	}

	// Customer 3 has no birthdate.
	c3 := byKey[3]
	if c3.Age != nil {
		t.Errorf("expected no age for customer 3, got %v", c3.Age)
	}
	if c3.AgeGroup != segment.AgeUnknown {
		t.Errorf("expected age group n/a, got %s", c3.AgeGroup)
	}

	// Customer key 99 has facts but no dimension row: numbers kept,
	// descriptive fields n/a, zero lifespan treated as one month.
	c99 := byKey[99]
	if c99.CustomerName != warehouse.Unknown {
		t.Errorf("expected n/a name for unmatched customer, got %s", c99.CustomerName)
	}
	if c99.TotalSales != 5 {
		t.Errorf("expected total sales 5, got %.2f", c99.TotalSales)
	}
	if math.Abs(c99.AvgMonthlySpend-5) > 0.0001 {
		t.Errorf("expected monthly spend 5 at zero lifespan, got %.4f", c99.AvgMonthlySpend)
	}
}

func TestProductReport(t *testing.T) {
	builder := fixtureBuilder(t)

	rows, err := builder.ProductReport(referenceDate)
	if err != nil {
		t.Fatalf("failed to build product report: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected 4 product rows, got %d", len(rows))
	}

	byKey := make(map[int]ProductRow)
	for _, r := range rows {
		byKey[r.ProductKey] = r
	}

	p10 := byKey[10]
	if p10.TotalSales != 4640 {
		t.Errorf("expected total sales 4640, got %.2f", p10.TotalSales)
	}
	if p10.Segment != segment.PerformanceLow {
		t.Errorf("expected Low-Performer, got %s", p10.Segment)
	}
	if p10.CostSegment != segment.CostAbove1000 {
		t.Errorf("expected Above 1000, got %s", p10.CostSegment)
	}
	// The zero-quantity row contributes no selling price.
	if math.Abs(p10.AvgSellingPrice-2320) > 0.0001 {
		t.Errorf("expected avg selling price 2320, got %.4f", p10.AvgSellingPrice)
	}
	if p10.TotalCustomers != 2 {
		t.Errorf("expected 2 distinct customers, got %d", p10.TotalCustomers)
	}

	// Cost exactly 500 lands in the first matching band.
	p11 := byKey[11]
	if p11.CostSegment != segment.Cost100To500 {
		t.Errorf("expected 100-500 for cost 500, got %s", p11.CostSegment)
	}

	// Product key 99 has no dimension row.
	p99 := byKey[99]
	if p99.ProductName != warehouse.Unknown || p99.CostSegment != warehouse.Unknown {
		t.Errorf("expected n/a descriptive fields, got name=%s costSegment=%s", p99.ProductName, p99.CostSegment)
	}
	if p99.TotalSales != 50 {
		t.Errorf("expected total sales 50 for unmatched product, got %.2f", p99.TotalSales)
	}
}

func TestMonthlyTrend(t *testing.T) {
	builder := fixtureBuilder(t)

	snap, err := builder.Build(ViewMonthlyTrend, referenceDate)
	if err != nil {
		t.Fatalf("failed to build monthly trend: %v", err)
	}

	rows := snap.Rows.([]MonthlyTrendRow)
	if len(rows) != 7 {
		t.Fatalf("expected 7 month buckets, got %d", len(rows))
	}

	// The running total at the last row equals the full-period total of
	// all dated fact rows.
	last := rows[len(rows)-1]
	if math.Abs(last.RunningTotal-6220) > 0.0001 {
		t.Errorf("expected running total 6220, got %.4f", last.RunningTotal)
	}

	// Running totals never decrease and each step adds the month's sales.
	var sum float64
	for i, r := range rows {
		sum += r.TotalSales
		if math.Abs(r.RunningTotal-sum) > 0.0001 {
			t.Errorf("row %d: running total %.4f, want %.4f", i, r.RunningTotal, sum)
		}
	}

	// Cumulative mean of monthly average price at the third month:
	// (2320 + 2320 + 500) / 3
	want := (2320.0 + 2320.0 + 500.0) / 3
	if math.Abs(rows[2].MovingAvgPrice-want) > 0.0001 {
		t.Errorf("expected moving avg price %.4f, got %.4f", want, rows[2].MovingAvgPrice)
	}
}

func TestYearlyPerformance(t *testing.T) {
	builder := fixtureBuilder(t)

	snap, err := builder.Build(ViewYearlyPerformance, referenceDate)
	if err != nil {
		t.Fatalf("failed to build yearly performance: %v", err)
	}

	rows := snap.Rows.([]YearlyPerformanceRow)

	type key struct {
		product int
		year    int
	}
	byKey := make(map[key]YearlyPerformanceRow)
	for _, r := range rows {
		byKey[key{r.ProductKey, r.Year}] = r
	}

	// Product 10 sold 4640 in 2013 and 0 in 2014 (zero-quantity row).
	p2013 := byKey[key{10, 2013}]
	if p2013.PrevYearSales != nil {
		t.Errorf("expected no previous year for first year, got %v", *p2013.PrevYearSales)
	}
	if p2013.AvgChange != segment.ChangeAboveAvg {
		t.Errorf("expected Above Avg for 2013, got %s", p2013.AvgChange)
	}

	p2014 := byKey[key{10, 2014}]
	if p2014.PrevYearSales == nil || *p2014.PrevYearSales != 4640 {
		t.Fatalf("expected previous year sales 4640, got %v", p2014.PrevYearSales)
	}
	if p2014.PrevChange != segment.ChangeDecrease {
		t.Errorf("expected Decrease, got %s", p2014.PrevChange)
	}

	// A product present in a single year has no basis for either
	// comparison: diff-from-average is exactly zero, previous-year
	// fields are absent.
	p11 := byKey[key{11, 2014}]
	if p11.AvgChange != segment.ChangeAvg {
		t.Errorf("expected Avg for single-year product, got %s", p11.AvgChange)
	}
	if p11.PrevYearSales != nil || p11.DiffPrevYear != nil || p11.PrevChange != "" {
		t.Errorf("expected absent previous-year fields for single-year product, got %+v", p11)
	}
}

func TestCategoryShare(t *testing.T) {
	builder := fixtureBuilder(t)

	snap, err := builder.Build(ViewCategoryShare, referenceDate)
	if err != nil {
		t.Fatalf("failed to build category share: %v", err)
	}

	rows := snap.Rows.([]CategoryShareRow)
	if len(rows) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(rows))
	}

	// Shares sum to 100% within rounding tolerance.
	var sum float64
	for _, r := range rows {
		sum += r.SharePct
	}
	if math.Abs(sum-100) > 0.05 {
		t.Errorf("expected shares to sum to 100, got %.4f", sum)
	}

	// Sorted by total sales descending, with the unmatched-product bucket
	// included.
	if rows[0].Category != "Bikes" {
		t.Errorf("expected Bikes first, got %s", rows[0].Category)
	}
	found := false
	for _, r := range rows {
		if r.Category == warehouse.Unknown && r.TotalSales == 50 {
			found = true
		}
	}
	if !found {
		t.Error("expected an n/a category bucket holding unmatched product sales")
	}
}

func TestBuildSnapshotMetadata(t *testing.T) {
	builder := fixtureBuilder(t)

	for _, view := range []View{ViewCustomers, ViewProducts, ViewMonthlyTrend, ViewYearlyPerformance, ViewCategoryShare} {
		t.Run(string(view), func(t *testing.T) {
			snap, err := builder.Build(view, referenceDate)
			if err != nil {
				t.Fatalf("failed to build %s: %v", view, err)
			}
			if snap.View != view {
				t.Errorf("expected view %s, got %s", view, snap.View)
			}
			if snap.RowCount == 0 {
				t.Error("expected rows in snapshot")
			}
			if !snap.ReferenceDate.Equal(referenceDate) {
				t.Errorf("expected reference date %v, got %v", referenceDate, snap.ReferenceDate)
			}
			if math.Abs(snap.TotalSales-6220) > 0.0001 {
				t.Errorf("expected snapshot total 6220, got %.4f", snap.TotalSales)
			}
		})
	}
}

func TestBuildUnknownView(t *testing.T) {
	builder := fixtureBuilder(t)

	if _, err := builder.Build(View("bogus"), referenceDate); err == nil {
		t.Fatal("expected error for unknown view")
	}
}
