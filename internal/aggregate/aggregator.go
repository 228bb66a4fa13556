package aggregate

import (
	"sort"
	"time"

	"salescope/internal/warehouse"
)

// ByCustomer groups dated fact rows by customer key. Results are sorted
// by customer key. Rows with a nil order date are excluded.
func ByCustomer(facts []warehouse.SalesFact) []CustomerAggregate {
	type acc struct {
		agg      CustomerAggregate
		orders   map[string]struct{}
		products map[int]struct{}
	}

	groups := make(map[int]*acc)
	for _, f := range facts {
		if f.OrderDate == nil {
			continue
		}
		g, ok := groups[f.CustomerKey]
		if !ok {
			g = &acc{
				agg:      CustomerAggregate{CustomerKey: f.CustomerKey, FirstOrder: *f.OrderDate, LastOrder: *f.OrderDate},
				orders:   make(map[string]struct{}),
				products: make(map[int]struct{}),
			}
			groups[f.CustomerKey] = g
		}
		g.agg.TotalSales += f.SalesAmount
		g.agg.TotalQuantity += f.Quantity
		g.orders[f.OrderNumber] = struct{}{}
		g.products[f.ProductKey] = struct{}{}
		if f.OrderDate.Before(g.agg.FirstOrder) {
			g.agg.FirstOrder = *f.OrderDate
		}
		if f.OrderDate.After(g.agg.LastOrder) {
			g.agg.LastOrder = *f.OrderDate
		}
	}

	out := make([]CustomerAggregate, 0, len(groups))
	for _, g := range groups {
		g.agg.TotalOrders = len(g.orders)
		g.agg.TotalProducts = len(g.products)
		out = append(out, g.agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerKey < out[j].CustomerKey })
	return out
}

// ByProduct groups dated fact rows by product key. Results are sorted
// by product key.
func ByProduct(facts []warehouse.SalesFact) []ProductAggregate {
	type acc struct {
		agg       ProductAggregate
		orders    map[string]struct{}
		customers map[int]struct{}
		priceSum  float64
		priceN    int
	}

	groups := make(map[int]*acc)
	for _, f := range facts {
		if f.OrderDate == nil {
			continue
		}
		g, ok := groups[f.ProductKey]
		if !ok {
			g = &acc{
				agg:       ProductAggregate{ProductKey: f.ProductKey, FirstSale: *f.OrderDate, LastSale: *f.OrderDate},
				orders:    make(map[string]struct{}),
				customers: make(map[int]struct{}),
			}
			groups[f.ProductKey] = g
		}
		g.agg.TotalSales += f.SalesAmount
		g.agg.TotalQuantity += f.Quantity
		g.orders[f.OrderNumber] = struct{}{}
		g.customers[f.CustomerKey] = struct{}{}
		if f.OrderDate.Before(g.agg.FirstSale) {
			g.agg.FirstSale = *f.OrderDate
		}
		if f.OrderDate.After(g.agg.LastSale) {
			g.agg.LastSale = *f.OrderDate
		}
		// Zero-quantity rows have no defined unit price; skip them
		// rather than fail the whole aggregation.
		if f.Quantity > 0 {
			g.priceSum += f.SalesAmount / float64(f.Quantity)
			g.priceN++
		}
	}

	out := make([]ProductAggregate, 0, len(groups))
	for _, g := range groups {
		g.agg.TotalOrders = len(g.orders)
		g.agg.TotalCustomers = len(g.customers)
		if g.priceN > 0 {
			g.agg.AvgSellingPrice = g.priceSum / float64(g.priceN)
		}
		out = append(out, g.agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductKey < out[j].ProductKey })
	return out
}

// ByMonth groups dated fact rows into calendar month buckets. Results are
// sorted ascending by month, which downstream running-total passes rely on.
func ByMonth(facts []warehouse.SalesFact) []MonthlyAggregate {
	type acc struct {
		agg       MonthlyAggregate
		customers map[int]struct{}
		priceSum  float64
		rows      int
	}

	groups := make(map[time.Time]*acc)
	for _, f := range facts {
		if f.OrderDate == nil {
			continue
		}
		month := TruncMonth(*f.OrderDate)
		g, ok := groups[month]
		if !ok {
			g = &acc{
				agg:       MonthlyAggregate{Month: month},
				customers: make(map[int]struct{}),
			}
			groups[month] = g
		}
		g.agg.TotalSales += f.SalesAmount
		g.agg.TotalQuantity += f.Quantity
		g.customers[f.CustomerKey] = struct{}{}
		g.priceSum += f.Price
		g.rows++
	}

	out := make([]MonthlyAggregate, 0, len(groups))
	for _, g := range groups {
		g.agg.TotalCustomers = len(g.customers)
		if g.rows > 0 {
			g.agg.AvgPrice = g.priceSum / float64(g.rows)
		}
		out = append(out, g.agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// ByCategory groups dated fact rows by product category via a left join
// against the product dimension. Rows with no matching product still count,
// under the warehouse.Unknown category. Results are sorted by total sales
// descending.
func ByCategory(facts []warehouse.SalesFact, products map[int]warehouse.Product) []CategoryAggregate {
	groups := make(map[string]float64)
	for _, f := range facts {
		if f.OrderDate == nil {
			continue
		}
		category := warehouse.Unknown
		if p, ok := products[f.ProductKey]; ok && p.Category != "" {
			category = p.Category
		}
		groups[category] += f.SalesAmount
	}

	out := make([]CategoryAggregate, 0, len(groups))
	for category, total := range groups {
		out = append(out, CategoryAggregate{Category: category, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ByProductYear groups dated fact rows by (product, year). Results are
// sorted by product key then year, the order the year-over-year pass needs.
func ByProductYear(facts []warehouse.SalesFact) []ProductYearAggregate {
	type key struct {
		product int
		year    int
	}

	groups := make(map[key]float64)
	for _, f := range facts {
		if f.OrderDate == nil {
			continue
		}
		groups[key{f.ProductKey, f.OrderDate.Year()}] += f.SalesAmount
	}

	out := make([]ProductYearAggregate, 0, len(groups))
	for k, total := range groups {
		out = append(out, ProductYearAggregate{ProductKey: k.product, Year: k.year, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductKey != out[j].ProductKey {
			return out[i].ProductKey < out[j].ProductKey
		}
		return out[i].Year < out[j].Year
	})
	return out
}
