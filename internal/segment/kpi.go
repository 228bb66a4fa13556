package segment

import "math"

// AvgOrderValue returns total sales divided by distinct order count,
// or 0 when there are no orders.
func AvgOrderValue(totalSales float64, totalOrders int) float64 {
	if totalOrders == 0 {
		return 0
	}
	return totalSales / float64(totalOrders)
}

// AvgMonthlySpend returns total sales divided by lifespan in months.
// A zero lifespan (single-month customer or product) counts as one full
// month, so the result is the total itself.
func AvgMonthlySpend(totalSales float64, lifespanMonths int) float64 {
	if lifespanMonths == 0 {
		return totalSales
	}
	return totalSales / float64(lifespanMonths)
}

// ContributionPct returns part/grand as a percentage rounded to two
// decimal places, or 0 when the grand total is zero.
func ContributionPct(part, grand float64) float64 {
	if grand == 0 {
		return 0
	}
	return Round2(part / grand * 100)
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
