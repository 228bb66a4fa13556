package segment

// ClassifyCustomer maps a customer's lifespan (whole months between first
// and last order) and total spend to a segment. The 5000 boundary belongs
// to Regular: VIP requires strictly greater spend.
func ClassifyCustomer(lifespanMonths int, totalSales float64) CustomerSegment {
	switch {
	case lifespanMonths >= 12 && totalSales > 5000:
		return SegmentVIP
	case lifespanMonths >= 12:
		return SegmentRegular
	default:
		return SegmentNew
	}
}

// ClassifyAge maps an age in years to a decade bucket.
func ClassifyAge(age int) string {
	switch {
	case age < 20:
		return AgeUnder20
	case age <= 29:
		return Age20To29
	case age <= 39:
		return Age30To39
	case age <= 49:
		return Age40To49
	default:
		return Age50AndAbove
	}
}

// ClassifyCost maps a product cost to a price band. The bands are inclusive
// on both ends and evaluated in order: a cost of exactly 500 lands in
// "100-500" and exactly 1000 lands in "500-1000".
func ClassifyCost(cost float64) string {
	switch {
	case cost < 100:
		return CostBelow100
	case cost >= 100 && cost <= 500:
		return Cost100To500
	case cost >= 500 && cost <= 1000:
		return Cost500To1000
	default:
		return CostAbove1000
	}
}

// ClassifyPerformance maps a product's total revenue to a performance tier.
// Exactly 50000 is Mid-Range: High-Performer requires strictly greater.
func ClassifyPerformance(totalSales float64) PerformanceSegment {
	switch {
	case totalSales > 50000:
		return PerformanceHigh
	case totalSales >= 10000:
		return PerformanceMid
	default:
		return PerformanceLow
	}
}
