package segment

// CustomerSegment classifies a customer by lifespan and total spend.
type CustomerSegment string

const (
	SegmentVIP     CustomerSegment = "VIP"
	SegmentRegular CustomerSegment = "Regular"
	SegmentNew     CustomerSegment = "New"
)

// PerformanceSegment classifies a product by total revenue.
type PerformanceSegment string

const (
	PerformanceHigh PerformanceSegment = "High-Performer"
	PerformanceMid  PerformanceSegment = "Mid-Range"
	PerformanceLow  PerformanceSegment = "Low-Performer"
)

// Age group labels.
const (
	AgeUnder20    = "Under 20"
	Age20To29     = "20-29"
	Age30To39     = "30-39"
	Age40To49     = "40-49"
	Age50AndAbove = "50 and above"
	AgeUnknown    = "n/a"
)

// Cost segment labels.
const (
	CostBelow100  = "Below 100"
	Cost100To500  = "100-500"
	Cost500To1000 = "500-1000"
	CostAbove1000 = "Above 1000"
)

// Year-over-year change labels.
const (
	ChangeAboveAvg = "Above Avg"
	ChangeBelowAvg = "Below Avg"
	ChangeAvg      = "Avg"
	ChangeIncrease = "Increase"
	ChangeDecrease = "Decrease"
	ChangeNone     = "No Change"
)
