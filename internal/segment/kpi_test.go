package segment

import (
	"math"
	"testing"
)

func TestAvgOrderValue(t *testing.T) {
	tests := []struct {
		name        string
		totalSales  float64
		totalOrders int
		want        float64
	}{
		{"normal", 1000, 4, 250},
		{"single order", 99.5, 1, 99.5},
		{"zero orders returns zero", 1000, 0, 0},
		{"zero everything", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvgOrderValue(tt.totalSales, tt.totalOrders)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AvgOrderValue(%.2f, %d) = %.4f, want %.4f",
					tt.totalSales, tt.totalOrders, got, tt.want)
			}
		})
	}
}

func TestAvgMonthlySpend(t *testing.T) {
	tests := []struct {
		name           string
		totalSales     float64
		lifespanMonths int
		want           float64
	}{
		{"normal", 1200, 12, 100},
		{"zero lifespan returns total", 750, 0, 750},
		{"one month", 300, 1, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvgMonthlySpend(tt.totalSales, tt.lifespanMonths)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AvgMonthlySpend(%.2f, %d) = %.4f, want %.4f",
					tt.totalSales, tt.lifespanMonths, got, tt.want)
			}
		})
	}
}

func TestContributionPct(t *testing.T) {
	tests := []struct {
		name  string
		part  float64
		grand float64
		want  float64
	}{
		{"half", 50, 100, 50},
		{"rounded to 2dp", 1, 3, 33.33},
		{"full share", 42, 42, 100},
		{"zero grand total", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContributionPct(tt.part, tt.grand)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("ContributionPct(%.2f, %.2f) = %.4f, want %.4f",
					tt.part, tt.grand, got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(33.3333); got != 33.33 {
		t.Errorf("Round2(33.3333) = %v, want 33.33", got)
	}
	if got := Round2(66.666); got != 66.67 {
		t.Errorf("Round2(66.666) = %v, want 66.67", got)
	}
}
