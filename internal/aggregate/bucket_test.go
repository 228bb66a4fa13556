package aggregate

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTruncMonth(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{"mid-month", date(2014, time.March, 17), date(2014, time.March, 1)},
		{"first day", date(2014, time.March, 1), date(2014, time.March, 1)},
		{"last day", date(2013, time.December, 31), date(2013, time.December, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncMonth(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("TruncMonth(%v) = %v, want %v", tt.input, got, tt.want)
			}

			// Truncation is idempotent
			if again := TruncMonth(got); !again.Equal(got) {
				t.Errorf("TruncMonth not idempotent: %v -> %v", got, again)
			}
		})
	}
}

func TestTruncYear(t *testing.T) {
	got := TruncYear(date(2014, time.August, 9))
	want := date(2014, time.January, 1)
	if !got.Equal(want) {
		t.Errorf("TruncYear = %v, want %v", got, want)
	}

	if again := TruncYear(got); !again.Equal(got) {
		t.Errorf("TruncYear not idempotent: %v -> %v", got, again)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same month", date(2014, time.March, 1), date(2014, time.March, 30), 0},
		{"adjacent days across months", date(2014, time.January, 31), date(2014, time.February, 1), 1},
		{"one year", date(2013, time.June, 15), date(2014, time.June, 15), 12},
		{"thirteen months", date(2013, time.January, 15), date(2014, time.February, 10), 13},
		{"negative when reversed", date(2014, time.May, 1), date(2014, time.March, 1), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("MonthsBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same year", date(2014, time.January, 1), date(2014, time.December, 31), 0},
		{"calendar years only", date(1970, time.December, 31), date(2014, time.January, 1), 44},
		{"birthday not yet reached still counts", date(1990, time.October, 12), date(2014, time.March, 1), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearsBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("YearsBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
