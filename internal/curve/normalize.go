package curve

import (
	"strconv"
	"strings"
	"time"

	"gas-storage-valuation/internal/model"
)

// DefaultPeriodLengthDays is used when a contract label cannot be resolved
// to a definite month/year.
const DefaultPeriodLengthDays = 30

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Normalize converts raw contract quotes, in the order they will occur,
// into the priced-period sequence consumed by the valuation engine.
// Order is preserved and no entry is dropped; quotes whose delivery month
// cannot be determined get DefaultPeriodLengthDays.
func Normalize(quotes []model.ContractQuote) []model.ForwardPricePoint {
	points := make([]model.ForwardPricePoint, len(quotes))
	for i, q := range quotes {
		points[i] = model.ForwardPricePoint{
			Label:            q.Contract,
			Price:            q.Price,
			PeriodLengthDays: PeriodLength(q),
		}
	}
	return points
}

// PeriodLength resolves the day count for one quote's delivery month.
func PeriodLength(q model.ContractQuote) int {
	if q.Month >= 1 && q.Month <= 12 && q.Year > 0 {
		return DaysInMonth(q.Year, time.Month(q.Month))
	}
	if month, year, ok := ParseContractLabel(q.Contract); ok {
		return DaysInMonth(year, month)
	}
	return DefaultPeriodLengthDays
}

// ParseContractLabel parses labels of the form "Jan 2026" (month name is
// case-insensitive, full names accepted).
func ParseContractLabel(label string) (time.Month, int, bool) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, 0, false
	}
	name := strings.ToLower(fields[0])
	if len(name) > 3 {
		name = name[:3]
	}
	month, ok := monthsByName[name]
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil || year < 1900 || year > 3000 {
		return 0, 0, false
	}
	return month, year, true
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
