package report

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// LookbackMonths is the trailing window, report month included, used to find
// clients that stopped coming.
const LookbackMonths = 6

var (
	ErrInvalidYear  = httperr.ErrBusiness("invalid_year")
	ErrInvalidMonth = httperr.ErrBusiness("invalid_month")
)

// Period is a calendar month in one company's timezone.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// NewPeriod returns [first day of month, first day of next month) in loc.
func NewPeriod(year int, month time.Month, loc *time.Location) (Period, error) {
	if year < 1900 || year > 9999 {
		return Period{}, ErrInvalidYear
	}
	if month < time.January || month > time.December {
		return Period{}, ErrInvalidMonth
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{
		Year:  year,
		Month: month,
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}

// LookbackStart is the first instant of the lookback window ending with p.
func (p Period) LookbackStart() time.Time {
	return p.Start.AddDate(0, -(LookbackMonths - 1), 0)
}
