package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type DailySheetInput struct {
	// Date is an optional YYYY-MM-DD day in the company timezone. When set
	// it takes precedence over Offset.
	Date string
	// Offset is the signed number of days from today.
	Offset int
	// Desc orders every bucket latest first.
	Desc bool
}

type GetDailySheet struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetDailySheet(
	repo domain.Repository,
	now func() time.Time,
) *GetDailySheet {
	if now == nil {
		now = time.Now
	}
	return &GetDailySheet{
		repo: repo,
		now:  now,
	}
}

// Execute partitions the appointments of Date, or of today+Offset, in the
// company timezone, by status.
func (uc *GetDailySheet) Execute(
	ctx context.Context,
	in DailySheetInput,
) (*domain.DailySheet, error) {

	loc, err := companyLocation(ctx)
	if err != nil {
		return nil, err
	}

	today := timezone.StartOfDay(uc.now(), loc)
	if in.Date == "" {
		return uc.ForDate(ctx, today.AddDate(0, 0, in.Offset), in.Offset, in.Desc)
	}

	day, err := timezone.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}
	return uc.ForDate(ctx, day, timezone.DaysBetween(today, day), in.Desc)
}

// ForDate builds the sheet of an explicit calendar day.
func (uc *GetDailySheet) ForDate(
	ctx context.Context,
	day time.Time,
	offset int,
	desc bool,
) (*domain.DailySheet, error) {

	loc, err := companyLocation(ctx)
	if err != nil {
		return nil, err
	}

	start, end := timezone.DayBounds(day, loc)
	appointments, err := uc.repo.ListForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sheet, err := domain.NewDailySheet(start, offset, appointments)
	if err != nil {
		return nil, err
	}
	for _, s := range domain.Statuses() {
		sheet.SortBucket(s.Code, desc)
	}
	return sheet, nil
}
