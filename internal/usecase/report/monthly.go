package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Source loads the active rows of the active company behind a report.
type Source interface {
	Appointments(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	CountNewClients(ctx context.Context, start, end time.Time) (int64, error)
	Clients(ctx context.Context, end time.Time) ([]models.Client, error)
	NonCancelledCounts(ctx context.Context, start *time.Time, end time.Time) (map[uint]int64, error)
}

type GenerateMonthlyReport struct {
	source Source
	now    func() time.Time
}

func NewGenerateMonthlyReport(
	source Source,
	now func() time.Time,
) *GenerateMonthlyReport {
	if now == nil {
		now = time.Now
	}
	return &GenerateMonthlyReport{
		source: source,
		now:    now,
	}
}

// ParseYearMonth reads optional year and month query values. Blank values
// come back as zero.
func ParseYearMonth(year, month string) (int, time.Month, error) {
	var y, m int
	var err error

	if year = strings.TrimSpace(year); year != "" {
		if y, err = strconv.Atoi(year); err != nil {
			return 0, 0, domain.ErrInvalidYear
		}
	}
	if month = strings.TrimSpace(month); month != "" {
		if m, err = strconv.Atoi(month); err != nil {
			return 0, 0, domain.ErrInvalidMonth
		}
	}
	return y, time.Month(m), nil
}

// Execute aggregates one calendar month in the company timezone. A zero
// year or month means the current one.
func (uc *GenerateMonthlyReport) Execute(
	ctx context.Context,
	year int,
	month time.Month,
) (*domain.MonthlyReport, error) {

	company, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, tenant.ErrNoActiveTenant
	}
	loc := timezone.Location(company.Timezone)

	now := uc.now().In(loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	period, err := domain.NewPeriod(year, month, loc)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.source.Appointments(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	newClients, err := uc.source.CountNewClients(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	clients, err := uc.source.Clients(ctx, period.End)
	if err != nil {
		return nil, err
	}

	lookbackStart := period.LookbackStart()
	lookback, err := uc.source.NonCancelledCounts(ctx, &lookbackStart, period.End)
	if err != nil {
		return nil, err
	}
	history, err := uc.source.NonCancelledCounts(ctx, nil, period.End)
	if err != nil {
		return nil, err
	}

	return domain.Aggregate(domain.Input{
		Period:         period,
		Appointments:   appointments,
		NewClients:     newClients,
		Clients:        clients,
		LookbackCounts: lookback,
		HistoryCounts:  history,
	}), nil
}
