package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type GetOccupancy struct {
	repo   domain.Repository
	window time.Duration
	now    func() time.Time
}

func NewGetOccupancy(
	repo domain.Repository,
	window time.Duration,
	now func() time.Time,
) *GetOccupancy {
	if now == nil {
		now = time.Now
	}
	return &GetOccupancy{
		repo:   repo,
		window: window,
		now:    now,
	}
}

func (uc *GetOccupancy) Execute(ctx context.Context) (*domain.Occupancy, error) {
	start, end := domain.OccupancyWindow(uc.now(), uc.window)

	occupied, err := uc.repo.CountOccupiedWorkers(ctx, start, end)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountActiveWorkers(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Occupancy{
		WindowStart:  start,
		WindowEnd:    end,
		Occupied:     occupied,
		TotalWorkers: total,
		Percent:      domain.OccupancyPercent(occupied, total),
	}, nil
}
