package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type Dashboard struct {
	Label     string            `json:"label"`
	Pending   int               `json:"pending"`
	Executing int               `json:"executing"`
	Finished  int               `json:"finished"`
	Cancelled int               `json:"cancelled"`
	Total     int               `json:"total"`
	Occupancy *domain.Occupancy `json:"occupancy"`
}

type GetDashboard struct {
	sheet     *GetDailySheet
	occupancy *GetOccupancy
}

func NewGetDashboard(
	sheet *GetDailySheet,
	occupancy *GetOccupancy,
) *GetDashboard {
	return &GetDashboard{
		sheet:     sheet,
		occupancy: occupancy,
	}
}

// Execute summarizes today and the occupied-now snapshot.
func (uc *GetDashboard) Execute(ctx context.Context) (*Dashboard, error) {
	sheet, err := uc.sheet.Execute(ctx, DailySheetInput{})
	if err != nil {
		return nil, err
	}
	occ, err := uc.occupancy.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Label:     sheet.Label,
		Pending:   len(sheet.Pending),
		Executing: len(sheet.Executing),
		Finished:  len(sheet.Finished),
		Cancelled: len(sheet.Cancelled),
		Total:     sheet.Total(),
		Occupancy: occ,
	}, nil
}
