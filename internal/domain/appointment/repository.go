package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SearchQuery filters appointment listings. Start/End bound ScheduledAt as a
// half-open interval; nil means unbounded.
type SearchQuery struct {
	Text            string
	Start           *time.Time
	End             *time.Time
	IncludeInactive bool
}

// Choices are the values an appointment form may offer: active rows of the
// active company only.
type Choices struct {
	Clients      []models.Client      `json:"clients"`
	ServiceTypes []models.ServiceType `json:"service_types"`
	Workers      []models.Worker      `json:"workers"`
	Statuses     []StatusDef          `json:"statuses"`
}

// Repository reads the active company from ctx on every call and fails
// closed when none is present.
type Repository interface {
	// -------- Appointment (crud) --------
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	Create(ctx context.Context, ap *models.Appointment) error
	Update(ctx context.Context, ap *models.Appointment) error
	SoftDelete(ctx context.Context, id uint) error

	// -------- Appointment (state change) --------
	UpdateStatus(ctx context.Context, ap *models.Appointment) error
	FinalizeIfEligible(ctx context.Context, id uint) (bool, error)

	// -------- Queries --------
	Search(ctx context.Context, q SearchQuery) ([]models.Appointment, error)
	ListForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	Choices(ctx context.Context) (*Choices, error)

	// -------- Occupancy --------
	CountOccupiedWorkers(ctx context.Context, start, end time.Time) (int64, error)
	CountActiveWorkers(ctx context.Context) (int64, error)
}
