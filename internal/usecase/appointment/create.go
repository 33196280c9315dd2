package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ScheduledLayout is the form layout of the scheduled date and time.
const ScheduledLayout = "2006-01-02 15:04"

var ErrInvalidDateOrTime = httperr.ErrBusiness("invalid_date_or_time")

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID uint

	// ScheduledAt is a wall-clock time in the company timezone.
	ScheduledAt string
	// Status is optional; blank means the initial status.
	Status string

	ClientID      uint
	ServiceTypeID uint
	WorkerID      uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc, err := companyLocation(ctx)
	if err != nil {
		return nil, err
	}

	at, err := time.ParseInLocation(ScheduledLayout, in.ScheduledAt, loc)
	if err != nil {
		return nil, ErrInvalidDateOrTime
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		s, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidStatusCode
		}
		status = s
	}

	ap := &models.Appointment{
		ScheduledAt:   at.UTC(),
		Status:        string(status),
		ClientID:      in.ClientID,
		ServiceTypeID: in.ServiceTypeID,
		WorkerID:      in.WorkerID,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	companyID, userID := actor(ctx, in.UserID)
	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    userID,
		Action:    audit.ActionCreate,
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"status":          ap.Status,
			"scheduled_at":    ap.ScheduledAt,
			"client_id":       ap.ClientID,
			"service_type_id": ap.ServiceTypeID,
			"worker_id":       ap.WorkerID,
		},
	})

	return uc.repo.Get(ctx, ap.ID)
}
