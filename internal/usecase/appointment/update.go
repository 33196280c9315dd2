package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UpdateAppointmentInput struct {
	UserID        uint
	AppointmentID uint

	// ScheduledAt is a wall-clock time in the company timezone.
	ScheduledAt string
	// Status is optional; blank keeps the current status.
	Status string

	ClientID      uint
	ServiceTypeID uint
	WorkerID      uint
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute rewrites the form fields of an active appointment of the active
// company. References are checked the same way as on create.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	loc, err := companyLocation(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.Get(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	at, err := time.ParseInLocation(ScheduledLayout, in.ScheduledAt, loc)
	if err != nil {
		return nil, ErrInvalidDateOrTime
	}

	if in.Status != "" {
		s, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidStatusCode
		}
		ap.Status = string(s)
	}

	ap.ScheduledAt = at.UTC()
	ap.ClientID = in.ClientID
	ap.ServiceTypeID = in.ServiceTypeID
	ap.WorkerID = in.WorkerID

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	companyID, userID := actor(ctx, in.UserID)
	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    userID,
		Action:    audit.ActionUpdate,
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
