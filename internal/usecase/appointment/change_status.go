package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Move int

const (
	// MoveAuto advances when Code is blank and sets Code otherwise.
	MoveAuto Move = iota
	MoveAdvance
	MoveRevert
	MoveSet
)

type ChangeStatusInput struct {
	UserID        uint
	AppointmentID uint
	Move          Move
	Code          string
}

type ChangeStatusResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Transition  domain.Transition   `json:"transition"`
	Message     string              `json:"message"`
}

type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies one transition and persists only the status column. A
// business error leaves the stored appointment unchanged.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*ChangeStatusResult, error) {

	ap, err := uc.repo.Get(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	var tr domain.Transition
	switch {
	case in.Move == MoveAdvance || (in.Move == MoveAuto && in.Code == ""):
		tr, err = domain.Advance(ap)
	case in.Move == MoveRevert:
		tr, err = domain.Revert(ap)
	default:
		tr, err = domain.SetStatus(ap, in.Code)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap); err != nil {
		return nil, err
	}

	companyID, userID := actor(ctx, in.UserID)
	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    userID,
		Action:    audit.ActionStatus,
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"from": tr.From,
			"to":   tr.To,
		},
	})

	return &ChangeStatusResult{
		Appointment: ap,
		Transition:  tr,
		Message:     fmt.Sprintf("Status alterado de %s para %s.", tr.From.Label(), tr.To.Label()),
	}, nil
}
