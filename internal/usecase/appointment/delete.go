package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, userID, id uint) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	companyID, uid := actor(ctx, userID)
	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    uid,
		Action:    audit.ActionDelete,
		Entity:    "appointment",
		EntityID:  &id,
	})
	return nil
}
