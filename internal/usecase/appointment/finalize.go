package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var ErrCouldNotBeFinalized = httperr.ErrBusiness("could_not_be_finalized")

type FinalizeResult struct {
	ID        uint   `json:"id"`
	Finalized bool   `json:"finalized"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
}

type FinalizeAppointments struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinalizeAppointments(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinalizeAppointments {
	return &FinalizeAppointments{
		repo:  repo,
		audit: audit,
	}
}

// Execute finalizes each selected appointment that is still pending or
// executing. Ids that no longer qualify are reported, not failed.
func (uc *FinalizeAppointments) Execute(
	ctx context.Context,
	userID uint,
	ids []uint,
) ([]FinalizeResult, error) {

	out := make([]FinalizeResult, 0, len(ids))
	for _, id := range ids {
		ok, err := uc.repo.FinalizeIfEligible(ctx, id)
		if err != nil {
			return nil, err
		}

		if !ok {
			out = append(out, FinalizeResult{
				ID:        id,
				ErrorCode: "could_not_be_finalized",
				Message:   httperr.Message("could_not_be_finalized"),
			})
			continue
		}

		companyID, uid := actor(ctx, userID)
		entityID := id
		uc.audit.Dispatch(audit.Event{
			CompanyID: companyID,
			UserID:    uid,
			Action:    audit.ActionFinalize,
			Entity:    "appointment",
			EntityID:  &entityID,
		})

		out = append(out, FinalizeResult{
			ID:        id,
			Finalized: true,
			Message:   "Agendamento finalizado.",
		})
	}
	return out, nil
}

// One finalizes a single appointment, failing with ErrCouldNotBeFinalized
// when it no longer qualifies.
func (uc *FinalizeAppointments) One(ctx context.Context, userID, id uint) error {
	res, err := uc.Execute(ctx, userID, []uint{id})
	if err != nil {
		return err
	}
	if !res[0].Finalized {
		return ErrCouldNotBeFinalized
	}
	return nil
}
