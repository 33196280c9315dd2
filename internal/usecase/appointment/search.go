package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SearchAppointmentsInput struct {
	Text string
	// From and To are inclusive YYYY-MM-DD dates in the company timezone.
	From            string
	To              string
	IncludeInactive bool
}

type SearchAppointments struct {
	repo domain.Repository
}

func NewSearchAppointments(
	repo domain.Repository,
) *SearchAppointments {
	return &SearchAppointments{
		repo: repo,
	}
}

func (uc *SearchAppointments) Execute(
	ctx context.Context,
	in SearchAppointmentsInput,
) ([]models.Appointment, error) {

	loc, err := companyLocation(ctx)
	if err != nil {
		return nil, err
	}

	start, end, err := timezone.InclusiveRange(in.From, in.To, loc)
	if err != nil {
		return nil, err
	}

	return uc.repo.Search(ctx, domain.SearchQuery{
		Text:            in.Text,
		Start:           start,
		End:             end,
		IncludeInactive: in.IncludeInactive,
	})
}
