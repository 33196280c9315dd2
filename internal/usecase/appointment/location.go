package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// companyLocation is the timezone of the active company.
func companyLocation(ctx context.Context) (*time.Location, error) {
	company, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, tenant.ErrNoActiveTenant
	}
	return timezone.Location(company.Timezone), nil
}

func actor(ctx context.Context, userID uint) (uint, *uint) {
	companyID, _ := tenant.CompanyID(ctx)
	if userID == 0 {
		return companyID, nil
	}
	return companyID, &userID
}
