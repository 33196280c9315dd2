// Package tenant resolves the active company of a request and carries it
// through context.Context.
package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	// ErrNoActiveTenant means the session never selected a company. Callers
	// redirect to the selection flow.
	ErrNoActiveTenant = errors.New("no active company")

	// ErrTenantNotFound means the selected company does not exist or belongs
	// to another user. It answers as 404.
	ErrTenantNotFound = fmt.Errorf("company not found: %w", httperr.ErrNotFound)
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the active company.
func NewContext(ctx context.Context, company *models.Company) context.Context {
	return context.WithValue(ctx, ctxKey{}, company)
}

// FromContext returns the active company stored by NewContext.
func FromContext(ctx context.Context) (*models.Company, bool) {
	company, ok := ctx.Value(ctxKey{}).(*models.Company)
	return company, ok && company != nil
}

// CompanyID returns the active company id or ErrNoActiveTenant.
func CompanyID(ctx context.Context) (uint, error) {
	company, ok := FromContext(ctx)
	if !ok {
		return 0, ErrNoActiveTenant
	}
	return company.ID, nil
}
