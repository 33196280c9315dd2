package tenant

import (
	"context"
	"errors"
	"strconv"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

// CompanyFinder loads a company only when it is owned by userID.
type CompanyFinder interface {
	FindOwned(ctx context.Context, companyID, userID uint) (*models.Company, error)
}

// Resolver is the only writer of the active-company session field.
type Resolver struct {
	store     session.Store
	companies CompanyFinder
}

func NewResolver(store session.Store, companies CompanyFinder) *Resolver {
	return &Resolver{store: store, companies: companies}
}

// Resolve returns the company selected in the session, re-checking that
// userID still owns it.
func (r *Resolver) Resolve(ctx context.Context, sid string, userID uint) (*models.Company, error) {
	raw, err := r.store.Get(ctx, sid, session.FieldCompanyID)
	if errors.Is(err, session.ErrMiss) || (err == nil && raw == "") {
		return nil, ErrNoActiveTenant
	}
	if err != nil {
		return nil, err
	}

	companyID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || companyID == 0 {
		return nil, ErrTenantNotFound
	}

	return r.owned(ctx, uint(companyID), userID)
}

// Select makes companyID the active company of the session. A company the
// user does not own is rejected and the session keeps its previous value.
func (r *Resolver) Select(ctx context.Context, sid string, userID, companyID uint) (*models.Company, error) {
	company, err := r.owned(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	if err := r.store.Set(ctx, sid, session.FieldCompanyID, strconv.FormatUint(uint64(company.ID), 10)); err != nil {
		return nil, err
	}
	return company, nil
}

func (r *Resolver) owned(ctx context.Context, companyID, userID uint) (*models.Company, error) {
	company, err := r.companies.FindOwned(ctx, companyID, userID)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}
