package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/tenant"
)

// CrossTenantReferenceError is raised when a write references a row owned by
// another company. It signals a bug or tampering and is never shown to users.
type CrossTenantReferenceError struct {
	Field               string
	ReferencedID        uint
	CompanyID           uint
	ReferencedCompanyID uint
}

func (e *CrossTenantReferenceError) Error() string {
	return fmt.Sprintf(
		"cross-tenant reference: %s=%d belongs to company %d, active company is %d",
		e.Field, e.ReferencedID, e.ReferencedCompanyID, e.CompanyID,
	)
}

var (
	ErrAlreadyDeleted = httperr.ErrBusiness("already_deleted")
	ErrNotDeleted     = httperr.ErrBusiness("not_deleted")
	ErrInvalidChoice  = httperr.ErrBusiness("invalid_choice")
)

// Filter is one stage of a scoped query.
type Filter func(db *gorm.DB) *gorm.DB

type query struct {
	includeInactive bool
	filters         []Filter
	joins           []string
	preloads        []string
	order           []clause.OrderByColumn
}

type Option func(*query)

// IncludeInactive lifts the default active-only filter.
func IncludeInactive() Option {
	return func(q *query) { q.includeInactive = true }
}

func Where(f Filter) Option {
	return func(q *query) { q.filters = append(q.filters, f) }
}

// Joins loads belongs-to associations in the same statement.
func Joins(associations ...string) Option {
	return func(q *query) { q.joins = append(q.joins, associations...) }
}

func Preload(associations ...string) Option {
	return func(q *query) { q.preloads = append(q.preloads, associations...) }
}

// OrderBy replaces the default newest-first ordering. Repeated calls add
// tie-breakers.
func OrderBy(column string, desc bool) Option {
	return func(q *query) {
		q.order = append(q.order, clause.OrderByColumn{Column: Column(column), Desc: desc})
	}
}

// Column qualifies name with the table of the current statement so filters
// stay unambiguous when associations are joined.
func Column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// Between keeps rows with start <= column < end. Instants are compared in
// UTC, the zone every timestamp is written in.
func Between(column string, start, end time.Time) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where(clause.Gte{Column: Column(column), Value: start.UTC()}).
			Where(clause.Lt{Column: Column(column), Value: end.UTC()})
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ContainsPattern is the LIKE pattern matching text anywhere, lowercased and
// with wildcards escaped. Use it with ESCAPE '\'.
func ContainsPattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}

// Scoped is the tenant-scoped repository of one model. Reads go through a
// fixed pipeline:
//
//  1. company_id = active company
//  2. active = true, unless IncludeInactive
//  3. caller filters, in the order given
//  4. joins and preloads
//  5. ordering (List only; newest created first by default)
//
// Writes assign the active company and validate foreign keys first.
type Scoped[T any, PT interface {
	*T
	models.TenantOwned
}] struct {
	db *gorm.DB
}

func NewScoped[T any, PT interface {
	*T
	models.TenantOwned
}](db *gorm.DB) *Scoped[T, PT] {
	return &Scoped[T, PT]{db: db}
}

// Scope returns a query over T restricted by stages 1-4.
func (r *Scoped[T, PT]) Scope(ctx context.Context, opts ...Option) (*gorm.DB, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return nil, err
	}

	q := &query{}
	for _, opt := range opts {
		opt(q)
	}

	db := r.db.WithContext(ctx).
		Model(PT(new(T))).
		Where(clause.Eq{Column: Column("company_id"), Value: companyID})

	if !q.includeInactive {
		db = db.Where(clause.Eq{Column: Column("active"), Value: true})
	}
	for _, f := range q.filters {
		db = f(db)
	}
	for _, j := range q.joins {
		db = db.Joins(j)
	}
	for _, p := range q.preloads {
		db = db.Preload(p)
	}
	return db, nil
}

func (r *Scoped[T, PT]) List(ctx context.Context, opts ...Option) ([]T, error) {
	db, err := r.Scope(ctx, opts...)
	if err != nil {
		return nil, err
	}

	q := &query{}
	for _, opt := range opts {
		opt(q)
	}
	if len(q.order) == 0 {
		q.order = []clause.OrderByColumn{{Column: Column("created_at"), Desc: true}}
	}
	for _, o := range q.order {
		db = db.Order(o)
	}

	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get loads one row of the active company. Rows of other companies are
// reported as httperr.ErrNotFound.
func (r *Scoped[T, PT]) Get(ctx context.Context, id uint, opts ...Option) (*T, error) {
	db, err := r.Scope(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var row T
	if err := db.Where(clause.Eq{Column: Column("id"), Value: id}).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Scoped[T, PT]) Count(ctx context.Context, opts ...Option) (int64, error) {
	db, err := r.Scope(ctx, opts...)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Create stores row under the active company, overriding any company the
// caller set.
func (r *Scoped[T, PT]) Create(ctx context.Context, row PT) error {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	row.SetCompanyID(companyID)
	row.SetActive(true)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, companyID, row); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(row).Error
	})
}

// Update writes the named fields of row, which must already belong to the
// active company.
func (r *Scoped[T, PT]) Update(ctx context.Context, row PT, fields ...string) error {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	row.SetCompanyID(companyID)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, companyID, row); err != nil {
			return err
		}
		res := tx.Model(row).
			Where(clause.Eq{Column: Column("company_id"), Value: companyID}).
			Select(fields).
			Omit(clause.Associations).
			Updates(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound
		}
		return nil
	})
}

// UpdateColumn persists a single column of one row of the active company.
func (r *Scoped[T, PT]) UpdateColumn(ctx context.Context, id uint, column string, value any) error {
	db, err := r.Scope(ctx, IncludeInactive())
	if err != nil {
		return err
	}

	res := db.Where(clause.Eq{Column: Column("id"), Value: id}).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// SoftDelete flips active to false. Deleting an inactive row is reported as
// ErrAlreadyDeleted and changes nothing.
func (r *Scoped[T, PT]) SoftDelete(ctx context.Context, id uint) error {
	row, err := r.Get(ctx, id, IncludeInactive())
	if err != nil {
		return err
	}
	if !PT(row).IsActive() {
		return ErrAlreadyDeleted
	}
	return r.UpdateColumn(ctx, id, "active", false)
}

func (r *Scoped[T, PT]) Restore(ctx context.Context, id uint) error {
	row, err := r.Get(ctx, id, IncludeInactive())
	if err != nil {
		return err
	}
	if PT(row).IsActive() {
		return ErrNotDeleted
	}
	return r.UpdateColumn(ctx, id, "active", true)
}

type ownerRow struct {
	CompanyID uint
	Active    bool
}

// checkReferences verifies every foreign key of row points at an active row
// of companyID. A row of another company is a CrossTenantReferenceError; a
// missing or inactive row is a plain invalid choice.
func checkReferences(tx *gorm.DB, companyID uint, row any) error {
	ref, ok := row.(models.Referencing)
	if !ok {
		return nil
	}

	for _, fk := range ref.ForeignKeys() {
		var owner ownerRow
		err := tx.Model(fk.Target).
			Select("company_id", "active").
			Where("id = ?", fk.ID).
			Take(&owner).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidChoice
		}
		if err != nil {
			return err
		}

		if owner.CompanyID != companyID {
			return &CrossTenantReferenceError{
				Field:               fk.Field,
				ReferencedID:        fk.ID,
				CompanyID:           companyID,
				ReferencedCompanyID: owner.CompanyID,
			}
		}
		if !owner.Active {
			return ErrInvalidChoice
		}
	}
	return nil
}
