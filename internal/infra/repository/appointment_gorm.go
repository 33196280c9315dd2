package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	appointments *Scoped[models.Appointment, *models.Appointment]
	clients      *Scoped[models.Client, *models.Client]
	serviceTypes *Scoped[models.ServiceType, *models.ServiceType]
	workers      *Scoped[models.Worker, *models.Worker]
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		appointments: NewScoped[models.Appointment](db),
		clients:      NewScoped[models.Client](db),
		serviceTypes: NewScoped[models.ServiceType](db),
		workers:      NewScoped[models.Worker](db),
	}
}

var appointmentJoins = Joins("Client", "ServiceType", "Worker")

// --------------------------------------------------
// Appointment (crud)
// --------------------------------------------------

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {
	return r.appointments.Get(ctx, id, appointmentJoins)
}

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.appointments.Create(ctx, ap)
}

// Update writes the form fields of ap.
func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.appointments.Update(ctx, ap,
		"scheduled_at", "status", "client_id", "service_type_id", "worker_id",
	)
}

func (r *AppointmentGormRepository) SoftDelete(
	ctx context.Context,
	id uint,
) error {
	return r.appointments.SoftDelete(ctx, id)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

// UpdateStatus persists only the status column.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.appointments.UpdateColumn(ctx, ap.ID, "status", ap.Status)
}

// FinalizeIfEligible moves one active appointment to F when it is still
// pending or executing. The check and the write are a single statement, so
// of two concurrent calls only one reports true.
func (r *AppointmentGormRepository) FinalizeIfEligible(
	ctx context.Context,
	id uint,
) (bool, error) {

	eligible := make([]any, 0, 2)
	for _, s := range domain.FinalizableStatuses() {
		eligible = append(eligible, string(s))
	}

	db, err := r.appointments.Scope(ctx)
	if err != nil {
		return false, err
	}

	res := db.
		Where(clause.Eq{Column: Column("id"), Value: id}).
		Where(clause.IN{Column: Column("status"), Values: eligible}).
		Update("status", string(domain.StatusFinished))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) Search(
	ctx context.Context,
	q domain.SearchQuery,
) ([]models.Appointment, error) {

	opts := []Option{appointmentJoins, OrderBy("scheduled_at", true), OrderBy("id", true)}
	if q.IncludeInactive {
		opts = append(opts, IncludeInactive())
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		opts = append(opts, Where(textFilter(text)))
	}
	if q.Start != nil {
		opts = append(opts, Where(func(db *gorm.DB) *gorm.DB {
			return db.Where(clause.Gte{Column: Column("scheduled_at"), Value: q.Start.UTC()})
		}))
	}
	if q.End != nil {
		opts = append(opts, Where(func(db *gorm.DB) *gorm.DB {
			return db.Where(clause.Lt{Column: Column("scheduled_at"), Value: q.End.UTC()})
		}))
	}

	return r.appointments.List(ctx, opts...)
}

// textFilter matches text case-insensitively against the client, service type
// and worker names.
func textFilter(text string) Filter {
	like := ContainsPattern(text)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`(LOWER("Client"."name") LIKE ? ESCAPE '\' OR LOWER("ServiceType"."name") LIKE ? ESCAPE '\' OR LOWER("Worker"."name") LIKE ? ESCAPE '\')`,
			like, like, like,
		)
	}
}

// ListForPeriod returns active appointments with start <= scheduled_at < end,
// earliest first.
func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return r.appointments.List(ctx,
		appointmentJoins,
		Where(Between("scheduled_at", start, end)),
		OrderBy("scheduled_at", false),
		OrderBy("id", false),
	)
}

func (r *AppointmentGormRepository) Choices(
	ctx context.Context,
) (*domain.Choices, error) {

	byName := OrderBy("name", false)

	clients, err := r.clients.List(ctx, byName)
	if err != nil {
		return nil, err
	}
	serviceTypes, err := r.serviceTypes.List(ctx, byName)
	if err != nil {
		return nil, err
	}
	workers, err := r.workers.List(ctx, byName)
	if err != nil {
		return nil, err
	}

	return &domain.Choices{
		Clients:      clients,
		ServiceTypes: serviceTypes,
		Workers:      workers,
		Statuses:     domain.Statuses(),
	}, nil
}

// --------------------------------------------------
// Occupancy
// --------------------------------------------------

// CountOccupiedWorkers counts distinct active workers with an executing
// appointment scheduled in [start, end).
func (r *AppointmentGormRepository) CountOccupiedWorkers(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (int64, error) {

	activeWorkers, err := r.workers.Scope(ctx)
	if err != nil {
		return 0, err
	}

	db, err := r.appointments.Scope(ctx,
		Where(Between("scheduled_at", start, end)),
		Where(func(db *gorm.DB) *gorm.DB {
			return db.
				Where(clause.Eq{Column: Column("status"), Value: string(domain.StatusExecuting)}).
				Where("worker_id IN (?)", activeWorkers.Select("id"))
		}),
	)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.Distinct("worker_id").Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AppointmentGormRepository) CountActiveWorkers(
	ctx context.Context,
) (int64, error) {
	return r.workers.Count(ctx)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
