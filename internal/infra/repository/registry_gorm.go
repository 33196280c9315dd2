package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Registry is the scoped repository of a named registry row (client, worker,
// service type) with a name search on top.
type Registry[T any, PT interface {
	*T
	models.TenantOwned
}] struct {
	*Scoped[T, PT]
}

func NewRegistry[T any, PT interface {
	*T
	models.TenantOwned
}](db *gorm.DB) *Registry[T, PT] {
	return &Registry[T, PT]{Scoped: NewScoped[T, PT](db)}
}

// NameContains matches name case-insensitively. Blank text matches all.
func NameContains(text string) Option {
	text = strings.TrimSpace(text)
	return Where(func(db *gorm.DB) *gorm.DB {
		if text == "" {
			return db
		}
		return db.Where(`LOWER(?) LIKE ? ESCAPE '\'`, Column("name"), ContainsPattern(text))
	})
}

func (r *Registry[T, PT]) Search(ctx context.Context, text string, includeInactive bool) ([]T, error) {
	opts := []Option{NameContains(text)}
	if includeInactive {
		opts = append(opts, IncludeInactive())
	}
	return r.List(ctx, opts...)
}

// SetImage stores the object key of the row's image.
func (r *Registry[T, PT]) SetImage(ctx context.Context, id uint, key string) error {
	return r.UpdateColumn(ctx, id, "image_key", key)
}

// WorkerSummary is a worker with its appointment counts.
type WorkerSummary struct {
	models.Worker
	TotalAppointments   int64 `json:"total_appointments"`
	PendingAppointments int64 `json:"pending_appointments"`
}

type workerCounts struct {
	WorkerID uint
	Total    int64
	Pending  int64
}

type WorkerGormRepository struct {
	*Registry[models.Worker, *models.Worker]
	appointments *Scoped[models.Appointment, *models.Appointment]
}

func NewWorkerGormRepository(db *gorm.DB) *WorkerGormRepository {
	return &WorkerGormRepository{
		Registry:     NewRegistry[models.Worker](db),
		appointments: NewScoped[models.Appointment](db),
	}
}

// SearchWithCounts lists workers with their active appointment totals and
// how many of those are still pending.
func (r *WorkerGormRepository) SearchWithCounts(
	ctx context.Context,
	text string,
	includeInactive bool,
) ([]WorkerSummary, error) {

	workers, err := r.Search(ctx, text, includeInactive)
	if err != nil {
		return nil, err
	}

	db, err := r.appointments.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var rows []workerCounts
	if err := db.
		Select("worker_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS pending", string(domain.StatusPending)).
		Group("worker_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]workerCounts, len(rows))
	for _, row := range rows {
		counts[row.WorkerID] = row
	}

	out := make([]WorkerSummary, 0, len(workers))
	for _, w := range workers {
		c := counts[w.ID]
		out = append(out, WorkerSummary{
			Worker:              w,
			TotalAppointments:   c.Total,
			PendingAppointments: c.Pending,
		})
	}
	return out, nil
}
