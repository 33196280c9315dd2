package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ReportGormRepository loads the rows behind the monthly report. Every query
// is active-only.
type ReportGormRepository struct {
	appointments *Scoped[models.Appointment, *models.Appointment]
	clients      *Scoped[models.Client, *models.Client]
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{
		appointments: NewScoped[models.Appointment](db),
		clients:      NewScoped[models.Client](db),
	}
}

func (r *ReportGormRepository) Appointments(
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

func (r *ReportGormRepository) CountNewClients(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (int64, error) {
	return r.clients.Count(ctx, Where(Between("created_at", start, end)))
}

// Clients returns the clients registered before end.
func (r *ReportGormRepository) Clients(ctx context.Context, end time.Time) ([]models.Client, error) {
	return r.clients.List(ctx,
		Where(func(db *gorm.DB) *gorm.DB {
			return db.Where(clause.Lt{Column: Column("created_at"), Value: end.UTC()})
		}),
		OrderBy("name", false),
		OrderBy("id", false),
	)
}

type clientCount struct {
	ClientID uint
	N        int64
}

// NonCancelledCounts maps client id to its number of non-cancelled
// appointments scheduled before end, and at or after start when start is set.
func (r *ReportGormRepository) NonCancelledCounts(
	ctx context.Context,
	start *time.Time,
	end time.Time,
) (map[uint]int64, error) {

	db, err := r.appointments.Scope(ctx, Where(func(db *gorm.DB) *gorm.DB {
		db = db.
			Where(clause.Neq{Column: Column("status"), Value: string(domain.StatusCancelled)}).
			Where(clause.Lt{Column: Column("scheduled_at"), Value: end.UTC()})
		if start != nil {
			db = db.Where(clause.Gte{Column: Column("scheduled_at"), Value: start.UTC()})
		}
		return db
	}))
	if err != nil {
		return nil, err
	}

	var rows []clientCount
	if err := db.
		Select("client_id, COUNT(*) AS n").
		Group("client_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.ClientID] = row.N
	}
	return out, nil
}
