package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// AppointmentListDTO is one row of the appointment listing.
type AppointmentListDTO struct {
	ID              uint            `json:"id"`
	ScheduledAt     time.Time       `json:"scheduled_at"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"status_label"`
	Active          bool            `json:"active"`
	ClientID        uint            `json:"client_id"`
	ClientName      string          `json:"client_name"`
	ServiceTypeID   uint            `json:"service_type_id"`
	ServiceTypeName string          `json:"service_type_name"`
	Price           decimal.Decimal `json:"price"`
	WorkerID        uint            `json:"worker_id"`
	WorkerName      string          `json:"worker_name"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:              ap.ID,
			ScheduledAt:     ap.ScheduledAt,
			Status:          ap.Status,
			StatusLabel:     domain.Status(ap.Status).Label(),
			Active:          ap.Active,
			ClientID:        ap.ClientID,
			ClientName:      ap.Client.Name,
			ServiceTypeID:   ap.ServiceTypeID,
			ServiceTypeName: ap.ServiceType.Name,
			Price:           ap.ServiceType.Price,
			WorkerID:        ap.WorkerID,
			WorkerName:      ap.Worker.Name,
		})
	}
	return out
}
