package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owned
	Company Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`
	Status      string    `gorm:"size:1;not null;default:'P'" json:"status"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ServiceTypeID uint        `gorm:"index;not null" json:"service_type_id"`
	ServiceType   ServiceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service_type"`

	WorkerID uint   `gorm:"index;not null" json:"worker_id"`
	Worker   Worker `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"worker"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }

func (a *Appointment) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{Field: "client_id", Target: &Client{}, ID: a.ClientID},
		{Field: "service_type_id", Target: &ServiceType{}, ID: a.ServiceTypeID},
		{Field: "worker_id", Target: &Worker{}, ID: a.WorkerID},
	}
}
