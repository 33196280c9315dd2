package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceType struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owned
	Company Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name  string          `gorm:"size:50;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceType) TableName() string { return "service_types" }
