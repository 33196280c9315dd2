package models

import "time"

// Company is the tenant root. Every other business row belongs to exactly one.
type Company struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CNPJ      string `gorm:"size:14;uniqueIndex;not null" json:"cnpj"`
	TradeName string `gorm:"size:255;not null" json:"trade_name"`
	LegalName string `gorm:"size:255;not null" json:"legal_name"`
	ImageKey  string `gorm:"size:255" json:"image_key"`
	Timezone  string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string { return "companies" }
