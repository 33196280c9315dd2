package models

import "time"

// Client is a customer of one company. CPF and phone are unique across all companies.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owned
	Company Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name     string `gorm:"size:255;not null" json:"name"`
	CPF      string `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	Phone    string `gorm:"size:21;uniqueIndex;not null" json:"phone"`
	Address  string `gorm:"size:255;not null" json:"address"`
	ImageKey string `gorm:"size:255" json:"image_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
