package models

import "time"

type Worker struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Owned
	Company Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name     string `gorm:"size:255;not null" json:"name"`
	CPF      string `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	Phone    string `gorm:"size:21;uniqueIndex" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	ImageKey string `gorm:"size:255" json:"image_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Worker) TableName() string { return "workers" }
