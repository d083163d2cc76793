package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Facility is referenced, never owned, by Persons.
type Facility struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(200);not null" json:"name"`
	Address    string    `gorm:"type:varchar(200);not null" json:"address"`
	City       string    `gorm:"type:varchar(200);not null" json:"city"`
	Region     string    `gorm:"type:varchar(50);not null" json:"region"`
	PostalCode string    `gorm:"type:varchar(20);not null" json:"postal_code"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Facility) TableName() string {
	return "facilities"
}

func (f *Facility) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
