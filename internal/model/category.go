package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups concepts by subject area. Deactivating a category does not
// cascade to its concepts.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"nombre" gorm:"uniqueIndex;size:100;not null"`
	Description string    `json:"descripcion" gorm:"type:text"`
	Color       string    `json:"color" gorm:"size:7;default:'#667eea'"`
	Icon        string    `json:"icon" gorm:"size:50;default:'📚'"`
	Active      bool      `json:"activa" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
