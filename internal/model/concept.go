package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Level classifies the difficulty of a concept.
type Level string

const (
	LevelBasic        Level = "básico"
	LevelIntermediate Level = "intermedio"
	LevelAdvanced     Level = "avanzado"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// ResourceType classifies an attached learning resource.
type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceDocument ResourceType = "documento"
	ResourceImage    ResourceType = "imagen"
	ResourceLink     ResourceType = "enlace"
)

// Resource is an external material attached to a concept.
type Resource struct {
	Type        ResourceType `json:"tipo"`
	Title       string       `json:"titulo"`
	URL         string       `json:"url"`
	Description string       `json:"descripcion,omitempty"`
}

// Concept is an article in the digital library. The author reference is
// immutable after creation; the category may change.
type Concept struct {
	ID          uuid.UUID                         `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string                            `json:"titulo" gorm:"size:200;not null;index"`
	Description string                            `json:"descripcion" gorm:"type:text"`
	Content     string                            `json:"contenido" gorm:"type:text"`
	Level       Level                             `json:"nivel" gorm:"size:50;default:'básico';index"`
	Tags        datatypes.JSONSlice[string]       `json:"tags" gorm:"type:jsonb"`
	Resources   datatypes.JSONSlice[Resource]     `json:"recursos" gorm:"type:jsonb"`
	Views       int64                             `json:"visualizaciones" gorm:"default:0"`
	Active      bool                              `json:"activo" gorm:"default:true;index"`
	AuthorID    uuid.UUID                         `json:"autorId" gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID                         `json:"categoriaId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time                         `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time                         `json:"updatedAt"`

	// Relations, joined at read time so responses are self-contained.
	Author   User     `json:"autor" gorm:"foreignKey:AuthorID"`
	Category Category `json:"categoria" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Concept) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
