package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categoria classifies products (chocolates, dulces, ingredientes, postres…).
// Deleting a category deletes all of its products.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Productos []Producto `gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }

// BeforeCreate generates the ID client-side so non-postgres backends work too.
func (c *Categoria) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
