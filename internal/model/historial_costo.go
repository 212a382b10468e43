package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistorialCosto records each change of a product's standard cost, with the
// supplier that motivated the change when the update came from one.
type HistorialCosto struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProveedorID *uuid.UUID `gorm:"type:uuid;index"`

	CostoAnterior *decimal.Decimal `gorm:"type:decimal(18,6)"`
	CostoNuevo    decimal.Decimal  `gorm:"type:decimal(18,6);not null"`
	Motivo        *string

	CreatedAt time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (HistorialCosto) TableName() string { return "historial_costos" }

func (h *HistorialCosto) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
