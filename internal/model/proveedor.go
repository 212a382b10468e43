package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Proveedor is shared reference data: orders point at it but never own it.
// It is soft-disabled via Activo, never hard-deleted while orders reference it.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	RazonSocial string    `gorm:"not null"`
	RUT         *string   `gorm:"column:rut;uniqueIndex"`
	Telefono    *string
	Email       *string
	Direccion   *string

	DiasCredito   int              `gorm:"not null;default:0"`
	DescuentoPct  decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	LimiteCredito *decimal.Decimal `gorm:"type:decimal(18,2)"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Productos []ProductoProveedor `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }

func (p *Proveedor) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductoProveedor links a product with one of its suppliers. The pair is
// unique; Preferido marks the default choice when several suppliers exist.
type ProductoProveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_proveedor"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_proveedor"`

	CodigoProveedor *string
	PrecioCompra    decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	LeadTimeDias    int             `gorm:"not null;default:0"`
	CantidadMinima  decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	Preferido       bool            `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID;constraint:OnDelete:CASCADE"`
}

func (ProductoProveedor) TableName() string { return "productos_proveedores" }

func (v *ProductoProveedor) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
