package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstadoOrden is the lifecycle state of a purchase order. Transitions are not
// restricted: any authorized actor may move an order to any state.
type EstadoOrden string

const (
	OrdenPendiente  EstadoOrden = "pendiente"
	OrdenEnviada    EstadoOrden = "enviada"
	OrdenConfirmada EstadoOrden = "confirmada"
	OrdenParcial    EstadoOrden = "parcial"
	OrdenCompletada EstadoOrden = "completada"
	OrdenCancelada  EstadoOrden = "cancelada"
)

// Valido reports whether the value is a known order state.
func (e EstadoOrden) Valido() bool {
	switch e {
	case OrdenPendiente, OrdenEnviada, OrdenConfirmada, OrdenParcial, OrdenCompletada, OrdenCancelada:
		return true
	}
	return false
}

// OrdenCompra is the purchase-order header. Subtotal, Impuesto and Total are
// derived: subtotal is the sum of the lines' SubtotalLinea at the last
// recompute, impuesto = (subtotal − descuento) × tasa, and
// total = (subtotal − descuento) + impuesto.
type OrdenCompra struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Secuencia is the order's numeric identity, used to derive Numero.
	// Assigned by the repository at insert time.
	Secuencia   int64     `gorm:"uniqueIndex;not null"`
	Numero      *string   `gorm:"uniqueIndex"`
	ClienteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index"`

	Fecha        time.Time  `gorm:"type:date;not null"`
	FechaEntrega *time.Time `gorm:"type:date"`

	Estado EstadoOrden `gorm:"type:varchar(12);not null;default:'pendiente'"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Descuento decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Impuesto  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente   *Usuario    `gorm:"foreignKey:ClienteID"`
	Proveedor *Proveedor  `gorm:"foreignKey:ProveedorID"`
	Detalles  []DetalleOC `gorm:"foreignKey:OrdenID;constraint:OnDelete:CASCADE"`
}

func (OrdenCompra) TableName() string { return "ordenes_compra" }

func (o *OrdenCompra) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// DetalleOC is a purchase-order line, exclusively owned by its header.
// SubtotalLinea is derived: cantidad × precio_unitario − descuento_linea.
type DetalleOC struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`

	Cantidad       decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	DescuentoLinea decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SubtotalLinea  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	CantidadRecibida decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	FechaRecepcion   *time.Time      `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Orden    *OrdenCompra `gorm:"foreignKey:OrdenID;constraint:OnDelete:CASCADE"`
	Producto *Producto    `gorm:"foreignKey:ProductoID"`
}

func (DetalleOC) TableName() string { return "detalles_oc" }

func (d *DetalleOC) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
