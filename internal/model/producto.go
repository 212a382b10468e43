package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnidadMedida is the set of purchase/sale units a product may use.
type UnidadMedida string

const (
	UOMUnidad  UnidadMedida = "UN"
	UOMCaja    UnidadMedida = "CAJA"
	UOMKilo    UnidadMedida = "KG"
	UOMLitro   UnidadMedida = "L"
	UOMDocena  UnidadMedida = "DOCENA"
	UOMGramo   UnidadMedida = "GRAMO"
	UOMPaquete UnidadMedida = "PAQUETE"
)

// Producto is a catalog item. The SKU is its immutable identity; EANUPC is
// optional but unique when present. All monetary fields are fixed-point decimals.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null"`
	EANUPC      *string   `gorm:"column:ean_upc;uniqueIndex"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	CategoriaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Marca       *string
	Modelo      *string

	UOMCompra        UnidadMedida     `gorm:"type:varchar(10);not null;default:'UN'"`
	UOMVenta         UnidadMedida     `gorm:"type:varchar(10);not null;default:'UN'"`
	FactorConversion decimal.Decimal  `gorm:"type:decimal(10,4);not null;default:1"`
	CostoEstandar    *decimal.Decimal `gorm:"type:decimal(18,6)"`
	CostoPromedio    *decimal.Decimal `gorm:"type:decimal(18,6)"`
	PrecioVenta      *decimal.Decimal `gorm:"type:decimal(18,6)"`
	ImpuestoIVAPct   decimal.Decimal  `gorm:"column:impuesto_iva_pct;type:decimal(5,2);not null;default:19"`

	StockMinimo  decimal.Decimal  `gorm:"type:decimal(18,6);not null;default:0"`
	StockMaximo  *decimal.Decimal `gorm:"type:decimal(18,6)"`
	PuntoReorden *decimal.Decimal `gorm:"type:decimal(18,6)"`

	Perishable      bool `gorm:"not null;default:false"`
	ControlPorLote  bool `gorm:"not null;default:false"`
	ControlPorSerie bool `gorm:"not null;default:false"`

	ImagenURL       *string
	FichaTecnicaURL *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
