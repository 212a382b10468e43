package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	SKU         string  `json:"sku"          validate:"required,min=1,max=50"`
	EANUPC      *string `json:"ean_upc"      validate:"omitempty,max=20"`
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=255"`
	Descripcion *string `json:"descripcion"`
	CategoriaID string  `json:"categoria_id" validate:"required,uuid"`
	Marca       *string `json:"marca"`
	Modelo      *string `json:"modelo"`

	UOMCompra        string          `json:"uom_compra" validate:"omitempty,oneof=UN CAJA KG L DOCENA GRAMO PAQUETE"`
	UOMVenta         string          `json:"uom_venta"  validate:"omitempty,oneof=UN CAJA KG L DOCENA GRAMO PAQUETE"`
	FactorConversion decimal.Decimal `json:"factor_conversion" validate:"omitempty,gt=0"`

	CostoEstandar  *decimal.Decimal `json:"costo_estandar"  validate:"omitempty,min=0"`
	CostoPromedio  *decimal.Decimal `json:"costo_promedio"  validate:"omitempty,min=0"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"    validate:"omitempty,min=0"`
	ImpuestoIVAPct *decimal.Decimal `json:"impuesto_iva_pct" validate:"omitempty,min=0,max=100"`

	StockMinimo  *decimal.Decimal `json:"stock_minimo"  validate:"omitempty,min=0"`
	StockMaximo  *decimal.Decimal `json:"stock_maximo"  validate:"omitempty,min=0"`
	PuntoReorden *decimal.Decimal `json:"punto_reorden" validate:"omitempty,min=0"`

	Perishable      bool `json:"perishable"`
	ControlPorLote  bool `json:"control_por_lote"`
	ControlPorSerie bool `json:"control_por_serie"`

	ImagenURL       *string `json:"imagen_url"        validate:"omitempty,url"`
	FichaTecnicaURL *string `json:"ficha_tecnica_url" validate:"omitempty,url"`
}

// ActualizarProductoRequest deliberately has no SKU field: the SKU is the
// product's immutable identity.
type ActualizarProductoRequest struct {
	EANUPC      *string `json:"ean_upc"      validate:"omitempty,max=20"`
	Nombre      *string `json:"nombre"       validate:"omitempty,min=2,max=255"`
	Descripcion *string `json:"descripcion"`
	CategoriaID *string `json:"categoria_id" validate:"omitempty,uuid"`
	Marca       *string `json:"marca"`
	Modelo      *string `json:"modelo"`

	CostoEstandar  *decimal.Decimal `json:"costo_estandar"   validate:"omitempty,min=0"`
	CostoPromedio  *decimal.Decimal `json:"costo_promedio"   validate:"omitempty,min=0"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"     validate:"omitempty,min=0"`
	ImpuestoIVAPct *decimal.Decimal `json:"impuesto_iva_pct" validate:"omitempty,min=0,max=100"`

	StockMinimo  *decimal.Decimal `json:"stock_minimo"  validate:"omitempty,min=0"`
	StockMaximo  *decimal.Decimal `json:"stock_maximo"  validate:"omitempty,min=0"`
	PuntoReorden *decimal.Decimal `json:"punto_reorden" validate:"omitempty,min=0"`

	Perishable      *bool `json:"perishable"`
	ControlPorLote  *bool `json:"control_por_lote"`
	ControlPorSerie *bool `json:"control_por_serie"`

	ImagenURL       *string `json:"imagen_url"        validate:"omitempty,url"`
	FichaTecnicaURL *string `json:"ficha_tecnica_url" validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string  `json:"id"`
	SKU         string  `json:"sku"`
	EANUPC      *string `json:"ean_upc,omitempty"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	CategoriaID string  `json:"categoria_id"`
	Categoria   string  `json:"categoria,omitempty"`
	Marca       *string `json:"marca,omitempty"`
	Modelo      *string `json:"modelo,omitempty"`

	UOMCompra        string          `json:"uom_compra"`
	UOMVenta         string          `json:"uom_venta"`
	FactorConversion decimal.Decimal `json:"factor_conversion"`

	CostoEstandar  *decimal.Decimal `json:"costo_estandar,omitempty"`
	CostoPromedio  *decimal.Decimal `json:"costo_promedio,omitempty"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta,omitempty"`
	ImpuestoIVAPct decimal.Decimal  `json:"impuesto_iva_pct"`

	StockMinimo  decimal.Decimal  `json:"stock_minimo"`
	StockMaximo  *decimal.Decimal `json:"stock_maximo,omitempty"`
	PuntoReorden *decimal.Decimal `json:"punto_reorden,omitempty"`

	Perishable      bool `json:"perishable"`
	ControlPorLote  bool `json:"control_por_lote"`
	ControlPorSerie bool `json:"control_por_serie"`

	ImagenURL       *string `json:"imagen_url,omitempty"`
	FichaTecnicaURL *string `json:"ficha_tecnica_url,omitempty"`
}

type HistorialCostoResponse struct {
	ID            string           `json:"id"`
	ProductoID    string           `json:"producto_id"`
	ProveedorID   *string          `json:"proveedor_id,omitempty"`
	CostoAnterior *decimal.Decimal `json:"costo_anterior,omitempty"`
	CostoNuevo    decimal.Decimal  `json:"costo_nuevo"`
	Motivo        *string          `json:"motivo,omitempty"`
	CreatedAt     string           `json:"created_at"`
}

// AlertaReposicionItem marks a product whose reorder point is configured and
// whose minimum stock sits at or under it.
type AlertaReposicionItem struct {
	ProductoID   string          `json:"producto_id"`
	SKU          string          `json:"sku"`
	Nombre       string          `json:"nombre"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	PuntoReorden decimal.Decimal `json:"punto_reorden"`
}
