package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=100"`
	RazonSocial string  `json:"razon_social" validate:"required,min=2"`
	RUT         *string `json:"rut"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`

	DiasCredito   int              `json:"dias_credito"   validate:"min=0"`
	DescuentoPct  decimal.Decimal  `json:"descuento_pct"  validate:"min=0,max=100"`
	LimiteCredito *decimal.Decimal `json:"limite_credito" validate:"omitempty,min=0"`
}

type ActualizarProveedorRequest struct {
	Nombre      *string `json:"nombre"       validate:"omitempty,min=2,max=100"`
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=2"`
	RUT         *string `json:"rut"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`

	DiasCredito   *int             `json:"dias_credito"   validate:"omitempty,min=0"`
	DescuentoPct  *decimal.Decimal `json:"descuento_pct"  validate:"omitempty,min=0,max=100"`
	LimiteCredito *decimal.Decimal `json:"limite_credito" validate:"omitempty,min=0"`
	Activo        *bool            `json:"activo"`
}

type VincularProductoRequest struct {
	ProductoID      string          `json:"producto_id"      validate:"required,uuid"`
	CodigoProveedor *string         `json:"codigo_proveedor"`
	PrecioCompra    decimal.Decimal `json:"precio_compra"    validate:"min=0"`
	LeadTimeDias    int             `json:"lead_time_dias"   validate:"min=0"`
	CantidadMinima  decimal.Decimal `json:"cantidad_minima"  validate:"omitempty,gt=0"`
	Preferido       bool            `json:"preferido"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	RazonSocial string  `json:"razon_social"`
	RUT         *string `json:"rut,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
	Email       *string `json:"email,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`

	DiasCredito   int              `json:"dias_credito"`
	DescuentoPct  decimal.Decimal  `json:"descuento_pct"`
	LimiteCredito *decimal.Decimal `json:"limite_credito,omitempty"`
	Activo        bool             `json:"activo"`
}

type ProductoProveedorResponse struct {
	ID              string          `json:"id"`
	ProductoID      string          `json:"producto_id"`
	ProductoSKU     string          `json:"producto_sku,omitempty"`
	ProveedorID     string          `json:"proveedor_id"`
	CodigoProveedor *string         `json:"codigo_proveedor,omitempty"`
	PrecioCompra    decimal.Decimal `json:"precio_compra"`
	LeadTimeDias    int             `json:"lead_time_dias"`
	CantidadMinima  decimal.Decimal `json:"cantidad_minima"`
	Preferido       bool            `json:"preferido"`
}
