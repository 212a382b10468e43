package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LineaOrdenInput struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	DescuentoLinea decimal.Decimal `json:"descuento_linea" validate:"min=0"`
}

type CrearOrdenRequest struct {
	ProveedorID  string            `json:"proveedor_id"  validate:"required,uuid"`
	Fecha        string            `json:"fecha"         validate:"required,datetime=2006-01-02"`
	FechaEntrega *string           `json:"fecha_entrega" validate:"omitempty,datetime=2006-01-02"`
	Descuento    decimal.Decimal   `json:"descuento"     validate:"min=0"`
	Detalles     []LineaOrdenInput `json:"detalles"      validate:"dive"`
}

type ActualizarLineaRequest struct {
	Cantidad       *decimal.Decimal `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
	DescuentoLinea *decimal.Decimal `json:"descuento_linea"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente enviada confirmada parcial completada cancelada"`
}

type RecepcionLineaInput struct {
	DetalleID        string          `json:"detalle_id"        validate:"required,uuid"`
	CantidadRecibida decimal.Decimal `json:"cantidad_recibida" validate:"required"`
}

type RegistrarRecepcionRequest struct {
	Fecha  string                `json:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Lineas []RecepcionLineaInput `json:"lineas" validate:"required,min=1,dive"`
}

type OrdenFilter struct {
	Estado      string `form:"estado"`
	ProveedorID string `form:"proveedor_id"`
	ClienteID   string `form:"cliente_id"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaOrdenResponse struct {
	ID               string          `json:"id"`
	ProductoID       string          `json:"producto_id"`
	Producto         string          `json:"producto,omitempty"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	DescuentoLinea   decimal.Decimal `json:"descuento_linea"`
	SubtotalLinea    decimal.Decimal `json:"subtotal_linea"`
	CantidadRecibida decimal.Decimal `json:"cantidad_recibida"`
	FechaRecepcion   *string         `json:"fecha_recepcion,omitempty"`
}

type OrdenResponse struct {
	ID           string               `json:"id"`
	Numero       *string              `json:"numero,omitempty"`
	ClienteID    string               `json:"cliente_id"`
	Cliente      string               `json:"cliente,omitempty"`
	ProveedorID  string               `json:"proveedor_id"`
	Proveedor    string               `json:"proveedor,omitempty"`
	Fecha        string               `json:"fecha"`
	FechaEntrega *string              `json:"fecha_entrega,omitempty"`
	Estado       string               `json:"estado"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Descuento    decimal.Decimal      `json:"descuento"`
	Impuesto     decimal.Decimal      `json:"impuesto"`
	Total        decimal.Decimal      `json:"total"`
	Detalles     []LineaOrdenResponse `json:"detalles"`
}

type OrdenListResponse struct {
	Data  []OrdenResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
