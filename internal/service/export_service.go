package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"
)

// ExportService streams reference and order data as CSV for spreadsheet use.
type ExportService interface {
	ExportarProveedoresCSV(ctx context.Context, w io.Writer) error
	ExportarOrdenesCSV(ctx context.Context, w io.Writer, filter dto.OrdenFilter) error
}

type exportService struct {
	proveedorRepo repository.ProveedorRepository
	ordenRepo     repository.OrdenRepository
}

func NewExportService(proveedorRepo repository.ProveedorRepository, ordenRepo repository.OrdenRepository) ExportService {
	return &exportService{proveedorRepo: proveedorRepo, ordenRepo: ordenRepo}
}

func (s *exportService) ExportarProveedoresCSV(ctx context.Context, w io.Writer) error {
	proveedores, err := s.proveedorRepo.Listar(ctx, true)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"nombre", "razon_social", "rut", "telefono", "email", "direccion", "dias_credito", "descuento_pct", "activo"}); err != nil {
		return err
	}
	for _, p := range proveedores {
		row := []string{
			p.Nombre,
			p.RazonSocial,
			strOVacio(p.RUT),
			strOVacio(p.Telefono),
			strOVacio(p.Email),
			strOVacio(p.Direccion),
			strconv.Itoa(p.DiasCredito),
			p.DescuentoPct.StringFixed(2),
			strconv.FormatBool(p.Activo),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) ExportarOrdenesCSV(ctx context.Context, w io.Writer, filter dto.OrdenFilter) error {
	// The export ignores pagination: one file with everything the filter
	// selects.
	filter.Page = 1
	filter.Limit = 0
	ordenes, _, err := s.ordenRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"numero", "fecha", "proveedor", "estado", "subtotal", "descuento", "impuesto", "total"}); err != nil {
		return err
	}
	for _, o := range ordenes {
		numero := o.ID.String()
		if o.Numero != nil {
			numero = *o.Numero
		}
		proveedor := o.ProveedorID.String()
		if o.Proveedor != nil {
			proveedor = o.Proveedor.Nombre
		}
		row := []string{
			numero,
			o.Fecha.Format("2006-01-02"),
			proveedor,
			string(o.Estado),
			o.Subtotal.StringFixed(2),
			o.Descuento.StringFixed(2),
			o.Impuesto.StringFixed(2),
			o.Total.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func strOVacio(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
