package tests

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportarProveedoresCSV(t *testing.T) {
	proveedorRepo := newStubProveedorRepo()
	ordenRepo := newStubOrdenRepo()
	svc := service.NewExportService(proveedorRepo, ordenRepo)

	activo := seedProveedor(proveedorRepo, "Dulces del Valle")
	rut := "76.123.456-7"
	activo.RUT = &rut
	inactivo := seedProveedor(proveedorRepo, "La Fábrica")
	inactivo.Activo = false

	var buf bytes.Buffer
	require.NoError(t, svc.ExportarProveedoresCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// header plus both suppliers, inactive ones included
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"nombre", "razon_social", "rut", "telefono", "email", "direccion", "dias_credito", "descuento_pct", "activo"}, rows[0])
	assert.Equal(t, "Dulces del Valle", rows[1][0])
	assert.Equal(t, rut, rows[1][2])
	assert.Equal(t, "false", rows[2][8])
}

func TestExportarOrdenesCSV(t *testing.T) {
	ordenSvc, ordenRepo, productoRepo, proveedorRepo := buildOrdenSvc(2024)
	exportSvc := service.NewExportService(proveedorRepo, ordenRepo)

	p := seedProducto(productoRepo, "CHOC-001", "Chocolate amargo 70%")
	orden := crearOrdenBase(t, ordenSvc, productoRepo, proveedorRepo, []dto.LineaOrdenInput{
		{ProductoID: p.ID.String(), Cantidad: dec("3"), PrecioUnitario: dec("10.00")},
	}, "0")

	_, err := ordenSvc.AsignarNumero(context.Background(), mustUUID(t, orden.ID))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exportSvc.ExportarOrdenesCSV(context.Background(), &buf, dto.OrdenFilter{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"numero", "fecha", "proveedor", "estado", "subtotal", "descuento", "impuesto", "total"}, rows[0])
	assert.Equal(t, "OC-2024-0001", rows[1][0])
	assert.Equal(t, "2024-03-15", rows[1][1])
	assert.Equal(t, "pendiente", rows[1][3])
	assert.Equal(t, "30.00", rows[1][4])
	assert.Equal(t, "4.80", rows[1][6])
	assert.Equal(t, "34.80", rows[1][7])
}
