package tests

import (
	"context"
	"testing"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProveedorSvc() (service.ProveedorService, *stubProveedorRepo, *stubProductoRepo) {
	repo := newStubProveedorRepo()
	productoRepo := newStubProductoRepo()
	return service.NewProveedorService(repo, productoRepo), repo, productoRepo
}

func TestProveedor_CrearYListar(t *testing.T) {
	svc, _, _ := buildProveedorSvc()
	ctx := context.Background()

	rut := "76.543.210-K"
	creado, err := svc.Crear(ctx, dto.CrearProveedorRequest{
		Nombre:      "Dulces del Valle",
		RazonSocial: "Dulces del Valle S.A.",
		RUT:         &rut,
		DiasCredito: 30,
	})
	require.NoError(t, err)
	assert.True(t, creado.Activo)

	_, err = svc.Crear(ctx, dto.CrearProveedorRequest{
		Nombre:      "Otro",
		RazonSocial: "Otro S.A.",
		RUT:         &rut,
	})
	assert.ErrorIs(t, err, service.ErrConflicto, "RUT duplicado")

	lista, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}

func TestProveedor_EliminarConOrdenesSoloDesactiva(t *testing.T) {
	svc, repo, _ := buildProveedorSvc()
	ctx := context.Background()

	prov := seedProveedor(repo, "Dulces del Valle")
	repo.conOrdenes[prov.ID] = true

	require.NoError(t, svc.Eliminar(ctx, prov.ID))

	// still present, just inactive
	obtenido, err := svc.ObtenerPorID(ctx, prov.ID)
	require.NoError(t, err)
	assert.False(t, obtenido.Activo)
}

func TestProveedor_EliminarSinOrdenesBorra(t *testing.T) {
	svc, repo, _ := buildProveedorSvc()
	ctx := context.Background()

	prov := seedProveedor(repo, "Efímero")
	require.NoError(t, svc.Eliminar(ctx, prov.ID))

	_, err := svc.ObtenerPorID(ctx, prov.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestProveedor_Vinculos(t *testing.T) {
	svc, repo, productoRepo := buildProveedorSvc()
	ctx := context.Background()

	prov := seedProveedor(repo, "Dulces del Valle")
	otro := seedProveedor(repo, "Caramelos Norte")
	p := seedProducto(productoRepo, "CHOC-001", "Chocolate amargo 70%")

	v1, err := svc.VincularProducto(ctx, prov.ID, dto.VincularProductoRequest{
		ProductoID:   p.ID.String(),
		PrecioCompra: dec("8.50"),
		Preferido:    true,
	})
	require.NoError(t, err)
	assert.True(t, v1.Preferido)
	assert.True(t, dec("1").Equal(v1.CantidadMinima), "cantidad mínima por defecto")

	// same pair again conflicts
	_, err = svc.VincularProducto(ctx, prov.ID, dto.VincularProductoRequest{
		ProductoID:   p.ID.String(),
		PrecioCompra: dec("8.00"),
	})
	assert.ErrorIs(t, err, service.ErrConflicto)

	// a new preferred link steals the flag
	v2, err := svc.VincularProducto(ctx, otro.ID, dto.VincularProductoRequest{
		ProductoID:   p.ID.String(),
		PrecioCompra: dec("7.90"),
		Preferido:    true,
	})
	require.NoError(t, err)
	assert.True(t, v2.Preferido)

	porProducto, err := svc.ProveedoresDeProducto(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, porProducto, 2)
	preferidos := 0
	for _, v := range porProducto {
		if v.Preferido {
			preferidos++
		}
	}
	assert.Equal(t, 1, preferidos)

	require.NoError(t, svc.DesvincularProducto(ctx, mustUUID(t, v2.ID)))
	restantes, err := svc.ListarVinculos(ctx, otro.ID)
	require.NoError(t, err)
	assert.Empty(t, restantes)
}

func TestProveedor_VincularProductoInexistente(t *testing.T) {
	svc, repo, _ := buildProveedorSvc()
	prov := seedProveedor(repo, "Dulces del Valle")

	_, err := svc.VincularProducto(context.Background(), prov.ID, dto.VincularProductoRequest{
		ProductoID:   uuidNuevo().String(),
		PrecioCompra: dec("1.00"),
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
