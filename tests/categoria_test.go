package tests

import (
	"context"
	"testing"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoria_CRUD(t *testing.T) {
	productoRepo := newStubProductoRepo()
	repo := newStubCategoriaRepo(productoRepo)
	svc := service.NewCategoriaService(repo)
	ctx := context.Background()

	creada, err := svc.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Chocolates"})
	require.NoError(t, err)

	_, err = svc.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Chocolates"})
	assert.ErrorIs(t, err, service.ErrConflicto, "nombre duplicado")

	nuevo := "Chocolates finos"
	actualizada, err := svc.Actualizar(ctx, creada.ID, dto.ActualizarCategoriaRequest{Nombre: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Chocolates finos", actualizada.Nombre)

	lista, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}

func TestCategoria_EliminarBorraProductos(t *testing.T) {
	productoRepo := newStubProductoRepo()
	repo := newStubCategoriaRepo(productoRepo)
	svc := service.NewCategoriaService(repo)
	ctx := context.Background()

	cat, err := svc.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Gomitas"})
	require.NoError(t, err)

	p := seedProducto(productoRepo, "GOMI-001", "Gomitas de frutilla")
	p.CategoriaID = cat.ID
	otro := seedProducto(productoRepo, "CHOC-001", "Chocolate amargo")

	obtenida, err := svc.ObtenerPorID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, obtenida.Productos)

	require.NoError(t, svc.Eliminar(ctx, cat.ID))

	// the category's product is gone, unrelated products stay
	_, err = productoRepo.FindByID(ctx, p.ID)
	assert.Error(t, err)
	_, err = productoRepo.FindByID(ctx, otro.ID)
	assert.NoError(t, err)

	err = svc.Eliminar(ctx, cat.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
