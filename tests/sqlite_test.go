package tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/config"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/infra"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// abrirDB opens a throwaway sqlite database with the full schema migrated, so
// the repositories run the same GORM queries they run against postgres.
func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "dulceria.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return db
}

type entorno struct {
	db          *gorm.DB
	usuarios    service.UsuarioService
	categorias  service.CategoriaService
	productos   service.ProductoService
	proveedores service.ProveedorService
	ordenes     service.OrdenService
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	db := abrirDB(t)

	usuarioRepo := repository.NewUsuarioRepository(db)
	rolRepo := repository.NewRolRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	historialRepo := repository.NewHistorialCostoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	cfg := &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}

	return &entorno{
		db:          db,
		usuarios:    service.NewUsuarioService(usuarioRepo, rolRepo, cfg),
		categorias:  service.NewCategoriaService(categoriaRepo),
		productos:   service.NewProductoService(productoRepo, categoriaRepo, historialRepo),
		proveedores: service.NewProveedorService(proveedorRepo, productoRepo),
		ordenes:     service.NewOrdenService(ordenRepo, productoRepo, proveedorRepo, nil, tasaIVA, 2024, ""),
	}
}

func (e *entorno) crearProducto(t *testing.T, ctx context.Context, sku, nombre, categoriaID string) *dto.ProductoResponse {
	t.Helper()
	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{
		SKU: sku, Nombre: nombre, CategoriaID: categoriaID,
	})
	require.NoError(t, err)
	return p
}

func TestDB_EscenarioOrdenCompleta(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	cliente, err := e.usuarios.Registrar(ctx, dto.RegistrarUsuarioRequest{
		Username: "mariat", Nombre: "María Torres", Password: "contrasena123",
	})
	require.NoError(t, err)
	clienteID := mustUUID(t, cliente.ID)

	cat, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Chocolates"})
	require.NoError(t, err)
	choc := e.crearProducto(t, ctx, "CHOC-001", "Chocolate amargo 70%", cat.ID.String())
	gomi := e.crearProducto(t, ctx, "GOMI-002", "Gomitas surtidas", cat.ID.String())

	prov, err := e.proveedores.Crear(ctx, dto.CrearProveedorRequest{
		Nombre: "Dulces del Valle", RazonSocial: "Dulces del Valle S.A.",
	})
	require.NoError(t, err)

	orden, err := e.ordenes.Crear(ctx, clienteID, dto.CrearOrdenRequest{
		ProveedorID: prov.ID,
		Fecha:       "2024-03-15",
		Detalles: []dto.LineaOrdenInput{
			{ProductoID: choc.ID, Cantidad: dec("3"), PrecioUnitario: dec("10.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("30.00").Equal(orden.Subtotal), "subtotal = %s", orden.Subtotal)
	assert.True(t, dec("4.80").Equal(orden.Impuesto), "impuesto = %s", orden.Impuesto)
	assert.True(t, dec("34.80").Equal(orden.Total), "total = %s", orden.Total)
	assert.Equal(t, "pendiente", orden.Estado)

	ordenID := mustUUID(t, orden.ID)
	conGomitas, err := e.ordenes.AgregarLinea(ctx, ordenID, dto.LineaOrdenInput{
		ProductoID: gomi.ID, Cantidad: dec("2"), PrecioUnitario: dec("5.00"),
	})
	require.NoError(t, err)
	assert.True(t, dec("40.00").Equal(conGomitas.Subtotal))
	assert.True(t, dec("6.40").Equal(conGomitas.Impuesto))
	assert.True(t, dec("46.40").Equal(conGomitas.Total))
	assert.Len(t, conGomitas.Detalles, 2)

	// the recompute reads what is persisted, so nothing moves
	recalc, err := e.ordenes.RecalcularTotales(ctx, ordenID)
	require.NoError(t, err)
	assert.True(t, conGomitas.Total.Equal(recalc.Total))

	numero, err := e.ordenes.AsignarNumero(ctx, ordenID)
	require.NoError(t, err)
	assert.Equal(t, "OC-2024-0001", numero)

	// a second order takes the next sequence slot
	segunda, err := e.ordenes.Crear(ctx, clienteID, dto.CrearOrdenRequest{
		ProveedorID: prov.ID,
		Fecha:       "2024-03-16",
		Detalles: []dto.LineaOrdenInput{
			{ProductoID: gomi.ID, Cantidad: dec("1"), PrecioUnitario: dec("5.00")},
		},
	})
	require.NoError(t, err)
	numero2, err := e.ordenes.AsignarNumero(ctx, mustUUID(t, segunda.ID))
	require.NoError(t, err)
	assert.Equal(t, "OC-2024-0002", numero2)

	lista, err := e.ordenes.Listar(ctx, dto.OrdenFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, lista.Total)
}

func TestDB_EliminarOrdenBorraLineas(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	cat, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Dulces"})
	require.NoError(t, err)
	p := e.crearProducto(t, ctx, "CARA-001", "Caramelos de leche", cat.ID.String())
	prov, err := e.proveedores.Crear(ctx, dto.CrearProveedorRequest{
		Nombre: "La Fábrica", RazonSocial: "La Fábrica SpA",
	})
	require.NoError(t, err)

	cliente, err := e.usuarios.Registrar(ctx, dto.RegistrarUsuarioRequest{
		Username: "comprasdl", Nombre: "Compras Dulcería", Password: "contrasena123",
	})
	require.NoError(t, err)

	orden, err := e.ordenes.Crear(ctx, mustUUID(t, cliente.ID), dto.CrearOrdenRequest{
		ProveedorID: prov.ID,
		Fecha:       "2024-04-01",
		Detalles: []dto.LineaOrdenInput{
			{ProductoID: p.ID, Cantidad: dec("4"), PrecioUnitario: dec("2.50")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, e.ordenes.Eliminar(ctx, mustUUID(t, orden.ID)))

	var lineas int64
	require.NoError(t, e.db.Model(&model.DetalleOC{}).Count(&lineas).Error)
	assert.Zero(t, lineas)
}

func TestDB_EliminarCategoriaBorraProductos(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	cat, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Postres"})
	require.NoError(t, err)
	otra, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Ingredientes"})
	require.NoError(t, err)

	e.crearProducto(t, ctx, "FLAN-001", "Flan casero", cat.ID.String())
	vive := e.crearProducto(t, ctx, "AZUC-001", "Azúcar glas", otra.ID.String())

	require.NoError(t, e.categorias.Eliminar(ctx, cat.ID))

	_, err = e.productos.ObtenerPorSKU(ctx, "FLAN-001")
	assert.ErrorIs(t, err, service.ErrNoEncontrado)

	sobreviviente, err := e.productos.ObtenerPorID(ctx, mustUUID(t, vive.ID))
	require.NoError(t, err)
	assert.Equal(t, "AZUC-001", sobreviviente.SKU)
}

func TestDB_EliminarRolDejaPerfilSinRol(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	u, err := e.usuarios.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "jperez", Nombre: "Juan Pérez",
		Password: "contrasena123", Rol: "supervisor",
	})
	require.NoError(t, err)

	require.NoError(t, e.usuarios.EliminarRol(ctx, model.RolSupervisor))

	// the profile survives with the role reference nulled
	var perfil model.PerfilUsuario
	require.NoError(t, e.db.First(&perfil, "usuario_id = ?", mustUUID(t, u.ID)).Error)
	assert.Nil(t, perfil.RolID)
}

func TestDB_UnicidadSKUyRUT(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	cat, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Chocolates"})
	require.NoError(t, err)

	e.crearProducto(t, ctx, "CHOC-001", "Chocolate amargo", cat.ID.String())
	_, err = e.productos.Crear(ctx, dto.CrearProductoRequest{
		SKU: "CHOC-001", Nombre: "Chocolate con leche", CategoriaID: cat.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrConflicto)

	rut := "76.123.456-7"
	_, err = e.proveedores.Crear(ctx, dto.CrearProveedorRequest{
		Nombre: "Dulces del Valle", RazonSocial: "Dulces del Valle S.A.", RUT: &rut,
	})
	require.NoError(t, err)
	_, err = e.proveedores.Crear(ctx, dto.CrearProveedorRequest{
		Nombre: "Otro", RazonSocial: "Otro Ltda.", RUT: &rut,
	})
	assert.ErrorIs(t, err, service.ErrConflicto)
}
