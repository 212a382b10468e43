package router

import (
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/config"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/handler"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/middleware"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	rolRepo := repository.NewRolRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	historialRepo := repository.NewHistorialCostoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	usuarioSvc := service.NewUsuarioService(usuarioRepo, rolRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, historialRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, productoRepo)
	ordenSvc := service.NewOrdenService(ordenRepo, productoRepo, proveedorRepo, dispatcher,
		cfg.TasaImpuesto, cfg.AnioNumeracion, cfg.PDFStoragePath)
	exportSvc := service.NewExportService(proveedorRepo, ordenRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(usuarioSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc, exportSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc, exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/registro", authH.Registrar)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	lectura := middleware.RequireRol(model.RolCliente, model.RolSupervisor, model.RolAdmin)
	gestion := middleware.RequireRol(model.RolSupervisor, model.RolAdmin)
	admin := middleware.RequireRol(model.RolAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/perfil", lectura, usuariosH.Perfil)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
		v1.DELETE("/roles/:nombre", admin, usuariosH.EliminarRol)

		// Categorías: read for everyone authenticated, writes for admin
		v1.GET("/categorias", lectura, categoriasH.Listar)
		v1.GET("/categorias/:id", lectura, categoriasH.ObtenerPorID)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/:id", lectura, productosH.ObtenerPorID)
		v1.GET("/productos/sku/:sku", lectura, productosH.ObtenerPorSKU)
		v1.GET("/productos/:id/historial-costos", gestion, productosH.HistorialCostos)
		v1.GET("/productos/:id/proveedores", gestion, proveedoresH.ProveedoresDeProducto)
		v1.GET("/alertas/reposicion", gestion, productosH.AlertasReposicion)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		prov := v1.Group("/proveedores", gestion)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/export/csv", proveedoresH.ExportarCSV)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
			prov.POST("/:id/productos", proveedoresH.VincularProducto)
			prov.GET("/:id/productos", proveedoresH.ListarVinculos)
			prov.DELETE("/vinculos/:vinculo_id", proveedoresH.DesvincularProducto)
		}

		// Órdenes de compra: any authenticated user creates and reads;
		// state changes and deletion need supervisor/admin
		ordenes := v1.Group("/ordenes")
		{
			ordenes.POST("", lectura, ordenesH.Crear)
			ordenes.GET("", lectura, ordenesH.Listar)
			ordenes.GET("/export/csv", gestion, ordenesH.ExportarCSV)
			ordenes.GET("/:id", lectura, ordenesH.ObtenerPorID)
			ordenes.DELETE("/:id", gestion, ordenesH.Eliminar)

			ordenes.POST("/:id/lineas", lectura, ordenesH.AgregarLinea)
			ordenes.PUT("/:id/lineas/:linea_id", lectura, ordenesH.ActualizarLinea)
			ordenes.DELETE("/:id/lineas/:linea_id", lectura, ordenesH.EliminarLinea)

			ordenes.POST("/:id/recalcular", lectura, ordenesH.Recalcular)
			ordenes.PATCH("/:id/estado", gestion, ordenesH.CambiarEstado)
			ordenes.POST("/:id/numero", gestion, ordenesH.AsignarNumero)
			ordenes.POST("/:id/recepcion", gestion, ordenesH.RegistrarRecepcion)
			ordenes.GET("/:id/pdf", lectura, ordenesH.DescargarPDF)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
