package service

import (
	"context"
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorSKU(ctx context.Context, sku string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, categoriaID *uuid.UUID) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	HistorialCostos(ctx context.Context, productoID uuid.UUID) ([]dto.HistorialCostoResponse, error)
	AlertasReposicion(ctx context.Context) ([]dto.AlertaReposicionItem, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	historialRepo repository.HistorialCostoRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository, historialRepo repository.HistorialCostoRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo, historialRepo: historialRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, validacionf("categoria_id inválido: %s", req.CategoriaID)
	}
	if _, err := s.categoriaRepo.ObtenerPorID(ctx, catID); err != nil {
		return nil, noEncontradof("categoría %s", catID)
	}

	p := &model.Producto{
		SKU:             req.SKU,
		EANUPC:          req.EANUPC,
		Nombre:          req.Nombre,
		Descripcion:     req.Descripcion,
		CategoriaID:     catID,
		Marca:           req.Marca,
		Modelo:          req.Modelo,
		CostoEstandar:   req.CostoEstandar,
		CostoPromedio:   req.CostoPromedio,
		PrecioVenta:     req.PrecioVenta,
		StockMaximo:     req.StockMaximo,
		PuntoReorden:    req.PuntoReorden,
		Perishable:      req.Perishable,
		ControlPorLote:  req.ControlPorLote,
		ControlPorSerie: req.ControlPorSerie,
		ImagenURL:       req.ImagenURL,
		FichaTecnicaURL: req.FichaTecnicaURL,
	}
	p.UOMCompra = uomODefecto(req.UOMCompra)
	p.UOMVenta = uomODefecto(req.UOMVenta)
	if !req.FactorConversion.IsZero() {
		p.FactorConversion = req.FactorConversion
	} else {
		p.FactorConversion = decimal.NewFromInt(1)
	}
	if req.ImpuestoIVAPct != nil {
		p.ImpuestoIVAPct = *req.ImpuestoIVAPct
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, traducirErrorStore(err)
	}
	if p.CostoEstandar != nil {
		// Opening cost entry so the audit trail starts at creation.
		motivo := "alta de producto"
		_ = s.historialRepo.Crear(ctx, &model.HistorialCosto{
			ProductoID: p.ID,
			CostoNuevo: *p.CostoEstandar,
			Motivo:     &motivo,
		})
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontradof("producto %s", id)
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorSKU(ctx context.Context, sku string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, noEncontradof("producto con SKU %s", sku)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, categoriaID *uuid.UUID) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.Listar(ctx, categoriaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *productoToResponse(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontradof("producto %s", id)
	}

	costoAnterior := p.CostoEstandar

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.EANUPC != nil {
		p.EANUPC = req.EANUPC
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, validacionf("categoria_id inválido: %s", *req.CategoriaID)
		}
		if _, err := s.categoriaRepo.ObtenerPorID(ctx, catID); err != nil {
			return nil, noEncontradof("categoría %s", catID)
		}
		p.CategoriaID = catID
		p.Categoria = nil
	}
	if req.Marca != nil {
		p.Marca = req.Marca
	}
	if req.Modelo != nil {
		p.Modelo = req.Modelo
	}
	if req.CostoEstandar != nil {
		p.CostoEstandar = req.CostoEstandar
	}
	if req.CostoPromedio != nil {
		p.CostoPromedio = req.CostoPromedio
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = req.PrecioVenta
	}
	if req.ImpuestoIVAPct != nil {
		p.ImpuestoIVAPct = *req.ImpuestoIVAPct
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.StockMaximo != nil {
		p.StockMaximo = req.StockMaximo
	}
	if req.PuntoReorden != nil {
		p.PuntoReorden = req.PuntoReorden
	}
	if req.Perishable != nil {
		p.Perishable = *req.Perishable
	}
	if req.ControlPorLote != nil {
		p.ControlPorLote = *req.ControlPorLote
	}
	if req.ControlPorSerie != nil {
		p.ControlPorSerie = *req.ControlPorSerie
	}
	if req.ImagenURL != nil {
		p.ImagenURL = req.ImagenURL
	}
	if req.FichaTecnicaURL != nil {
		p.FichaTecnicaURL = req.FichaTecnicaURL
	}

	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, traducirErrorStore(err)
	}

	if req.CostoEstandar != nil && !costoIgual(costoAnterior, req.CostoEstandar) {
		motivo := "actualización manual"
		_ = s.historialRepo.Crear(ctx, &model.HistorialCosto{
			ProductoID:    p.ID,
			CostoAnterior: costoAnterior,
			CostoNuevo:    *req.CostoEstandar,
			Motivo:        &motivo,
		})
	}
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return noEncontradof("producto %s", id)
	}
	return traducirErrorStore(s.repo.Eliminar(ctx, id))
}

func (s *productoService) HistorialCostos(ctx context.Context, productoID uuid.UUID) ([]dto.HistorialCostoResponse, error) {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return nil, noEncontradof("producto %s", productoID)
	}
	entradas, err := s.historialRepo.ListarPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialCostoResponse, 0, len(entradas))
	for _, h := range entradas {
		item := dto.HistorialCostoResponse{
			ID:            h.ID.String(),
			ProductoID:    h.ProductoID.String(),
			CostoAnterior: h.CostoAnterior,
			CostoNuevo:    h.CostoNuevo,
			Motivo:        h.Motivo,
			CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		}
		if h.ProveedorID != nil {
			pid := h.ProveedorID.String()
			item.ProveedorID = &pid
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *productoService) AlertasReposicion(ctx context.Context) ([]dto.AlertaReposicionItem, error) {
	productos, err := s.repo.ListarBajoReorden(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaReposicionItem, 0, len(productos))
	for _, p := range productos {
		if p.PuntoReorden == nil {
			continue
		}
		alertas = append(alertas, dto.AlertaReposicionItem{
			ProductoID:   p.ID.String(),
			SKU:          p.SKU,
			Nombre:       p.Nombre,
			StockMinimo:  p.StockMinimo,
			PuntoReorden: *p.PuntoReorden,
		})
	}
	return alertas, nil
}

func uomODefecto(v string) model.UnidadMedida {
	if v == "" {
		return model.UOMUnidad
	}
	return model.UnidadMedida(v)
}

func costoIgual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:               p.ID.String(),
		SKU:              p.SKU,
		EANUPC:           p.EANUPC,
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		CategoriaID:      p.CategoriaID.String(),
		Marca:            p.Marca,
		Modelo:           p.Modelo,
		UOMCompra:        string(p.UOMCompra),
		UOMVenta:         string(p.UOMVenta),
		FactorConversion: p.FactorConversion,
		CostoEstandar:    p.CostoEstandar,
		CostoPromedio:    p.CostoPromedio,
		PrecioVenta:      p.PrecioVenta,
		ImpuestoIVAPct:   p.ImpuestoIVAPct,
		StockMinimo:      p.StockMinimo,
		StockMaximo:      p.StockMaximo,
		PuntoReorden:     p.PuntoReorden,
		Perishable:       p.Perishable,
		ControlPorLote:   p.ControlPorLote,
		ControlPorSerie:  p.ControlPorSerie,
		ImagenURL:        p.ImagenURL,
		FichaTecnicaURL:  p.FichaTecnicaURL,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nombre
	}
	return resp
}
