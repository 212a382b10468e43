package service

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	// Eliminar removes a supplier without order history outright; one with
	// purchase orders on record is only deactivated.
	Eliminar(ctx context.Context, id uuid.UUID) error

	VincularProducto(ctx context.Context, proveedorID uuid.UUID, req dto.VincularProductoRequest) (*dto.ProductoProveedorResponse, error)
	ListarVinculos(ctx context.Context, proveedorID uuid.UUID) ([]dto.ProductoProveedorResponse, error)
	ProveedoresDeProducto(ctx context.Context, productoID uuid.UUID) ([]dto.ProductoProveedorResponse, error)
	DesvincularProducto(ctx context.Context, vinculoID uuid.UUID) error
}

type proveedorService struct {
	repo         repository.ProveedorRepository
	productoRepo repository.ProductoRepository
}

func NewProveedorService(repo repository.ProveedorRepository, productoRepo repository.ProductoRepository) ProveedorService {
	return &proveedorService{repo: repo, productoRepo: productoRepo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:        req.Nombre,
		RazonSocial:   req.RazonSocial,
		RUT:           req.RUT,
		Telefono:      req.Telefono,
		Email:         req.Email,
		Direccion:     req.Direccion,
		DiasCredito:   req.DiasCredito,
		DescuentoPct:  req.DescuentoPct,
		LimiteCredito: req.LimiteCredito,
		Activo:        true,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, traducirErrorStore(err)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontradof("proveedor %s", id)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		resp = append(resp, *proveedorToResponse(&proveedores[i]))
	}
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontradof("proveedor %s", id)
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.RazonSocial != nil {
		p.RazonSocial = *req.RazonSocial
	}
	if req.RUT != nil {
		p.RUT = req.RUT
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.DiasCredito != nil {
		p.DiasCredito = *req.DiasCredito
	}
	if req.DescuentoPct != nil {
		p.DescuentoPct = *req.DescuentoPct
	}
	if req.LimiteCredito != nil {
		p.LimiteCredito = req.LimiteCredito
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, traducirErrorStore(err)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return noEncontradof("proveedor %s", id)
	}
	if tiene, err := s.repo.TieneOrdenes(ctx, id); err != nil {
		return err
	} else if tiene {
		// Keep the record alive for order history; just disable it.
		return traducirErrorStore(s.repo.SoftDelete(ctx, id))
	}
	return traducirErrorStore(s.repo.Eliminar(ctx, id))
}

func (s *proveedorService) VincularProducto(ctx context.Context, proveedorID uuid.UUID, req dto.VincularProductoRequest) (*dto.ProductoProveedorResponse, error) {
	if _, err := s.repo.FindByID(ctx, proveedorID); err != nil {
		return nil, noEncontradof("proveedor %s", proveedorID)
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, validacionf("producto_id inválido: %s", req.ProductoID)
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, noEncontradof("producto %s", productoID)
	}

	v := &model.ProductoProveedor{
		ProductoID:      productoID,
		ProveedorID:     proveedorID,
		CodigoProveedor: req.CodigoProveedor,
		PrecioCompra:    req.PrecioCompra,
		LeadTimeDias:    req.LeadTimeDias,
		CantidadMinima:  req.CantidadMinima,
		Preferido:       req.Preferido,
	}
	if v.CantidadMinima.IsZero() {
		v.CantidadMinima = decimal.NewFromInt(1)
	}
	if err := s.repo.CrearVinculo(ctx, v); err != nil {
		return nil, traducirErrorStore(err)
	}
	return vinculoToResponse(v), nil
}

func (s *proveedorService) ListarVinculos(ctx context.Context, proveedorID uuid.UUID) ([]dto.ProductoProveedorResponse, error) {
	if _, err := s.repo.FindByID(ctx, proveedorID); err != nil {
		return nil, noEncontradof("proveedor %s", proveedorID)
	}
	vinculos, err := s.repo.ListarVinculos(ctx, proveedorID)
	if err != nil {
		return nil, err
	}
	return vinculosToResponse(vinculos), nil
}

func (s *proveedorService) ProveedoresDeProducto(ctx context.Context, productoID uuid.UUID) ([]dto.ProductoProveedorResponse, error) {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, noEncontradof("producto %s", productoID)
	}
	vinculos, err := s.repo.ListarVinculosPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return vinculosToResponse(vinculos), nil
}

func (s *proveedorService) DesvincularProducto(ctx context.Context, vinculoID uuid.UUID) error {
	return traducirErrorStore(s.repo.EliminarVinculo(ctx, vinculoID))
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		RazonSocial:   p.RazonSocial,
		RUT:           p.RUT,
		Telefono:      p.Telefono,
		Email:         p.Email,
		Direccion:     p.Direccion,
		DiasCredito:   p.DiasCredito,
		DescuentoPct:  p.DescuentoPct,
		LimiteCredito: p.LimiteCredito,
		Activo:        p.Activo,
	}
}

func vinculoToResponse(v *model.ProductoProveedor) *dto.ProductoProveedorResponse {
	resp := &dto.ProductoProveedorResponse{
		ID:              v.ID.String(),
		ProductoID:      v.ProductoID.String(),
		ProveedorID:     v.ProveedorID.String(),
		CodigoProveedor: v.CodigoProveedor,
		PrecioCompra:    v.PrecioCompra,
		LeadTimeDias:    v.LeadTimeDias,
		CantidadMinima:  v.CantidadMinima,
		Preferido:       v.Preferido,
	}
	if v.Producto != nil {
		resp.ProductoSKU = v.Producto.SKU
	}
	return resp
}

func vinculosToResponse(vinculos []model.ProductoProveedor) []dto.ProductoProveedorResponse {
	resp := make([]dto.ProductoProveedorResponse, 0, len(vinculos))
	for i := range vinculos {
		resp = append(resp, *vinculoToResponse(&vinculos[i]))
	}
	return resp
}
