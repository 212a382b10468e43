package service

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"

	"github.com/google/uuid"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	// Eliminar removes the category together with every product that hangs
	// from it.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	cat := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := s.repo.Crear(ctx, cat); err != nil {
		return nil, traducirErrorStore(err)
	}
	return categoriaToResponse(cat, 0), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	cats, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(cats))
	for i := range cats {
		resp = append(resp, *categoriaToResponse(&cats[i], len(cats[i].Productos)))
	}
	return resp, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	cat, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontradof("categoría %s", id)
	}
	n, err := s.repo.ContarProductos(ctx, id)
	if err != nil {
		return nil, err
	}
	return categoriaToResponse(cat, int(n)), nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	cat, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontradof("categoría %s", id)
	}
	if req.Nombre != nil {
		cat.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		cat.Descripcion = req.Descripcion
	}
	if err := s.repo.Actualizar(ctx, cat); err != nil {
		return nil, traducirErrorStore(err)
	}
	return categoriaToResponse(cat, 0), nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return noEncontradof("categoría %s", id)
	}
	return traducirErrorStore(s.repo.Eliminar(ctx, id))
}

func categoriaToResponse(c *model.Categoria, productos int) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Productos:   productos,
	}
}
