package repository

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindBySKU(ctx context.Context, sku string) (*model.Producto, error)
	Listar(ctx context.Context, categoriaID *uuid.UUID) ([]model.Producto, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	// ListarBajoReorden returns products whose reorder point is configured and
	// whose minimum stock sits at or under it.
	ListarBajoReorden(ctx context.Context) ([]model.Producto, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindBySKU(ctx context.Context, sku string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, categoriaID *uuid.UUID) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Preload("Categoria").Order("sku asc")
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	var productos []model.Producto
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("Categoria").Save(p).Error
}

func (r *productoRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) ListarBajoReorden(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("punto_reorden IS NOT NULL AND stock_minimo <= punto_reorden").
		Order("sku asc").
		Find(&productos).Error
	return productos, err
}
