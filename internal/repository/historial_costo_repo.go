package repository

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistorialCostoRepository interface {
	Crear(ctx context.Context, h *model.HistorialCosto) error
	ListarPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.HistorialCosto, error)
}

type historialCostoRepo struct{ db *gorm.DB }

func NewHistorialCostoRepository(db *gorm.DB) HistorialCostoRepository {
	return &historialCostoRepo{db: db}
}

func (r *historialCostoRepo) Crear(ctx context.Context, h *model.HistorialCosto) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historialCostoRepo) ListarPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.HistorialCosto, error) {
	var rows []model.HistorialCosto
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}
