package repository

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RolRepository interface {
	GetOrCreate(ctx context.Context, nombre model.NombreRol) (*model.Rol, error)
	FindByNombre(ctx context.Context, nombre model.NombreRol) (*model.Rol, error)
	Listar(ctx context.Context) ([]model.Rol, error)
	// Eliminar removes the role and nulls every profile reference to it in the
	// same transaction. Profiles themselves are never deleted.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type rolRepo struct{ db *gorm.DB }

func NewRolRepository(db *gorm.DB) RolRepository { return &rolRepo{db: db} }

func (r *rolRepo) GetOrCreate(ctx context.Context, nombre model.NombreRol) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).
		FirstOrCreate(&rol, model.Rol{Nombre: nombre}).Error
	if err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *rolRepo) FindByNombre(ctx context.Context, nombre model.NombreRol) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&rol).Error
	if err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *rolRepo) Listar(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&roles).Error
	return roles, err
}

func (r *rolRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PerfilUsuario{}).
			Where("rol_id = ?", id).
			Update("rol_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Rol{}, "id = ?", id).Error
	})
}
