package repository

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Crear(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error)
	Actualizar(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// Eliminar drops the supplier and its product links; callers guard with
	// TieneOrdenes first.
	Eliminar(ctx context.Context, id uuid.UUID) error
	TieneOrdenes(ctx context.Context, id uuid.UUID) (bool, error)

	// Producto×Proveedor association
	CrearVinculo(ctx context.Context, v *model.ProductoProveedor) error
	ListarVinculos(ctx context.Context, proveedorID uuid.UUID) ([]model.ProductoProveedor, error)
	ListarVinculosPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoProveedor, error)
	EliminarVinculo(ctx context.Context, id uuid.UUID) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Crear(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var proveedores []model.Proveedor
	err := q.Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Actualizar(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Omit("Productos").Save(p).Error
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).
		Where("id = ?", id).Update("activo", false).Error
}

func (r *proveedorRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proveedor_id = ?", id).Delete(&model.ProductoProveedor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Proveedor{}, "id = ?", id).Error
	})
}

func (r *proveedorRepo) TieneOrdenes(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("proveedor_id = ?", id).Count(&n).Error
	return n > 0, err
}

// CrearVinculo inserts the association; when Preferido is set it clears the
// flag on the product's other suppliers inside the same transaction.
func (r *proveedorRepo) CrearVinculo(ctx context.Context, v *model.ProductoProveedor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if v.Preferido {
			if err := tx.Model(&model.ProductoProveedor{}).
				Where("producto_id = ?", v.ProductoID).
				Update("preferido", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(v).Error
	})
}

func (r *proveedorRepo) ListarVinculos(ctx context.Context, proveedorID uuid.UUID) ([]model.ProductoProveedor, error) {
	var vinculos []model.ProductoProveedor
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("proveedor_id = ?", proveedorID).Find(&vinculos).Error
	return vinculos, err
}

func (r *proveedorRepo) ListarVinculosPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoProveedor, error) {
	var vinculos []model.ProductoProveedor
	err := r.db.WithContext(ctx).Preload("Proveedor").
		Where("producto_id = ?", productoID).Find(&vinculos).Error
	return vinculos, err
}

func (r *proveedorRepo) EliminarVinculo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductoProveedor{}, "id = ?", id).Error
}
