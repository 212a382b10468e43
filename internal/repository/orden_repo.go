package repository

import (
	"context"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrdenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenCompra, int64, error)
	// Eliminar deletes the order and its lines in one transaction.
	Eliminar(ctx context.Context, id uuid.UUID) error

	CreateLinea(ctx context.Context, tx *gorm.DB, l *model.DetalleOC) error
	FindLineaByID(ctx context.Context, id uuid.UUID) (*model.DetalleOC, error)
	UpdateLinea(ctx context.Context, tx *gorm.DB, l *model.DetalleOC) error
	DeleteLinea(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListLineas(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID) ([]model.DetalleOC, error)

	// SumSubtotalLineas aggregates subtotal_linea over the order's persisted
	// lines. Runs inside tx so the aggregate and the header write share one
	// isolation scope.
	SumSubtotalLineas(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error)
	UpdateTotales(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID, subtotal, impuesto, total decimal.Decimal) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoOrden) error
	UpdateNumero(ctx context.Context, id uuid.UUID, numero string) error

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func (r *ordenRepo) Create(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error {
	if o.Secuencia == 0 {
		// Next sequence value, assigned inside the caller's transaction. A
		// concurrent insert of the same value trips the unique index.
		var max *int64
		err := tx.WithContext(ctx).Model(&model.OrdenCompra{}).
			Select("MAX(secuencia)").Scan(&max).Error
		if err != nil {
			return err
		}
		o.Secuencia = 1
		if max != nil {
			o.Secuencia = *max + 1
		}
	}
	return tx.WithContext(ctx).Omit("Cliente", "Proveedor").Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").
		Preload("Cliente").
		Preload("Proveedor").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenCompra, int64, error) {
	var ordenes []model.OrdenCompra
	var total int64

	// Limit <= 0 means no pagination.
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := 0
	if filter.Page > 1 && limit > 0 {
		offset = (filter.Page - 1) * limit
	}

	q := r.db.WithContext(ctx).Model(&model.OrdenCompra{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles.Producto").Preload("Proveedor").Preload("Cliente").
		Order("fecha DESC, secuencia DESC").
		Offset(offset).Limit(limit).
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("orden_id = ?", id).Delete(&model.DetalleOC{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.OrdenCompra{}, "id = ?", id).Error
	})
}

func (r *ordenRepo) CreateLinea(ctx context.Context, tx *gorm.DB, l *model.DetalleOC) error {
	return tx.WithContext(ctx).Omit("Orden", "Producto").Create(l).Error
}

func (r *ordenRepo) FindLineaByID(ctx context.Context, id uuid.UUID) (*model.DetalleOC, error) {
	var l model.DetalleOC
	err := r.db.WithContext(ctx).Preload("Producto").First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ordenRepo) UpdateLinea(ctx context.Context, tx *gorm.DB, l *model.DetalleOC) error {
	return tx.WithContext(ctx).Omit("Orden", "Producto").Save(l).Error
}

func (r *ordenRepo) DeleteLinea(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.DetalleOC{}, "id = ?", id).Error
}

func (r *ordenRepo) ListLineas(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID) ([]model.DetalleOC, error) {
	var lineas []model.DetalleOC
	err := tx.WithContext(ctx).Where("orden_id = ?", ordenID).
		Order("created_at asc").Find(&lineas).Error
	return lineas, err
}

func (r *ordenRepo) SumSubtotalLineas(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	var raw *string
	err := tx.WithContext(ctx).Model(&model.DetalleOC{}).
		Where("orden_id = ?", ordenID).
		Select("CAST(SUM(subtotal_linea) AS TEXT)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil // no lines yet
	}
	return decimal.NewFromString(*raw)
}

func (r *ordenRepo) UpdateTotales(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID, subtotal, impuesto, total decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("id = ?", ordenID).
		Updates(map[string]interface{}{
			"subtotal": subtotal,
			"impuesto": impuesto,
			"total":    total,
		}).Error
}

func (r *ordenRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoOrden) error {
	return r.db.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("id = ?", id).Update("estado", estado).Error
}

func (r *ordenRepo) UpdateNumero(ctx context.Context, id uuid.UUID, numero string) error {
	return r.db.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("id = ?", id).Update("numero", numero).Error
}
