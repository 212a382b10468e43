package infra

import (
	"fmt"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the whole schema. TranslateError is on so unique-index violations surface
// as gorm.ErrDuplicatedKey instead of driver-specific errors.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// Migrate creates or updates all tables. Shared with the DB-backed tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Rol{},
		&model.Usuario{},
		&model.PerfilUsuario{},
		&model.Categoria{},
		&model.Producto{},
		&model.Proveedor{},
		&model.ProductoProveedor{},
		&model.OrdenCompra{},
		&model.DetalleOC{},
		&model.HistorialCosto{},
	)
}
