package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced by the service layer. Handlers map these to HTTP
// statuses; everything else is treated as an internal error.
var (
	// ErrValidacion rejects a request before any write happens.
	ErrValidacion = errors.New("error de validación")
	// ErrNoEncontrado reports a missing referenced record; no partial
	// mutation occurs.
	ErrNoEncontrado = errors.New("no encontrado")
	// ErrConflicto reports a uniqueness violation surfaced by the store; the
	// operation aborted atomically.
	ErrConflicto = errors.New("conflicto de unicidad")
)

func validacionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidacion}, args...)...)
}

func noEncontradof(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNoEncontrado}, args...)...)
}

// traducirErrorStore converts store-level failures into service error kinds.
// Unique-index violations become ErrConflicto, missing rows ErrNoEncontrado.
func traducirErrorStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNoEncontrado, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflicto, err)
	default:
		return err
	}
}
