package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NombreRol is the closed set of roles the system knows about.
type NombreRol string

const (
	RolCliente    NombreRol = "cliente"
	RolAdmin      NombreRol = "admin"
	RolSupervisor NombreRol = "supervisor"
)

// Valido reports whether the value is one of the three known roles.
func (n NombreRol) Valido() bool {
	switch n {
	case RolCliente, RolAdmin, RolSupervisor:
		return true
	}
	return false
}

// Rol is a persisted role record. Profiles reference it with ON DELETE SET NULL,
// so removing a role never removes its users.
type Rol struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre NombreRol `gorm:"type:varchar(20);uniqueIndex;not null"`
}

func (Rol) TableName() string { return "roles" }

func (r *Rol) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
