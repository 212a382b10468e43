package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstadoUsuario is the lifecycle state of a profile.
type EstadoUsuario string

const (
	EstadoActivo      EstadoUsuario = "ACTIVO"
	EstadoBloqueado   EstadoUsuario = "BLOQUEADO"
	EstadoDesactivado EstadoUsuario = "DESACTIVADO"
)

// Usuario is the credential-bearing identity. Business data lives in the
// one-to-one PerfilUsuario, which is created together with the Usuario.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Perfil *PerfilUsuario `gorm:"foreignKey:UsuarioID"`
}

func (u *Usuario) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PerfilUsuario extends Usuario with contact and access-control fields.
// Deleting the Usuario deletes the profile; deleting the Rol only nulls RolID.
type PerfilUsuario struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	RolID     *uuid.UUID `gorm:"type:uuid;index"`

	Telefono  *string
	Direccion *string

	Estado        EstadoUsuario `gorm:"type:varchar(12);not null;default:'ACTIVO'"`
	MFAHabilitado bool          `gorm:"not null;default:false"`
	UltimoAcceso  *time.Time

	AreaUnidad    *string
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
	Rol     *Rol     `gorm:"foreignKey:RolID;constraint:OnDelete:SET NULL"`
}

func (PerfilUsuario) TableName() string { return "perfiles_usuario" }

func (p *PerfilUsuario) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EsCliente reports whether the profile carries the cliente role.
func (p *PerfilUsuario) EsCliente() bool { return p.tieneRol(RolCliente) }

// EsAdmin reports whether the profile carries the admin role.
func (p *PerfilUsuario) EsAdmin() bool { return p.tieneRol(RolAdmin) }

// EsSupervisor reports whether the profile carries the supervisor role.
func (p *PerfilUsuario) EsSupervisor() bool { return p.tieneRol(RolSupervisor) }

func (p *PerfilUsuario) tieneRol(nombre NombreRol) bool {
	return p.Rol != nil && p.Rol.Nombre == nombre
}

// EstaActivo reports whether the profile may use the system.
func (p *PerfilUsuario) EstaActivo() bool { return p.Estado == EstadoActivo }
