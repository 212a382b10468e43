package repository

import (
	"context"
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	// CrearConPerfil persists the Usuario and its PerfilUsuario in one
	// transaction, so an identity can never exist without its profile.
	CrearConPerfil(ctx context.Context, u *model.Usuario, p *model.PerfilUsuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	Listar(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	UpdatePerfil(ctx context.Context, p *model.PerfilUsuario) error
	TocarUltimoAcceso(ctx context.Context, usuarioID uuid.UUID, t time.Time) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) CrearConPerfil(ctx context.Context, u *model.Usuario, p *model.PerfilUsuario) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p.UsuarioID = u.ID
		return tx.Create(p).Error
	})
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfil.Rol").Preload("Perfil").First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfil.Rol").Preload("Perfil").
		Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Listar(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Preload("Perfil.Rol").Preload("Perfil").
		Order("username asc").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Omit("Perfil").Save(u).Error
}

func (r *usuarioRepo) UpdatePerfil(ctx context.Context, p *model.PerfilUsuario) error {
	return r.db.WithContext(ctx).Omit("Usuario", "Rol").Save(p).Error
}

func (r *usuarioRepo) TocarUltimoAcceso(ctx context.Context, usuarioID uuid.UUID, t time.Time) error {
	return r.db.WithContext(ctx).Model(&model.PerfilUsuario{}).
		Where("usuario_id = ?", usuarioID).
		Update("ultimo_acceso", t).Error
}
