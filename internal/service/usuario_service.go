package service

import (
	"context"
	"errors"
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/config"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UsuarioService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// Registrar is the public self-registration path: the account always
	// receives the cliente role.
	Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error)
	// CrearUsuario is the admin path with an explicit role.
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ObtenerPerfil(ctx context.Context, usuarioID uuid.UUID) (*dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	EliminarRol(ctx context.Context, nombre model.NombreRol) error
}

type usuarioService struct {
	repo    repository.UsuarioRepository
	rolRepo repository.RolRepository
	cfg     *config.Config
	ahora   func() time.Time
}

func NewUsuarioService(repo repository.UsuarioRepository, rolRepo repository.RolRepository, cfg *config.Config) UsuarioService {
	return &usuarioService{repo: repo, rolRepo: rolRepo, cfg: cfg, ahora: time.Now}
}

func (s *usuarioService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales inválidas")
	}
	if user.Perfil != nil && !user.Perfil.EstaActivo() {
		return nil, errors.New("usuario bloqueado o desactivado")
	}

	// Every successful access refreshes the profile's last-access stamp.
	if err := s.repo.TocarUltimoAcceso(ctx, user.ID, s.ahora()); err != nil {
		return nil, err
	}

	return s.emitirTokens(user)
}

func (s *usuarioService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token inválido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims inválidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if user.Perfil != nil && !user.Perfil.EstaActivo() {
		return nil, errors.New("usuario bloqueado o desactivado")
	}
	return s.emitirTokens(user)
}

func (s *usuarioService) Registrar(ctx context.Context, req dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error) {
	return s.crear(ctx, req.Username, req.Nombre, req.Email, req.Password, model.RolCliente, req.Telefono, nil)
}

func (s *usuarioService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rol := model.NombreRol(req.Rol)
	if !rol.Valido() {
		return nil, validacionf("rol desconocido: %s", req.Rol)
	}
	return s.crear(ctx, req.Username, req.Nombre, req.Email, req.Password, rol, req.Telefono, req.Direccion)
}

// crear persists the Usuario together with its PerfilUsuario in one
// transaction. This replaces the implicit "create profile on user save"
// listener of the legacy system with an explicit, testable call.
func (s *usuarioService) crear(ctx context.Context, username, nombre string, email *string, password string, nombreRol model.NombreRol, telefono, direccion *string) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	rol, err := s.rolRepo.GetOrCreate(ctx, nombreRol)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Username:     username,
		Nombre:       nombre,
		Email:        email,
		PasswordHash: string(hash),
	}
	perfil := &model.PerfilUsuario{
		RolID:     &rol.ID,
		Telefono:  telefono,
		Direccion: direccion,
		Estado:    model.EstadoActivo,
	}
	if err := s.repo.CrearConPerfil(ctx, user, perfil); err != nil {
		return nil, traducirErrorStore(err)
	}
	perfil.Rol = rol
	user.Perfil = perfil
	return usuarioToResponse(user), nil
}

func (s *usuarioService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		resp = append(resp, *usuarioToResponse(&usuarios[i]))
	}
	return resp, nil
}

func (s *usuarioService) ObtenerPerfil(ctx context.Context, usuarioID uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, noEncontradof("usuario %s", usuarioID)
	}
	return usuarioToResponse(user), nil
}

func (s *usuarioService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontradof("usuario %s", id)
	}

	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, traducirErrorStore(err)
	}

	if user.Perfil != nil {
		perfil := user.Perfil
		if req.Rol != "" {
			rol, err := s.rolRepo.GetOrCreate(ctx, model.NombreRol(req.Rol))
			if err != nil {
				return nil, err
			}
			perfil.RolID = &rol.ID
			perfil.Rol = rol
		}
		if req.Estado != "" {
			perfil.Estado = model.EstadoUsuario(req.Estado)
		}
		if req.Telefono != nil {
			perfil.Telefono = req.Telefono
		}
		if req.Direccion != nil {
			perfil.Direccion = req.Direccion
		}
		if err := s.repo.UpdatePerfil(ctx, perfil); err != nil {
			return nil, traducirErrorStore(err)
		}
	}
	return usuarioToResponse(user), nil
}

func (s *usuarioService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return noEncontradof("usuario %s", id)
	}
	if user.Perfil == nil {
		return noEncontradof("perfil de usuario %s", id)
	}
	user.Perfil.Estado = model.EstadoDesactivado
	return traducirErrorStore(s.repo.UpdatePerfil(ctx, user.Perfil))
}

// EliminarRol removes a role; affected profiles keep existing with a null
// role reference.
func (s *usuarioService) EliminarRol(ctx context.Context, nombre model.NombreRol) error {
	if !nombre.Valido() {
		return validacionf("rol desconocido: %s", nombre)
	}
	rol, err := s.rolRepo.FindByNombre(ctx, nombre)
	if err != nil {
		return noEncontradof("rol %s", nombre)
	}
	return traducirErrorStore(s.rolRepo.Eliminar(ctx, rol.ID))
}

func (s *usuarioService) emitirTokens(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

func (s *usuarioService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	rol := ""
	if user.Perfil != nil && user.Perfil.Rol != nil {
		rol = string(user.Perfil.Rol.Nombre)
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"rol":      rol,
		"exp":      s.ahora().Add(duration).Unix(),
		"iat":      s.ahora().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
	}
	if u.Perfil != nil {
		resp.Estado = string(u.Perfil.Estado)
		resp.Telefono = u.Perfil.Telefono
		resp.Direccion = u.Perfil.Direccion
		if u.Perfil.Rol != nil {
			resp.Rol = string(u.Perfil.Rol.Nombre)
		}
		if u.Perfil.UltimoAcceso != nil {
			f := u.Perfil.UltimoAcceso.Format(time.RFC3339)
			resp.UltimoAcceso = &f
		}
	}
	return resp
}
