package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegistrarUsuarioRequest is the public self-registration payload; the created
// account always gets the cliente role.
type RegistrarUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=150"`
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Telefono *string `json:"telefono"`
}

// CrearUsuarioRequest is the admin-side creation payload with explicit role.
type CrearUsuarioRequest struct {
	Username  string  `json:"username"  validate:"required,min=3,max=150"`
	Nombre    string  `json:"nombre"    validate:"required,min=2"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  string  `json:"password"  validate:"required,min=8"`
	Rol       string  `json:"rol"       validate:"required,oneof=cliente admin supervisor"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ActualizarUsuarioRequest struct {
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	Password  string  `json:"password" validate:"omitempty,min=8"`
	Rol       string  `json:"rol"      validate:"omitempty,oneof=cliente admin supervisor"`
	Estado    string  `json:"estado"   validate:"omitempty,oneof=ACTIVO BLOQUEADO DESACTIVADO"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Nombre       string  `json:"nombre"`
	Email        *string `json:"email,omitempty"`
	Rol          string  `json:"rol"`
	Estado       string  `json:"estado"`
	Telefono     *string `json:"telefono,omitempty"`
	Direccion    *string `json:"direccion,omitempty"`
	UltimoAcceso *string `json:"ultimo_acceso,omitempty"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}
