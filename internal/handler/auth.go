package handler

import (
	"net/http"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/apierror"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.UsuarioService }

func NewAuthHandler(svc service.UsuarioService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Registrar godoc
// @Summary Registro público de cliente
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegistrarUsuarioRequest true "Datos de la cuenta"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/auth/registro [post]
func (h *AuthHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
