package handler

import (
	"net/http"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/apierror"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/middleware"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdenesHandler struct {
	svc       service.OrdenService
	exportSvc service.ExportService
}

func NewOrdenesHandler(svc service.OrdenService, exportSvc service.ExportService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc, exportSvc: exportSvc}
}

// Crear godoc
// @Summary      Crear orden de compra
// @Description  Crea la orden con sus líneas y deja los totales derivados ya calculados.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearOrdenRequest true "Cabecera y líneas"
// @Success      201  {object} dto.OrdenResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	clienteID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), clienteID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdenesHandler) Listar(c *gin.Context) {
	var filter dto.OrdenFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	// Clientes only see their own orders.
	if claims := middleware.GetClaims(c); claims != nil && claims.Rol == string(model.RolCliente) {
		filter.ClienteID = claims.UserID
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar órdenes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Líneas ───────────────────────────────────────────────────────────────────

func (h *OrdenesHandler) AgregarLinea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.LineaOrdenInput
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarLinea(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdenesHandler) ActualizarLinea(c *gin.Context) {
	ordenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	lineaID, err := uuid.Parse(c.Param("linea_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de línea inválido"))
		return
	}
	var req dto.ActualizarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarLinea(c.Request.Context(), ordenID, lineaID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) EliminarLinea(c *gin.Context) {
	ordenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	lineaID, err := uuid.Parse(c.Param("linea_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de línea inválido"))
		return
	}
	resp, err := h.svc.EliminarLinea(c.Request.Context(), ordenID, lineaID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Operaciones de cabecera ──────────────────────────────────────────────────

// Recalcular re-derives the header totals from the persisted lines. The
// result is identical when nothing changed underneath.
func (h *OrdenesHandler) Recalcular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.RecalcularTotales(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), id, model.EstadoOrden(req.Estado)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrdenesHandler) AsignarNumero(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	numero, err := h.svc.AsignarNumero(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numero": numero})
}

func (h *OrdenesHandler) RegistrarRecepcion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarRecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarRecepcion(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF renders the order document on demand and serves the file.
func (h *OrdenesHandler) DescargarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	path, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "orden_"+id.String()+".pdf")
}

// ExportarCSV streams the filtered orders as a CSV attachment.
func (h *OrdenesHandler) ExportarCSV(c *gin.Context) {
	var filter dto.OrdenFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="ordenes.csv"`)
	if err := h.exportSvc.ExportarOrdenesCSV(c.Request.Context(), c.Writer, filter); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
