package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprobanteHandler struct{ svc service.ComprobanteService }

func NewComprobanteHandler(svc service.ComprobanteService) *ComprobanteHandler {
	return &ComprobanteHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un pago con su distribución por pasajero
// @Tags comprobantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearComprobanteRequest true "Datos del comprobante"
// @Success 201 {object} dto.ComprobanteResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/comprobantes [post]
func (h *ComprobanteHandler) Crear(c *gin.Context) {
	var req dto.CrearComprobanteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empleado, ok := empleadoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), empleado, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary Obtiene un comprobante por id
// @Tags comprobantes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de comprobante"
// @Success 200 {object} dto.ComprobanteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/comprobantes/{id} [get]
func (h *ComprobanteHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Lista comprobantes con paginación
// @Tags comprobantes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/comprobantes [get]
func (h *ComprobanteHandler) List(c *gin.Context) {
	var filter dto.ComprobanteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("filtros inválidos"))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, items, total, filter.PageFilter))
}

// Anular godoc
// @Summary Anula un comprobante y revierte sus movimientos de caja
// @Tags comprobantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de comprobante"
// @Param body body dto.AnularComprobanteRequest true "Motivo de anulación"
// @Success 200 {object} dto.ComprobanteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comprobantes/{id}/anular [post]
func (h *ComprobanteHandler) Anular(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AnularComprobanteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empleado, ok := empleadoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), id, empleado, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary Descarga el recibo PDF del comprobante
// @Tags comprobantes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID de comprobante"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/comprobantes/{id}/pdf [get]
func (h *ComprobanteHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	path, nombre, err := h.svc.ObtenerPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, nombre)
}
