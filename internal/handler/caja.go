package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// CrearCaja godoc
// @Summary Crea una caja registradora
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCajaRequest true "Datos de la caja"
// @Success 201 {object} dto.CajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cajas [post]
func (h *CajaHandler) CrearCaja(c *gin.Context) {
	var req dto.CrearCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCaja(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerCaja godoc
// @Summary Obtiene una caja por id
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 200 {object} dto.CajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/{id} [get]
func (h *CajaHandler) ObtenerCaja(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCaja(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListCajas godoc
// @Summary Lista cajas con paginación
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/cajas [get]
func (h *CajaHandler) ListCajas(c *gin.Context) {
	var filter dto.CajaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("filtros inválidos"))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.ListCajas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, items, total, filter.PageFilter))
}

// Abrir godoc
// @Summary Abre una caja para el empleado autenticado
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.AperturaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empleado, ok := empleadoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), empleado, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TengoCajaAbierta godoc
// @Summary Indica si el empleado autenticado tiene una caja abierta
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TengoCajaAbiertaResponse
// @Router /v1/cajas/tengo-caja-abierta [get]
func (h *CajaHandler) TengoCajaAbierta(c *gin.Context) {
	empleado, ok := empleadoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.TengoCajaAbierta(c.Request.Context(), empleado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerApertura godoc
// @Summary Obtiene una apertura por id
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de apertura"
// @Success 200 {object} dto.AperturaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/aperturas/{id} [get]
func (h *CajaHandler) ObtenerApertura(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerApertura(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAperturas godoc
// @Summary Lista aperturas con paginación
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/cajas/aperturas [get]
func (h *CajaHandler) ListAperturas(c *gin.Context) {
	var filter dto.AperturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("filtros inválidos"))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.ListAperturas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, items, total, filter.PageFilter))
}

// RegistrarMovimiento godoc
// @Summary Registra un ingreso o egreso manual
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoManualRequest true "Movimiento manual"
// @Success 201 {object} dto.MovimientoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cajas/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empleado, ok := empleadoID(c)
	if !ok {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), empleado, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMovimientos godoc
// @Summary Lista movimientos de caja con paginación
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/cajas/movimientos [get]
func (h *CajaHandler) ListMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("filtros inválidos"))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.ListMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, items, total, filter.PageFilter))
}

// Cerrar godoc
// @Summary Cierra la apertura con arqueo de efectivo
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Declaración de cierre"
// @Success 201 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cajas/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AutorizarCierre godoc
// @Summary Autoriza un cierre con diferencia fuera del umbral
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cierre"
// @Param body body dto.AutorizarCierreRequest true "Autorizante"
// @Success 200 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cajas/cierres/{id}/autorizar [post]
func (h *CajaHandler) AutorizarCierre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AutorizarCierreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AutorizarCierre(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerCierre godoc
// @Summary Obtiene un cierre por id
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cierre"
// @Success 200 {object} dto.CierreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/cierres/{id} [get]
func (h *CajaHandler) ObtenerCierre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCierre(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarCierrePDF godoc
// @Summary Descarga el reporte de arqueo de un cierre en PDF
// @Tags cajas
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID de cierre"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/cierres/{id}/pdf [get]
func (h *CajaHandler) DescargarCierrePDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	path, nombre, err := h.svc.ObtenerCierrePDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, nombre)
}

// ListCierres godoc
// @Summary Lista cierres con paginación
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/cajas/cierres [get]
func (h *CajaHandler) ListCierres(c *gin.Context) {
	var filter dto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("filtros inválidos"))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.ListCierres(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, items, total, filter))
}

// ResumenGeneral godoc
// @Summary Resumen general del estado de las cajas
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumenGeneralResponse
// @Router /v1/cajas/resumen-general [get]
func (h *CajaHandler) ResumenGeneral(c *gin.Context) {
	resp, err := h.svc.ResumenGeneral(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
