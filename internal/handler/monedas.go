package handler

import (
	"net/http"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type MonedaHandler struct{ svc service.MonedaService }

func NewMonedaHandler(svc service.MonedaService) *MonedaHandler { return &MonedaHandler{svc: svc} }

// Crear godoc
// @Summary Registra una moneda
// @Tags monedas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMonedaRequest true "Datos de la moneda"
// @Success 201 {object} dto.MonedaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/monedas [post]
func (h *MonedaHandler) Crear(c *gin.Context) {
	var req dto.CrearMonedaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista monedas activas
// @Tags monedas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MonedaResponse
// @Router /v1/monedas [get]
func (h *MonedaHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarCotizacion godoc
// @Summary Registra la cotización diaria de una moneda
// @Tags monedas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCotizacionRequest true "Cotización"
// @Success 201 {object} dto.CotizacionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/monedas/cotizaciones [post]
func (h *MonedaHandler) RegistrarCotizacion(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCotizacion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListCotizaciones godoc
// @Summary Lista cotizaciones de una moneda en un rango de fechas
// @Tags monedas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de moneda"
// @Param desde query string false "Fecha desde (2006-01-02)"
// @Param hasta query string false "Fecha hasta (2006-01-02)"
// @Success 200 {array} dto.CotizacionResponse
// @Router /v1/monedas/{id}/cotizaciones [get]
func (h *MonedaHandler) ListCotizaciones(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hasta := time.Now()
	desde := hasta.AddDate(0, -1, 0)
	if raw := c.Query("desde"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.Validacion("desde inválido"))
			return
		}
		desde = parsed
	}
	if raw := c.Query("hasta"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.Validacion("hasta inválido"))
			return
		}
		hasta = parsed
	}
	resp, err := h.svc.ListCotizaciones(c.Request.Context(), id, desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Convertir godoc
// @Summary Convierte un monto entre monedas vía guaraníes
// @Tags monedas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ConvertirRequest true "Conversión"
// @Success 200 {object} dto.ConvertirResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/monedas/convertir [post]
func (h *MonedaHandler) Convertir(c *gin.Context) {
	var req dto.ConvertirRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Convertir(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
