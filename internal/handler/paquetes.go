package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PaqueteHandler struct{ svc service.PaqueteService }

func NewPaqueteHandler(svc service.PaqueteService) *PaqueteHandler {
	return &PaqueteHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un paquete de viaje
// @Tags paquetes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPaqueteRequest true "Datos del paquete"
// @Success 201 {object} dto.PaqueteResponse
// @Router /v1/paquetes [post]
func (h *PaqueteHandler) Crear(c *gin.Context) {
	var req dto.CrearPaqueteRequest
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

// Obtener godoc
// @Summary Obtiene un paquete por id
// @Tags paquetes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de paquete"
// @Success 200 {object} dto.PaqueteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/paquetes/{id} [get]
func (h *PaqueteHandler) Obtener(c *gin.Context) {
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
// @Summary Lista paquetes activos con paginación
// @Tags paquetes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/paquetes [get]
func (h *PaqueteHandler) List(c *gin.Context) {
	var filter dto.PageFilter
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
	c.JSON(http.StatusOK, paginate(c, items, total, filter))
}

// CrearSalida godoc
// @Summary Crea una salida de un paquete
// @Tags paquetes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSalidaRequest true "Datos de la salida"
// @Success 201 {object} dto.SalidaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/paquetes/salidas [post]
func (h *PaqueteHandler) CrearSalida(c *gin.Context) {
	var req dto.CrearSalidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSalida(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSalidas godoc
// @Summary Lista salidas activas de un paquete
// @Tags paquetes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de paquete"
// @Success 200 {array} dto.SalidaResponse
// @Router /v1/paquetes/{id}/salidas [get]
func (h *PaqueteHandler) ListSalidas(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListSalidas(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListHabitaciones godoc
// @Summary Lista tipos de habitación disponibles
// @Tags paquetes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.HabitacionResponse
// @Router /v1/paquetes/habitaciones [get]
func (h *PaqueteHandler) ListHabitaciones(c *gin.Context) {
	resp, err := h.svc.ListHabitaciones(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
