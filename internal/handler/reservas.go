package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservaHandler struct {
	svc      service.ReservaService
	vouchers service.VoucherService
}

func NewReservaHandler(svc service.ReservaService, vouchers service.VoucherService) *ReservaHandler {
	return &ReservaHandler{svc: svc, vouchers: vouchers}
}

// Crear godoc
// @Summary Crea una reserva contra una salida
// @Tags reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearReservaRequest true "Datos de la reserva"
// @Success 201 {object} dto.ReservaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/reservas [post]
func (h *ReservaHandler) Crear(c *gin.Context) {
	var req dto.CrearReservaRequest
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
// @Summary Obtiene una reserva con sus pasajeros
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de reserva"
// @Success 200 {object} dto.ReservaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/reservas/{id} [get]
func (h *ReservaHandler) Obtener(c *gin.Context) {
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
// @Summary Lista reservas con paginación
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/reservas [get]
func (h *ReservaHandler) List(c *gin.Context) {
	var filter dto.ReservaFilter
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

// AgregarPasajero godoc
// @Summary Agrega un pasajero (real o por asignar) a la reserva
// @Tags reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de reserva"
// @Param body body dto.AgregarPasajeroRequest true "Datos del pasajero"
// @Success 201 {object} dto.PasajeroResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/reservas/{id}/pasajeros [post]
func (h *ReservaHandler) AgregarPasajero(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarPasajeroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPasajero(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AsignarPasajero godoc
// @Summary Asigna una persona real a un asiento por asignar
// @Tags reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de pasajero"
// @Param body body dto.ActualizarPasajeroRequest true "Persona a asignar"
// @Success 200 {object} dto.PasajeroResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reservas/pasajeros/{id} [put]
func (h *ReservaHandler) AsignarPasajero(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPasajeroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarPasajero(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MontosCancelacion godoc
// @Summary Calcula los montos de una cancelación sin ejecutarla
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de reserva"
// @Success 200 {object} dto.MontosCancelacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/reservas/{id}/montos-cancelacion [get]
func (h *ReservaHandler) MontosCancelacion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.MontosCancelacion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancela una reserva y libera cupos propios
// @Tags reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de reserva"
// @Param body body dto.CancelarReservaRequest true "Motivo de cancelación"
// @Success 200 {object} dto.MontosCancelacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reservas/{id}/cancelar [post]
func (h *ReservaHandler) Cancelar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CancelarReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListVouchers godoc
// @Summary Lista los vouchers emitidos de una reserva
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de reserva"
// @Success 200 {array} dto.VoucherResponse
// @Router /v1/reservas/{id}/vouchers [get]
func (h *ReservaHandler) ListVouchers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.vouchers.ListPorReserva(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
