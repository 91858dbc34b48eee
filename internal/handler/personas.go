package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PersonaHandler struct{ svc service.PersonaService }

func NewPersonaHandler(svc service.PersonaService) *PersonaHandler {
	return &PersonaHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una persona física o jurídica
// @Tags personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPersonaRequest true "Datos de la persona"
// @Success 201 {object} dto.PersonaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/personas [post]
func (h *PersonaHandler) Crear(c *gin.Context) {
	var req dto.CrearPersonaRequest
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
// @Summary Obtiene una persona por id
// @Tags personas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de persona"
// @Success 200 {object} dto.PersonaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/personas/{id} [get]
func (h *PersonaHandler) Obtener(c *gin.Context) {
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

// Actualizar godoc
// @Summary Actualiza los datos de una persona
// @Tags personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de persona"
// @Param body body dto.CrearPersonaRequest true "Datos de la persona"
// @Success 200 {object} dto.PersonaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/personas/{id} [put]
func (h *PersonaHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearPersonaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Lista personas con paginación y búsqueda
// @Tags personas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/personas [get]
func (h *PersonaHandler) List(c *gin.Context) {
	var filter dto.PersonaFilter
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

// ListEmpleados godoc
// @Summary Lista empleados activos
// @Tags personas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EmpleadoResponse
// @Router /v1/personas/empleados [get]
func (h *PersonaHandler) ListEmpleados(c *gin.Context) {
	resp, err := h.svc.ListEmpleados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
