package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type FacturacionHandler struct{ svc service.FacturacionService }

func NewFacturacionHandler(svc service.FacturacionService) *FacturacionHandler {
	return &FacturacionHandler{svc: svc}
}

// GuardarEmpresa godoc
// @Summary Crea o actualiza la empresa emisora (singleton)
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EmpresaRequest true "Datos de la empresa"
// @Success 200 {object} dto.EmpresaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/facturacion/empresa [put]
func (h *FacturacionHandler) GuardarEmpresa(c *gin.Context) {
	var req dto.EmpresaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarEmpresa(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerEmpresa godoc
// @Summary Obtiene la empresa emisora
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EmpresaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/facturacion/empresa [get]
func (h *FacturacionHandler) ObtenerEmpresa(c *gin.Context) {
	resp, err := h.svc.ObtenerEmpresa(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearEstablecimiento godoc
// @Summary Crea un establecimiento
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EstablecimientoRequest true "Datos del establecimiento"
// @Success 201 {object} dto.EstablecimientoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/facturacion/establecimientos [post]
func (h *FacturacionHandler) CrearEstablecimiento(c *gin.Context) {
	var req dto.EstablecimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEstablecimiento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListEstablecimientos godoc
// @Summary Lista establecimientos activos
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EstablecimientoResponse
// @Router /v1/facturacion/establecimientos [get]
func (h *FacturacionHandler) ListEstablecimientos(c *gin.Context) {
	resp, err := h.svc.ListEstablecimientos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearPuntoExpedicion godoc
// @Summary Crea un punto de expedición
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PuntoExpedicionRequest true "Datos del punto"
// @Success 201 {object} dto.PuntoExpedicionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/facturacion/puntos-expedicion [post]
func (h *FacturacionHandler) CrearPuntoExpedicion(c *gin.Context) {
	var req dto.PuntoExpedicionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPuntoExpedicion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPuntosExpedicion godoc
// @Summary Lista puntos de expedición de un establecimiento
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de establecimiento"
// @Success 200 {array} dto.PuntoExpedicionResponse
// @Router /v1/facturacion/establecimientos/{id}/puntos-expedicion [get]
func (h *FacturacionHandler) ListPuntosExpedicion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListPuntosExpedicion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearTimbrado godoc
// @Summary Registra un timbrado con su vigencia
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TimbradoRequest true "Datos del timbrado"
// @Success 201 {object} dto.TimbradoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/facturacion/timbrados [post]
func (h *FacturacionHandler) CrearTimbrado(c *gin.Context) {
	var req dto.TimbradoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTimbrado(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTimbrados godoc
// @Summary Lista timbrados
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TimbradoResponse
// @Router /v1/facturacion/timbrados [get]
func (h *FacturacionHandler) ListTimbrados(c *gin.Context) {
	resp, err := h.svc.ListTimbrados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTiposImpuesto godoc
// @Summary Lista el catálogo de tipos de impuesto con sus subtipos
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TipoImpuestoResponse
// @Router /v1/facturacion/tipos-impuesto [get]
func (h *FacturacionHandler) ListTiposImpuesto(c *gin.Context) {
	resp, err := h.svc.ListTiposImpuesto(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarConfiguracion godoc
// @Summary Define el contexto activo de emisión
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ConfiguracionFacturaRequest true "Configuración"
// @Success 200 {object} dto.ConfiguracionFacturaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/facturacion/configuracion [put]
func (h *FacturacionHandler) GuardarConfiguracion(c *gin.Context) {
	var req dto.ConfiguracionFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarConfiguracion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerConfiguracion godoc
// @Summary Obtiene el contexto activo de emisión
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ConfiguracionFacturaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/facturacion/configuracion [get]
func (h *FacturacionHandler) ObtenerConfiguracion(c *gin.Context) {
	resp, err := h.svc.ObtenerConfiguracion(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EmitirFactura godoc
// @Summary Emite una factura electrónica y la encola hacia SIFEN
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EmitirFacturaRequest true "Datos de la factura"
// @Success 201 {object} dto.FacturaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/facturacion/facturas [post]
func (h *FacturacionHandler) EmitirFactura(c *gin.Context) {
	var req dto.EmitirFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EmitirFactura(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerFactura godoc
// @Summary Obtiene una factura por id
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de factura"
// @Success 200 {object} dto.FacturaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/facturacion/facturas/{id} [get]
func (h *FacturacionHandler) ObtenerFactura(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerFactura(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListFacturas godoc
// @Summary Lista facturas con paginación
// @Tags facturacion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Page
// @Router /v1/facturacion/facturas [get]
func (h *FacturacionHandler) ListFacturas(c *gin.Context) {
	var filter dto.FacturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validacion("filtros inválidos"))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.ListFacturas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, items, total, filter.PageFilter))
}

// EmitirNotaCredito godoc
// @Summary Emite una nota de crédito sobre una factura
// @Tags facturacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.NotaCreditoRequest true "Datos de la nota"
// @Success 201 {object} dto.NotaCreditoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/facturacion/notas-credito [post]
func (h *FacturacionHandler) EmitirNotaCredito(c *gin.Context) {
	var req dto.NotaCreditoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EmitirNotaCredito(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DescargarKude godoc
// @Summary Descarga el KuDE (representación impresa) de una factura
// @Tags facturacion
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID de factura"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/facturacion/facturas/{id}/kude [get]
func (h *FacturacionHandler) DescargarKude(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	path, nombre, err := h.svc.ObtenerKude(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, nombre)
}
