package handler

import (
	"net/http"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type VoucherHandler struct{ svc service.VoucherService }

func NewVoucherHandler(svc service.VoucherService) *VoucherHandler {
	return &VoucherHandler{svc: svc}
}

// Obtener godoc
// @Summary Obtiene un voucher por id
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de voucher"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/vouchers/{id} [get]
func (h *VoucherHandler) Obtener(c *gin.Context) {
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

// Verificar godoc
// @Summary Verifica un voucher por su código (lectura de QR en puerta)
// @Tags vouchers
// @Produce json
// @Param codigo path string true "Código del voucher"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/vouchers/verificar/{codigo} [get]
func (h *VoucherHandler) Verificar(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		c.JSON(http.StatusBadRequest, apierror.Validacion("código requerido"))
		return
	}
	resp, err := h.svc.ObtenerPorCodigo(c.Request.Context(), codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary Descarga el PDF del voucher
// @Tags vouchers
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID de voucher"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/vouchers/{id}/pdf [get]
func (h *VoucherHandler) DescargarPDF(c *gin.Context) {
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
