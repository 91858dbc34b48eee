package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComprobanteService interface {
	Crear(ctx context.Context, empleadoID uuid.UUID, req dto.CrearComprobanteRequest) (*dto.ComprobanteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ComprobanteResponse, error)
	List(ctx context.Context, filter dto.ComprobanteFilter) ([]dto.ComprobanteResponse, int64, error)
	// Anular voids a comprobante: flips activo, reverses its caja movements
	// and recomputes the booking's paid amounts. Nothing is deleted.
	Anular(ctx context.Context, id uuid.UUID, empleadoID uuid.UUID, req dto.AnularComprobanteRequest) (*dto.ComprobanteResponse, error)
	// ObtenerPDF returns the receipt file, generating it on the spot when the
	// worker hasn't produced it yet.
	ObtenerPDF(ctx context.Context, id uuid.UUID) (string, string, error)
}

type comprobanteService struct {
	repo        repository.ComprobanteRepository
	reservaRepo repository.ReservaRepository
	reservas    ReservaService
	caja        CajaService
	monedas     MonedaService
	secuencias  repository.SecuenciaRepository
	dispatcher  JobDispatcher
	storagePath string
}

func NewComprobanteService(
	repo repository.ComprobanteRepository,
	reservaRepo repository.ReservaRepository,
	reservas ReservaService,
	caja CajaService,
	monedas MonedaService,
	secuencias repository.SecuenciaRepository,
	dispatcher JobDispatcher,
	storagePath string,
) ComprobanteService {
	return &comprobanteService{
		repo:        repo,
		reservaRepo: reservaRepo,
		reservas:    reservas,
		caja:        caja,
		monedas:     monedas,
		secuencias:  secuencias,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *comprobanteService) Crear(ctx context.Context, empleadoID uuid.UUID, req dto.CrearComprobanteRequest) (*dto.ComprobanteResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, apierror.Validacion("el monto debe ser mayor a cero")
	}
	reservaID, err := uuid.Parse(req.ReservaID)
	if err != nil {
		return nil, apierror.Validacion("reserva_id inválido")
	}

	reserva, err := s.reservaRepo.FindByID(ctx, reservaID)
	if err != nil {
		return nil, apierror.NoEncontrado("reserva no encontrada")
	}
	if reserva.EstaCancelada() {
		return nil, apierror.EstadoInvalido("la reserva está cancelada")
	}

	distribuciones, err := validarDistribuciones(reserva, req.Monto, req.Distribuciones)
	if err != nil {
		return nil, err
	}
	if req.Tipo == "devolucion" && req.Monto.GreaterThan(reserva.MontoPagado) {
		return nil, apierror.EstadoInvalido("la devolución excede el monto pagado de la reserva")
	}

	// La caja opera solo en guaraníes: sin cotización vigente el pago se
	// rechaza antes de persistir nada.
	montoGs, err := s.montoEnGuaranies(ctx, reserva.Salida, req.Monto)
	if err != nil {
		return nil, err
	}

	var comprobante model.ComprobantePago
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		codigo, err := nextCodigo(ctx, tx, s.secuencias, scopeComprobante, time.Now())
		if err != nil {
			return err
		}
		comprobante = model.ComprobantePago{
			Codigo:         codigo,
			ReservaID:      reserva.ID,
			Tipo:           req.Tipo,
			Monto:          req.Monto,
			MetodoPago:     req.MetodoPago,
			Referencia:     req.Referencia,
			EmpleadoID:     empleadoID,
			Observaciones:  req.Observaciones,
			Activo:         true,
			Distribuciones: distribuciones,
		}
		if err := s.repo.Create(ctx, tx, &comprobante); err != nil {
			return err
		}
		// Sin caja abierta no hay pago: el comprobante nunca se persiste.
		if err := s.caja.RegistrarPago(ctx, tx, &comprobante, montoGs, empleadoID); err != nil {
			return err
		}
		return s.reservas.RecalcularPagos(ctx, tx, reserva.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.encolarDocumentos(ctx, &comprobante)
	return s.Obtener(ctx, comprobante.ID)
}

// montoEnGuaranies converts the comprobante amount to guaraníes when the
// salida is priced in another currency. The comprobante itself keeps the
// salida currency; only the caja movement converts.
func (s *comprobanteService) montoEnGuaranies(ctx context.Context, salida *model.Salida, monto decimal.Decimal) (decimal.Decimal, error) {
	if salida == nil || salida.Moneda == nil || salida.Moneda.EsBase() {
		return monto, nil
	}
	conv, err := s.monedas.Convertir(ctx, dto.ConvertirRequest{
		Monto:   monto,
		Origen:  salida.Moneda.Codigo,
		Destino: "PYG",
	})
	if err != nil {
		return decimal.Zero, err
	}
	return conv.MontoConvertido, nil
}

// validarDistribuciones checks that every share targets a passenger of the
// booking, no passenger repeats, each share is positive and the sum equals
// the comprobante amount.
func validarDistribuciones(reserva *model.Reserva, monto decimal.Decimal, reqs []dto.DistribucionRequest) ([]model.ComprobantePagoDistribucion, error) {
	pasajeros := make(map[uuid.UUID]bool, len(reserva.Pasajeros))
	for _, p := range reserva.Pasajeros {
		pasajeros[p.ID] = true
	}

	vistos := make(map[uuid.UUID]bool, len(reqs))
	total := decimal.Zero
	distribuciones := make([]model.ComprobantePagoDistribucion, 0, len(reqs))
	for _, d := range reqs {
		pid, err := uuid.Parse(d.PasajeroID)
		if err != nil {
			return nil, apierror.Validacion("pasajero_id inválido en la distribución")
		}
		if !pasajeros[pid] {
			return nil, apierror.Validacion("la distribución referencia un pasajero ajeno a la reserva")
		}
		if vistos[pid] {
			return nil, apierror.Validacion("la distribución repite un pasajero")
		}
		if !d.Monto.IsPositive() {
			return nil, apierror.Validacion("cada monto distribuido debe ser mayor a cero")
		}
		vistos[pid] = true
		total = total.Add(d.Monto)
		distribuciones = append(distribuciones, model.ComprobantePagoDistribucion{
			PasajeroID: pid,
			Monto:      d.Monto,
		})
	}
	if !total.Equal(monto) {
		return nil, apierror.Validacion(fmt.Sprintf(
			"la distribución (%s) no coincide con el monto del comprobante (%s)",
			total.StringFixed(2), monto.StringFixed(2)))
	}
	return distribuciones, nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *comprobanteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ComprobanteResponse, error) {
	comprobante, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("comprobante no encontrado")
	}
	return comprobanteToResponse(comprobante), nil
}

func (s *comprobanteService) List(ctx context.Context, filter dto.ComprobanteFilter) ([]dto.ComprobanteResponse, int64, error) {
	filter.Normalize()
	comprobantes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ComprobanteResponse, 0, len(comprobantes))
	for i := range comprobantes {
		items = append(items, *comprobanteToResponse(&comprobantes[i]))
	}
	return items, total, nil
}

// ObtenerPDF serves the stored file, or generates it synchronously when the
// download llega antes que el worker.
func (s *comprobanteService) ObtenerPDF(ctx context.Context, id uuid.UUID) (string, string, error) {
	comprobante, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", "", apierror.NoEncontrado("comprobante no encontrado")
	}
	if comprobante.PDFPath == nil {
		path, err := infra.GenerarComprobantePDF(comprobante, s.storagePath)
		if err != nil {
			return "", "", err
		}
		comprobante.PDFPath = &path
		comprobante.PDFGenerado = true
		if err := s.repo.Update(ctx, s.repo.DB(), comprobante); err != nil {
			return "", "", err
		}
	}
	return *comprobante.PDFPath, comprobante.Codigo + ".pdf", nil
}

// ── Anular ────────────────────────────────────────────────────────────────────

func (s *comprobanteService) Anular(ctx context.Context, id uuid.UUID, empleadoID uuid.UUID, req dto.AnularComprobanteRequest) (*dto.ComprobanteResponse, error) {
	comprobante, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("comprobante no encontrado")
	}
	if !comprobante.Activo {
		return nil, apierror.EstadoInvalido("el comprobante ya está anulado")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		nota := fmt.Sprintf("ANULADO: %s", req.Motivo)
		if comprobante.Observaciones != nil && *comprobante.Observaciones != "" {
			nota = fmt.Sprintf("%s | %s", nota, *comprobante.Observaciones)
		}
		comprobante.Observaciones = &nota
		comprobante.Activo = false
		comprobante.PDFGenerado = false
		if err := s.repo.Update(ctx, tx, comprobante); err != nil {
			return err
		}
		if err := s.caja.RevertirPago(ctx, tx, comprobante.ID, empleadoID); err != nil {
			return err
		}
		return s.reservas.RecalcularPagos(ctx, tx, comprobante.ReservaID)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Regenera el PDF con la marca de agua de anulación.
	s.encolarDocumentos(ctx, comprobante)
	return s.Obtener(ctx, comprobante.ID)
}

func (s *comprobanteService) encolarDocumentos(ctx context.Context, c *model.ComprobantePago) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueuePDF(ctx, map[string]string{
		"tipo": "comprobante",
		"id":   c.ID.String(),
	}); err != nil {
		log.Error().Err(err).Str("comprobante", c.Codigo).Msg("no se pudo encolar el PDF")
	}
	if err := s.dispatcher.EnqueueEmail(ctx, map[string]string{
		"tipo": "comprobante",
		"id":   c.ID.String(),
	}); err != nil {
		log.Error().Err(err).Str("comprobante", c.Codigo).Msg("no se pudo encolar el email")
	}
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func comprobanteToResponse(c *model.ComprobantePago) *dto.ComprobanteResponse {
	resp := &dto.ComprobanteResponse{
		ID:            c.ID.String(),
		Codigo:        c.Codigo,
		ReservaID:     c.ReservaID.String(),
		Tipo:          c.Tipo,
		Monto:         c.Monto,
		MetodoPago:    c.MetodoPago,
		Referencia:    c.Referencia,
		Observaciones: c.Observaciones,
		PDFGenerado:   c.PDFGenerado,
		PDFPath:       c.PDFPath,
		Activo:        c.Activo,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.Reserva != nil {
		resp.ReservaCodigo = c.Reserva.Codigo
	}
	if c.Empleado != nil && c.Empleado.Persona != nil {
		resp.Empleado = c.Empleado.Persona.NombreCompleto()
	}
	for _, d := range c.Distribuciones {
		dr := dto.DistribucionResponse{
			PasajeroID: d.PasajeroID.String(),
			Monto:      d.Monto,
		}
		if d.Pasajero != nil && d.Pasajero.Persona != nil {
			dr.Pasajero = d.Pasajero.Persona.NombreCompleto()
		}
		resp.Distribuciones = append(resp.Distribuciones, dr)
	}
	return resp
}
