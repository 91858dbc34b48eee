package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// diasVentanaReembolso: refunds apply only when the cancellation happens
// strictly more than this many days before the departure. The deposit is
// never refunded.
const diasVentanaReembolso = 20

type ReservaService interface {
	Crear(ctx context.Context, req dto.CrearReservaRequest) (*dto.ReservaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error)
	List(ctx context.Context, filter dto.ReservaFilter) ([]dto.ReservaResponse, int64, error)

	AgregarPasajero(ctx context.Context, reservaID uuid.UUID, req dto.AgregarPasajeroRequest) (*dto.PasajeroResponse, error)
	AsignarPasajero(ctx context.Context, pasajeroID uuid.UUID, req dto.ActualizarPasajeroRequest) (*dto.PasajeroResponse, error)

	Cancelar(ctx context.Context, id uuid.UUID, req dto.CancelarReservaRequest) (*dto.MontosCancelacionResponse, error)
	MontosCancelacion(ctx context.Context, id uuid.UUID) (*dto.MontosCancelacionResponse, error)

	// RecalcularPagos refreshes per-passenger and booking paid amounts from
	// active comprobantes and credit notes, then moves the estado forward or
	// backward to match the payment facts. Runs inside the caller's
	// transaction when one exists.
	RecalcularPagos(ctx context.Context, tx *gorm.DB, reservaID uuid.UUID) error
}

type reservaService struct {
	repo         repository.ReservaRepository
	paquetes     repository.PaqueteRepository
	personas     repository.PersonaRepository
	comprobantes repository.ComprobanteRepository
	facturacion  repository.FacturacionRepository
	vouchers     VoucherService
	secuencias   repository.SecuenciaRepository
}

func NewReservaService(
	repo repository.ReservaRepository,
	paquetes repository.PaqueteRepository,
	personas repository.PersonaRepository,
	comprobantes repository.ComprobanteRepository,
	facturacion repository.FacturacionRepository,
	vouchers VoucherService,
	secuencias repository.SecuenciaRepository,
) ReservaService {
	return &reservaService{
		repo:         repo,
		paquetes:     paquetes,
		personas:     personas,
		comprobantes: comprobantes,
		facturacion:  facturacion,
		vouchers:     vouchers,
		secuencias:   secuencias,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *reservaService) Crear(ctx context.Context, req dto.CrearReservaRequest) (*dto.ReservaResponse, error) {
	if req.ModalidadFacturacion == "individual" && req.CondicionPago == "credito" {
		return nil, apierror.Validacion("la facturación individual no admite condición de pago a crédito")
	}

	titularID, err := uuid.Parse(req.TitularID)
	if err != nil {
		return nil, apierror.Validacion("titular_id inválido")
	}
	paqueteID, err := uuid.Parse(req.PaqueteID)
	if err != nil {
		return nil, apierror.Validacion("paquete_id inválido")
	}
	salidaID, err := uuid.Parse(req.SalidaID)
	if err != nil {
		return nil, apierror.Validacion("salida_id inválido")
	}

	titular, err := s.personas.FindByID(ctx, titularID)
	if err != nil {
		return nil, apierror.NoEncontrado("titular no encontrado")
	}
	paquete, err := s.paquetes.FindByID(ctx, paqueteID)
	if err != nil {
		return nil, apierror.NoEncontrado("paquete no encontrado")
	}

	var habitacionID *uuid.UUID
	if req.HabitacionID != nil {
		hid, err := uuid.Parse(*req.HabitacionID)
		if err != nil {
			return nil, apierror.Validacion("habitacion_id inválido")
		}
		if _, err := s.paquetes.FindHabitacionByID(ctx, hid); err != nil {
			return nil, apierror.NoEncontrado("habitación no encontrada")
		}
		habitacionID = &hid
	}

	var reserva model.Reserva
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		salida, err := s.findSalidaTx(ctx, tx, salidaID)
		if err != nil {
			return apierror.NoEncontrado("salida no encontrada")
		}
		if !salida.Activo {
			return apierror.EstadoInvalido("la salida está inactiva")
		}
		if paquete.Propio && salida.CupoDisponible < req.CantidadPasajeros {
			return apierror.Conflicto(fmt.Sprintf("cupo insuficiente: quedan %d lugares", salida.CupoDisponible))
		}

		precio := salida.PrecioActual
		if req.PrecioUnitario != nil {
			precio = *req.PrecioUnitario
		}

		codigo, err := nextCodigo(ctx, tx, s.secuencias, scopeReserva, time.Now())
		if err != nil {
			return err
		}

		reserva = model.Reserva{
			Codigo:               codigo,
			Estado:               "pendiente",
			ModalidadFacturacion: req.ModalidadFacturacion,
			CondicionPago:        req.CondicionPago,
			TitularID:            titularID,
			PaqueteID:            paqueteID,
			SalidaID:             salidaID,
			HabitacionID:         habitacionID,
			CantidadPasajeros:    req.CantidadPasajeros,
			PrecioUnitario:       precio,
			SeniaUnitaria:        salida.Senia,
			MontoPagado:          decimal.Zero,
			// Con un solo pasajero y titular identificado la nómina ya
			// está completa al crear.
			DatosCompletos: req.CantidadPasajeros == 1 && !titular.DocumentoPendiente(),
		}
		if err := s.repo.Create(ctx, tx, &reserva); err != nil {
			return err
		}

		// El titular viaja: es el primer pasajero de la reserva.
		pasajero := model.Pasajero{
			ReservaID:      reserva.ID,
			PersonaID:      titularID,
			EsTitular:      true,
			PorAsignar:     titular.DocumentoPendiente(),
			PrecioAsignado: precio,
			MontoPagado:    decimal.Zero,
		}
		if err := s.repo.CreatePasajero(ctx, tx, &pasajero); err != nil {
			return err
		}

		if paquete.Propio {
			salida.CupoDisponible -= req.CantidadPasajeros
			if err := s.paquetes.UpdateSalida(ctx, tx, salida); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Obtener(ctx, reserva.ID)
}

func (s *reservaService) findSalidaTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Salida, error) {
	if tx == nil {
		return s.paquetes.FindSalidaByID(ctx, id)
	}
	return s.paquetes.FindSalidaForUpdate(ctx, tx, id)
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *reservaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error) {
	reserva, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("reserva no encontrada")
	}
	return s.reservaToResponse(reserva, true), nil
}

func (s *reservaService) List(ctx context.Context, filter dto.ReservaFilter) ([]dto.ReservaResponse, int64, error) {
	filter.Normalize()
	reservas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ReservaResponse, 0, len(reservas))
	for i := range reservas {
		items = append(items, *s.reservaToResponse(&reservas[i], false))
	}
	return items, total, nil
}

// ── Pasajeros ─────────────────────────────────────────────────────────────────

func (s *reservaService) AgregarPasajero(ctx context.Context, reservaID uuid.UUID, req dto.AgregarPasajeroRequest) (*dto.PasajeroResponse, error) {
	reserva, err := s.repo.FindByID(ctx, reservaID)
	if err != nil {
		return nil, apierror.NoEncontrado("reserva no encontrada")
	}
	if reserva.EstaCancelada() {
		return nil, apierror.EstadoInvalido("la reserva está cancelada")
	}
	if len(reserva.Pasajeros) >= reserva.CantidadPasajeros {
		return nil, apierror.Conflicto("la reserva ya tiene todos sus pasajeros")
	}

	var pasajero model.Pasajero
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		persona, err := s.resolverPersona(ctx, tx, reserva, req)
		if err != nil {
			return err
		}
		pasajero = model.Pasajero{
			ReservaID:      reserva.ID,
			PersonaID:      persona.ID,
			EsTitular:      req.EsTitular,
			PorAsignar:     persona.DocumentoPendiente(),
			PrecioAsignado: reserva.PrecioUnitario,
			MontoPagado:    decimal.Zero,
		}
		if err := s.repo.CreatePasajero(ctx, tx, &pasajero); err != nil {
			return err
		}
		pasajero.Persona = persona
		return s.refrescarDatosCompletos(ctx, tx, reserva.ID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return pasajeroToResponse(&pasajero, reserva.SeniaUnitaria), nil
}

// resolverPersona finds the referenced persona or creates one; when no
// identity data arrives, it mints a "_PEND" placeholder.
func (s *reservaService) resolverPersona(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, req dto.AgregarPasajeroRequest) (*model.Persona, error) {
	if req.PersonaID != nil {
		pid, err := uuid.Parse(*req.PersonaID)
		if err != nil {
			return nil, apierror.Validacion("persona_id inválido")
		}
		persona, err := s.personas.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NoEncontrado("persona no encontrada")
		}
		return persona, nil
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = "fisica"
	}
	persona := &model.Persona{Tipo: tipo, Activo: true}
	if req.NumeroDocumento != nil && *req.NumeroDocumento != "" && req.Nombre != nil {
		persona.NumeroDocumento = *req.NumeroDocumento
		persona.Nombre = *req.Nombre
		persona.Apellido = req.Apellido
	} else {
		// Placeholder hasta que lleguen los datos reales del pasajero.
		persona.NumeroDocumento = fmt.Sprintf("%s-%s%s", reserva.Codigo, uuid.NewString()[:8], model.DocumentoPendienteSufijo)
		persona.Nombre = "Pasajero por asignar"
	}
	if err := s.crearPersonaTx(ctx, tx, persona); err != nil {
		return nil, err
	}
	return persona, nil
}

func (s *reservaService) crearPersonaTx(ctx context.Context, tx *gorm.DB, p *model.Persona) error {
	if tx == nil {
		return s.personas.Create(ctx, s.personas.DB(), p)
	}
	return s.personas.Create(ctx, tx, p)
}

func (s *reservaService) AsignarPasajero(ctx context.Context, pasajeroID uuid.UUID, req dto.ActualizarPasajeroRequest) (*dto.PasajeroResponse, error) {
	pasajero, err := s.repo.FindPasajeroByID(ctx, pasajeroID)
	if err != nil {
		return nil, apierror.NoEncontrado("pasajero no encontrado")
	}
	personaID, err := uuid.Parse(req.PersonaID)
	if err != nil {
		return nil, apierror.Validacion("persona_id inválido")
	}
	persona, err := s.personas.FindByID(ctx, personaID)
	if err != nil {
		return nil, apierror.NoEncontrado("persona no encontrada")
	}
	if persona.DocumentoPendiente() {
		return nil, apierror.Validacion("no puede asignarse una persona con documento pendiente")
	}

	reserva, err := s.repo.FindByID(ctx, pasajero.ReservaID)
	if err != nil {
		return nil, apierror.NoEncontrado("reserva no encontrada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pasajero.PersonaID = persona.ID
		pasajero.PorAsignar = false
		if req.PrecioAsignado != nil {
			pasajero.PrecioAsignado = *req.PrecioAsignado
		}
		if err := s.repo.UpdatePasajero(ctx, tx, pasajero); err != nil {
			return err
		}
		if err := s.refrescarDatosCompletos(ctx, tx, reserva.ID); err != nil {
			return err
		}
		// Con datos reales el pasajero puede haber quedado habilitado para
		// su voucher.
		if s.vouchers != nil && pasajero.EstaTotalmentePagado() {
			pasajero.Persona = persona
			if err := s.vouchers.EmitirParaPasajero(ctx, tx, reserva, pasajero); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	pasajero.Persona = persona
	return pasajeroToResponse(pasajero, reserva.SeniaUnitaria), nil
}

func (s *reservaService) refrescarDatosCompletos(ctx context.Context, tx *gorm.DB, reservaID uuid.UUID) error {
	reserva, err := s.repo.FindByID(ctx, reservaID)
	if err != nil {
		return err
	}
	pasajeros, err := s.repo.ListPasajeros(ctx, reservaID)
	if err != nil {
		return err
	}
	completos := len(pasajeros) == reserva.CantidadPasajeros
	for _, p := range pasajeros {
		if p.PorAsignar {
			completos = false
			break
		}
	}
	if completos != reserva.DatosCompletos {
		reserva.DatosCompletos = completos
		return s.repo.Update(ctx, tx, reserva)
	}
	return nil
}

// ── Cancelación ───────────────────────────────────────────────────────────────

func (s *reservaService) Cancelar(ctx context.Context, id uuid.UUID, req dto.CancelarReservaRequest) (*dto.MontosCancelacionResponse, error) {
	reserva, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("reserva no encontrada")
	}
	if reserva.EstaCancelada() {
		return nil, apierror.EstadoInvalido("la reserva ya está cancelada")
	}

	montos, err := s.calcularMontos(ctx, reserva)
	if err != nil {
		return nil, err
	}

	motivo := "8"
	if req.MotivoID != nil {
		motivo = *req.MotivoID
	}
	ahora := time.Now()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reserva.Estado = "cancelada"
		reserva.MotivoCancelacion = &motivo
		reserva.ObservacionCancelacion = req.Observacion
		reserva.FechaCancelacion = &ahora

		paquete, err := s.paquetes.FindByID(ctx, reserva.PaqueteID)
		if err != nil {
			return err
		}
		if paquete.Propio && !reserva.CuposLiberados {
			salida, err := s.findSalidaTx(ctx, tx, reserva.SalidaID)
			if err != nil {
				return err
			}
			salida.CupoDisponible += reserva.CantidadPasajeros
			if salida.CupoDisponible > salida.CupoTotal {
				salida.CupoDisponible = salida.CupoTotal
			}
			if err := s.paquetes.UpdateSalida(ctx, tx, salida); err != nil {
				return err
			}
			reserva.CuposLiberados = true
		}
		return s.repo.Update(ctx, tx, reserva)
	})
	if txErr != nil {
		return nil, txErr
	}
	return montos, nil
}

func (s *reservaService) MontosCancelacion(ctx context.Context, id uuid.UUID) (*dto.MontosCancelacionResponse, error) {
	reserva, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("reserva no encontrada")
	}
	return s.calcularMontos(ctx, reserva)
}

func (s *reservaService) calcularMontos(ctx context.Context, reserva *model.Reserva) (*dto.MontosCancelacionResponse, error) {
	comprobantes, err := s.comprobantes.ListByReserva(ctx, reserva.ID)
	if err != nil {
		return nil, err
	}

	pagado := decimal.Zero
	devoluciones := decimal.Zero
	for _, c := range comprobantes {
		if !c.Activo {
			continue
		}
		if c.EsDevolucion() {
			devoluciones = devoluciones.Add(c.Monto)
		} else {
			pagado = pagado.Add(c.Monto)
		}
	}

	seniaTotal := reserva.SeniaTotal()
	seniaPagada := decimal.Min(pagado, seniaTotal)
	adicionales := pagado.Sub(seniaPagada)

	dias := 0
	if salida, err := s.paquetes.FindSalidaByID(ctx, reserva.SalidaID); err == nil {
		dias = salida.DiasHastaSalida(time.Now())
	}

	// Solo los pagos adicionales se reembolsan, y solo fuera de la ventana;
	// la seña queda retenida siempre.
	reembolsable := decimal.Zero
	reembolsoHabilitado := dias > diasVentanaReembolso
	if reembolsoHabilitado {
		reembolsable = adicionales.Sub(devoluciones)
		if reembolsable.IsNegative() {
			reembolsable = decimal.Zero
		}
	}

	return &dto.MontosCancelacionResponse{
		SeniaPagada:         seniaPagada,
		PagosAdicionales:    adicionales,
		Devoluciones:        devoluciones,
		MontoReembolsable:   reembolsable,
		ReembolsoHabilitado: reembolsoHabilitado,
		DiasHastaSalida:     dias,
	}, nil
}

// ── Recalcular pagos y estado ─────────────────────────────────────────────────

func (s *reservaService) RecalcularPagos(ctx context.Context, tx *gorm.DB, reservaID uuid.UUID) error {
	reserva, err := s.repo.FindByID(ctx, reservaID)
	if err != nil {
		return err
	}
	if reserva.EstaCancelada() {
		return nil
	}

	comprobantes, err := s.comprobantes.ListByReserva(ctx, reservaID)
	if err != nil {
		return err
	}
	pasajeros, err := s.repo.ListPasajeros(ctx, reservaID)
	if err != nil {
		return err
	}

	// Por pasajero: distribuciones de comprobantes activos; las devoluciones
	// restan.
	porPasajero := make(map[uuid.UUID]decimal.Decimal, len(pasajeros))
	totalPagado := decimal.Zero
	for _, c := range comprobantes {
		if !c.Activo {
			continue
		}
		signo := decimal.NewFromInt(1)
		if c.EsDevolucion() {
			signo = decimal.NewFromInt(-1)
		}
		totalPagado = totalPagado.Add(c.Monto.Mul(signo))
		for _, d := range c.Distribuciones {
			porPasajero[d.PasajeroID] = porPasajero[d.PasajeroID].Add(d.Monto.Mul(signo))
		}
	}

	// Notas de crédito sin devolución asociada también restan del total.
	notas, err := s.facturacion.ListNotasCreditoPorReserva(ctx, reservaID)
	if err == nil {
		for _, nc := range notas {
			if nc.DevolucionComprobanteID == nil {
				totalPagado = totalPagado.Sub(nc.TotalGeneral)
			}
		}
	}
	if totalPagado.IsNegative() {
		totalPagado = decimal.Zero
	}

	for i := range pasajeros {
		pagado := porPasajero[pasajeros[i].ID]
		if pagado.IsNegative() {
			pagado = decimal.Zero
		}
		if !pagado.Equal(pasajeros[i].MontoPagado) {
			pasajeros[i].MontoPagado = pagado
			if err := s.repo.UpdatePasajero(ctx, tx, &pasajeros[i]); err != nil {
				return err
			}
		}
	}

	reserva.MontoPagado = totalPagado
	reserva.Estado = derivarEstado(reserva, pasajeros)
	if err := s.repo.Update(ctx, tx, reserva); err != nil {
		return err
	}

	// Pasajeros con datos reales y pago completo reciben su voucher.
	if s.vouchers != nil {
		for i := range pasajeros {
			if pasajeros[i].PorAsignar || !pasajeros[i].EstaTotalmentePagado() {
				continue
			}
			if err := s.vouchers.EmitirParaPasajero(ctx, tx, reserva, &pasajeros[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// derivarEstado applies the payment-driven state machine. It moves in both
// directions: a credit note can demote finalizada to confirmada or
// confirmada to pendiente. Cancelada never changes here.
func derivarEstado(reserva *model.Reserva, pasajeros []model.Pasajero) string {
	if reserva.EstaCancelada() {
		return reserva.Estado
	}

	reales := make([]model.Pasajero, 0, len(pasajeros))
	for _, p := range pasajeros {
		if !p.PorAsignar {
			reales = append(reales, p)
		}
	}

	var pagadaCompleta, confirmable bool
	if len(reales) > 0 {
		pagadaCompleta = len(reales) == reserva.CantidadPasajeros
		confirmable = true
		for _, p := range reales {
			if !p.EstaTotalmentePagado() {
				pagadaCompleta = false
			}
			if !p.TieneSeniaPagada(reserva.SeniaUnitaria) {
				confirmable = false
			}
		}
	} else {
		pagadaCompleta = reserva.MontoPagado.GreaterThanOrEqual(reserva.PrecioTotal())
		confirmable = reserva.MontoPagado.GreaterThanOrEqual(reserva.SeniaTotal())
	}

	switch {
	case pagadaCompleta:
		return "finalizada"
	case confirmable:
		return "confirmada"
	default:
		return "pendiente"
	}
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func pasajeroToResponse(p *model.Pasajero, senia decimal.Decimal) *dto.PasajeroResponse {
	resp := &dto.PasajeroResponse{
		ID:                   p.ID.String(),
		EsTitular:            p.EsTitular,
		PorAsignar:           p.PorAsignar,
		PrecioAsignado:       p.PrecioAsignado,
		MontoPagado:          p.MontoPagado,
		SaldoPendiente:       p.SaldoPendiente(),
		PorcentajePagado:     p.PorcentajePagado(),
		TieneSeniaPagada:     p.TieneSeniaPagada(senia),
		EstaTotalmentePagado: p.EstaTotalmentePagado(),
	}
	if p.Persona != nil {
		resp.Persona = p.Persona.NombreCompleto()
		resp.NumeroDocumento = p.Persona.NumeroDocumento
	}
	return resp
}

func (s *reservaService) reservaToResponse(r *model.Reserva, conPasajeros bool) *dto.ReservaResponse {
	saldo := r.PrecioTotal().Sub(r.MontoPagado)
	if saldo.IsNegative() {
		saldo = decimal.Zero
	}
	resp := &dto.ReservaResponse{
		ID:                   r.ID.String(),
		Codigo:               r.Codigo,
		Estado:               r.Estado,
		ModalidadFacturacion: r.ModalidadFacturacion,
		CondicionPago:        r.CondicionPago,
		CantidadPasajeros:    r.CantidadPasajeros,
		PrecioUnitario:       r.PrecioUnitario,
		PrecioTotal:          r.PrecioTotal(),
		SeniaTotal:           r.SeniaTotal(),
		MontoPagado:          r.MontoPagado,
		SaldoPendiente:       saldo,
		DatosCompletos:       r.DatosCompletos,
		PuedeConfirmarse:     derivarEstado(r, r.Pasajeros) != "pendiente",
		EstaTotalmentePagada: derivarEstado(r, r.Pasajeros) == "finalizada",
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
	if r.Titular != nil {
		resp.Titular = r.Titular.NombreCompleto()
	}
	if r.Paquete != nil {
		resp.Paquete = r.Paquete.Nombre
		resp.Destino = r.Paquete.Destino
	}
	if r.Salida != nil {
		resp.FechaSalida = r.Salida.FechaSalida.Format("2006-01-02")
	}
	if conPasajeros {
		for i := range r.Pasajeros {
			resp.Pasajeros = append(resp.Pasajeros, *pasajeroToResponse(&r.Pasajeros[i], r.SeniaUnitaria))
		}
	}
	return resp
}
