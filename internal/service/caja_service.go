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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Conceptos válidos por tipo de movimiento. Registering an ingreso with an
// egreso concepto (or vice versa) is rejected.
var conceptosIngreso = map[string]bool{
	"venta_efectivo":         true,
	"venta_tarjeta":          true,
	"cobro_cuenta":           true,
	"deposito":               true,
	"transferencia_recibida": true,
	"ajuste_positivo":        true,
	"otro_ingreso":           true,
}

var conceptosEgreso = map[string]bool{
	"pago_proveedor":  true,
	"pago_servicio":   true,
	"gasto_operativo": true,
	"retiro_efectivo": true,
	"devolucion":      true,
	"ajuste_negativo": true,
	"otro_egreso":     true,
}

// umbralAutorizacionPct: closings whose |diferencia| exceeds this percentage
// of the theoretical cash balance need a supervisor authorization.
var umbralAutorizacionPct = decimal.NewFromInt(2)

type CajaService interface {
	CrearCaja(ctx context.Context, req dto.CrearCajaRequest) (*dto.CajaResponse, error)
	ObtenerCaja(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error)
	ListCajas(ctx context.Context, filter dto.CajaFilter) ([]dto.CajaResponse, int64, error)

	Abrir(ctx context.Context, empleadoID uuid.UUID, req dto.AbrirCajaRequest) (*dto.AperturaResponse, error)
	ObtenerApertura(ctx context.Context, id uuid.UUID) (*dto.AperturaResponse, error)
	ListAperturas(ctx context.Context, filter dto.AperturaFilter) ([]dto.AperturaResponse, int64, error)
	TengoCajaAbierta(ctx context.Context, empleadoID uuid.UUID) (*dto.TengoCajaAbiertaResponse, error)

	RegistrarMovimiento(ctx context.Context, empleadoID uuid.UUID, req dto.MovimientoManualRequest) (*dto.MovimientoResponse, error)
	ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]dto.MovimientoResponse, int64, error)

	// RegistrarPago posts the ledger entry for a comprobante inside the
	// caller's transaction. montoGs is the movement amount already expressed
	// in guaraníes; the register never holds foreign currency. Fails hard when
	// the employee has no open session.
	RegistrarPago(ctx context.Context, tx *gorm.DB, c *model.ComprobantePago, montoGs decimal.Decimal, empleadoID uuid.UUID) error
	// RevertirPago deactivates the movements of a voided comprobante and
	// recomputes the register balance.
	RevertirPago(ctx context.Context, tx *gorm.DB, comprobanteID uuid.UUID, empleadoID uuid.UUID) error

	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreResponse, error)
	AutorizarCierre(ctx context.Context, cierreID uuid.UUID, req dto.AutorizarCierreRequest) (*dto.CierreResponse, error)
	ObtenerCierre(ctx context.Context, id uuid.UUID) (*dto.CierreResponse, error)
	ListCierres(ctx context.Context, filter dto.PageFilter) ([]dto.CierreResponse, int64, error)
	// ObtenerCierrePDF renders the arqueo report on demand and returns the
	// file path and download name.
	ObtenerCierrePDF(ctx context.Context, id uuid.UUID) (string, string, error)

	ResumenGeneral(ctx context.Context) (*dto.ResumenGeneralResponse, error)
}

type cajaService struct {
	repo        repository.CajaRepository
	facturacion repository.FacturacionRepository
	personas    repository.PersonaRepository
	secuencias  repository.SecuenciaRepository
	storagePath string
}

func NewCajaService(
	repo repository.CajaRepository,
	facturacion repository.FacturacionRepository,
	personas repository.PersonaRepository,
	secuencias repository.SecuenciaRepository,
	storagePath string,
) CajaService {
	return &cajaService{
		repo:        repo,
		facturacion: facturacion,
		personas:    personas,
		secuencias:  secuencias,
		storagePath: storagePath,
	}
}

// ── Cajas ─────────────────────────────────────────────────────────────────────

func (s *cajaService) CrearCaja(ctx context.Context, req dto.CrearCajaRequest) (*dto.CajaResponse, error) {
	peID, err := uuid.Parse(req.PuntoExpedicionID)
	if err != nil {
		return nil, apierror.Validacion("punto_expedicion_id inválido")
	}
	pe, err := s.facturacion.FindPuntoExpedicionByID(ctx, peID)
	if err != nil {
		return nil, apierror.NoEncontrado("punto de expedición no encontrado")
	}
	if pe.Establecimiento == nil {
		return nil, apierror.EstadoInvalido("el punto de expedición no tiene establecimiento asociado")
	}

	caja := &model.Caja{
		Nombre:            req.Nombre,
		Numero:            fmt.Sprintf("%s-%s", pe.Establecimiento.Codigo, pe.Codigo),
		PuntoExpedicionID: peID,
		Estado:            "cerrada",
		SaldoActual:       decimal.Zero,
		Activo:            true,
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) ObtenerCaja(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("caja no encontrada")
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) ListCajas(ctx context.Context, filter dto.CajaFilter) ([]dto.CajaResponse, int64, error) {
	filter.Normalize()
	cajas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		items = append(items, *cajaToResponse(&cajas[i]))
	}
	return items, total, nil
}

// ── Apertura ──────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, empleadoID uuid.UUID, req dto.AbrirCajaRequest) (*dto.AperturaResponse, error) {
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, apierror.Validacion("caja_id inválido")
	}
	if req.MontoInicial.IsNegative() {
		return nil, apierror.Validacion("el monto inicial no puede ser negativo")
	}

	// One open session per employee at a time.
	if _, err := s.repo.FindAperturaAbiertaPorEmpleado(ctx, empleadoID); err == nil {
		return nil, apierror.Conflicto("el empleado ya tiene una caja abierta")
	}

	var apertura model.AperturaCaja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		caja, err := s.findCajaTx(ctx, tx, cajaID)
		if err != nil {
			return apierror.NoEncontrado("caja no encontrada")
		}
		if !caja.PuedeAbrir() {
			if !caja.Activo {
				return apierror.EstadoInvalido("la caja está inactiva")
			}
			return apierror.Conflicto("la caja ya está abierta")
		}

		codigo, err := nextCodigo(ctx, tx, s.secuencias, scopeApertura, time.Now())
		if err != nil {
			return err
		}

		apertura = model.AperturaCaja{
			Codigo:        codigo,
			CajaID:        caja.ID,
			ResponsableID: empleadoID,
			MontoInicial:  req.MontoInicial,
			EstaAbierta:   true,
			FechaApertura: time.Now(),
			Observaciones: req.Observaciones,
		}
		if err := s.repo.CreateApertura(ctx, tx, &apertura); err != nil {
			return err
		}

		caja.Estado = "abierta"
		caja.SaldoActual = req.MontoInicial
		return s.repo.Update(ctx, tx, caja)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.aperturaToResponse(ctx, &apertura, req.MontoInicial), nil
}

// findCajaTx prefers the row-locked read when a real transaction exists.
func (s *cajaService) findCajaTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	if tx == nil {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.FindByIDForUpdate(ctx, tx, id)
}

func (s *cajaService) ObtenerApertura(ctx context.Context, id uuid.UUID) (*dto.AperturaResponse, error) {
	apertura, err := s.repo.FindAperturaByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("apertura no encontrada")
	}
	saldo, err := s.saldoApertura(ctx, apertura)
	if err != nil {
		return nil, err
	}
	return s.aperturaToResponse(ctx, apertura, saldo), nil
}

func (s *cajaService) ListAperturas(ctx context.Context, filter dto.AperturaFilter) ([]dto.AperturaResponse, int64, error) {
	filter.Normalize()
	aperturas, total, err := s.repo.ListAperturas(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.AperturaResponse, 0, len(aperturas))
	for i := range aperturas {
		saldo, err := s.saldoApertura(ctx, &aperturas[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *s.aperturaToResponse(ctx, &aperturas[i], saldo))
	}
	return items, total, nil
}

func (s *cajaService) TengoCajaAbierta(ctx context.Context, empleadoID uuid.UUID) (*dto.TengoCajaAbiertaResponse, error) {
	apertura, err := s.repo.FindAperturaAbiertaPorEmpleado(ctx, empleadoID)
	if err != nil {
		return &dto.TengoCajaAbiertaResponse{TieneCajaAbierta: false}, nil
	}
	saldo, err := s.saldoApertura(ctx, apertura)
	if err != nil {
		return nil, err
	}
	return &dto.TengoCajaAbiertaResponse{
		TieneCajaAbierta: true,
		Apertura:         s.aperturaToResponse(ctx, apertura, saldo),
	}, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

func (s *cajaService) RegistrarMovimiento(ctx context.Context, empleadoID uuid.UUID, req dto.MovimientoManualRequest) (*dto.MovimientoResponse, error) {
	aperturaID, err := uuid.Parse(req.AperturaID)
	if err != nil {
		return nil, apierror.Validacion("apertura_id inválido")
	}
	if !req.Monto.IsPositive() {
		return nil, apierror.Validacion("el monto debe ser mayor a cero")
	}
	if err := validarConcepto(req.Tipo, req.Concepto); err != nil {
		return nil, err
	}

	apertura, err := s.repo.FindAperturaByID(ctx, aperturaID)
	if err != nil {
		return nil, apierror.NoEncontrado("apertura no encontrada")
	}
	if !apertura.EstaAbierta {
		return nil, apierror.EstadoInvalido("la apertura ya está cerrada")
	}

	var mov model.MovimientoCaja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		codigo, err := nextCodigo(ctx, tx, s.secuencias, scopeMovimiento, time.Now())
		if err != nil {
			return err
		}
		mov = model.MovimientoCaja{
			Codigo:            codigo,
			AperturaID:        aperturaID,
			Tipo:              req.Tipo,
			Concepto:          req.Concepto,
			MetodoPago:        req.MetodoPago,
			Monto:             req.Monto,
			Referencia:        req.Referencia,
			Descripcion:       req.Descripcion,
			UsuarioRegistroID: empleadoID,
			Activo:            true,
		}
		if err := s.repo.CreateMovimiento(ctx, tx, &mov); err != nil {
			return err
		}
		return s.recalcularSaldo(ctx, tx, apertura)
	})
	if txErr != nil {
		return nil, txErr
	}
	return movimientoToResponse(&mov), nil
}

func validarConcepto(tipo, concepto string) error {
	switch tipo {
	case "ingreso":
		if !conceptosIngreso[concepto] {
			return apierror.Validacion(fmt.Sprintf("concepto %q no es válido para ingresos", concepto))
		}
	case "egreso":
		if !conceptosEgreso[concepto] {
			return apierror.Validacion(fmt.Sprintf("concepto %q no es válido para egresos", concepto))
		}
	default:
		return apierror.Validacion("tipo de movimiento inválido")
	}
	return nil
}

func (s *cajaService) ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]dto.MovimientoResponse, int64, error) {
	filter.Normalize()
	movs, total, err := s.repo.ListMovimientosPaginado(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		items = append(items, *movimientoToResponse(&movs[i]))
	}
	return items, total, nil
}

// mapearConcepto derives the ledger tipo and concepto from a comprobante:
// devoluciones leave the drawer, everything else enters it keyed by method.
func mapearConcepto(c *model.ComprobantePago) (tipo, concepto string) {
	if c.EsDevolucion() {
		return "egreso", "devolucion"
	}
	switch c.MetodoPago {
	case "efectivo":
		return "ingreso", "venta_efectivo"
	case "transferencia":
		return "ingreso", "transferencia_recibida"
	case "tarjeta_debito", "tarjeta_credito":
		return "ingreso", "venta_tarjeta"
	case "cheque":
		return "ingreso", "cobro_cuenta"
	default: // qr, otro
		return "ingreso", "otro_ingreso"
	}
}

func (s *cajaService) RegistrarPago(ctx context.Context, tx *gorm.DB, c *model.ComprobantePago, montoGs decimal.Decimal, empleadoID uuid.UUID) error {
	apertura, err := s.repo.FindAperturaAbiertaPorEmpleado(ctx, empleadoID)
	if err != nil {
		return apierror.EstadoInvalido("el empleado no tiene una caja abierta; abra una caja antes de registrar pagos")
	}

	tipo, concepto := mapearConcepto(c)
	codigo, err := nextCodigo(ctx, tx, s.secuencias, scopeMovimiento, time.Now())
	if err != nil {
		return err
	}
	descripcion := fmt.Sprintf("Comprobante %s", c.Codigo)
	mov := model.MovimientoCaja{
		Codigo:            codigo,
		AperturaID:        apertura.ID,
		ComprobanteID:     &c.ID,
		Tipo:              tipo,
		Concepto:          concepto,
		MetodoPago:        c.MetodoPago,
		Monto:             montoGs,
		Referencia:        c.Referencia,
		Descripcion:       &descripcion,
		UsuarioRegistroID: empleadoID,
		Activo:            true,
	}
	if err := s.repo.CreateMovimiento(ctx, tx, &mov); err != nil {
		return err
	}
	return s.recalcularSaldo(ctx, tx, apertura)
}

func (s *cajaService) RevertirPago(ctx context.Context, tx *gorm.DB, comprobanteID uuid.UUID, empleadoID uuid.UUID) error {
	movs, err := s.repo.FindMovimientosPorComprobante(ctx, comprobanteID)
	if err != nil {
		return err
	}
	var apertura *model.AperturaCaja
	for i := range movs {
		if !movs[i].Activo {
			continue
		}
		movs[i].Activo = false
		if err := s.repo.UpdateMovimiento(ctx, tx, &movs[i]); err != nil {
			return err
		}
		if apertura == nil {
			apertura, err = s.repo.FindAperturaByID(ctx, movs[i].AperturaID)
			if err != nil {
				return err
			}
		}
	}
	if apertura != nil {
		return s.recalcularSaldo(ctx, tx, apertura)
	}
	return nil
}

// recalcularSaldo rebuilds the register balance from scratch:
// monto inicial + ingresos activos - egresos activos. Never incremental.
func (s *cajaService) recalcularSaldo(ctx context.Context, tx *gorm.DB, apertura *model.AperturaCaja) error {
	saldo, err := s.saldoApertura(ctx, apertura)
	if err != nil {
		return err
	}
	caja, err := s.findCajaTx(ctx, tx, apertura.CajaID)
	if err != nil {
		return err
	}
	caja.SaldoActual = saldo
	return s.repo.Update(ctx, tx, caja)
}

func (s *cajaService) saldoApertura(ctx context.Context, apertura *model.AperturaCaja) (decimal.Decimal, error) {
	movs, err := s.repo.ListMovimientos(ctx, apertura.ID)
	if err != nil {
		return decimal.Zero, err
	}
	saldo := apertura.MontoInicial
	for _, m := range movs {
		if !m.Activo {
			continue
		}
		if m.Tipo == "ingreso" {
			saldo = saldo.Add(m.Monto)
		} else {
			saldo = saldo.Sub(m.Monto)
		}
	}
	return saldo, nil
}

// ── Cierre ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreResponse, error) {
	aperturaID, err := uuid.Parse(req.AperturaID)
	if err != nil {
		return nil, apierror.Validacion("apertura_id inválido")
	}
	apertura, err := s.repo.FindAperturaByID(ctx, aperturaID)
	if err != nil {
		return nil, apierror.NoEncontrado("apertura no encontrada")
	}
	if !apertura.EstaAbierta {
		return nil, apierror.EstadoInvalido("la apertura ya está cerrada")
	}
	if _, err := s.repo.FindCierreByApertura(ctx, aperturaID); err == nil {
		return nil, apierror.Conflicto("la apertura ya tiene un cierre registrado")
	}

	movs, err := s.repo.ListMovimientos(ctx, aperturaID)
	if err != nil {
		return nil, err
	}

	totales := totalizarMovimientos(movs)

	saldoTeoricoEfectivo := apertura.MontoInicial.Add(totales.efectivo).Sub(totales.egresos)
	saldoTeoricoTotal := apertura.MontoInicial.
		Add(totales.efectivo).
		Add(totales.tarjetas).
		Add(totales.transferencias).
		Add(totales.cheques).
		Add(totales.otros).
		Sub(totales.egresos)

	diferencia := req.SaldoRealEfectivo.Sub(saldoTeoricoEfectivo)
	var diferenciaPct *decimal.Decimal
	requiereAutorizacion := false
	if !saldoTeoricoEfectivo.IsZero() {
		pct := diferencia.Div(saldoTeoricoEfectivo).Mul(decimal.NewFromInt(100)).Round(2)
		diferenciaPct = &pct
		requiereAutorizacion = pct.Abs().GreaterThan(umbralAutorizacionPct)
	}

	var cierre model.CierreCaja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		codigo, err := nextCodigo(ctx, tx, s.secuencias, scopeCierre, time.Now())
		if err != nil {
			return err
		}
		cierre = model.CierreCaja{
			Codigo:               codigo,
			AperturaID:           aperturaID,
			TotalVentasEfectivo:  totales.efectivo,
			TotalVentasTarjetas:  totales.tarjetas,
			TotalTransferencias:  totales.transferencias,
			TotalCheques:         totales.cheques,
			TotalOtros:           totales.otros,
			TotalEgresos:         totales.egresos,
			SaldoTeoricoEfectivo: saldoTeoricoEfectivo,
			SaldoTeoricoTotal:    saldoTeoricoTotal,
			SaldoRealEfectivo:    req.SaldoRealEfectivo,
			DetalleBilletes:      req.DetalleBilletes,
			Diferencia:           diferencia,
			DiferenciaPorcentaje: diferenciaPct,
			RequiereAutorizacion: requiereAutorizacion,
			Observaciones:        req.Observaciones,
			FechaCierre:          time.Now(),
		}
		if err := s.repo.CreateCierre(ctx, tx, &cierre); err != nil {
			return err
		}

		apertura.EstaAbierta = false
		if err := s.repo.UpdateApertura(ctx, tx, apertura); err != nil {
			return err
		}

		caja, err := s.findCajaTx(ctx, tx, apertura.CajaID)
		if err != nil {
			return err
		}
		caja.Estado = "cerrada"
		return s.repo.Update(ctx, tx, caja)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.cierreToResponse(ctx, &cierre), nil
}

type totalesCierre struct {
	efectivo, tarjetas, transferencias, cheques, otros, egresos decimal.Decimal
}

// totalizarMovimientos groups active income by payment method family and
// sums all active outflows.
func totalizarMovimientos(movs []model.MovimientoCaja) totalesCierre {
	t := totalesCierre{
		efectivo:       decimal.Zero,
		tarjetas:       decimal.Zero,
		transferencias: decimal.Zero,
		cheques:        decimal.Zero,
		otros:          decimal.Zero,
		egresos:        decimal.Zero,
	}
	for _, m := range movs {
		if !m.Activo {
			continue
		}
		if m.Tipo == "egreso" {
			t.egresos = t.egresos.Add(m.Monto)
			continue
		}
		switch m.MetodoPago {
		case "efectivo":
			t.efectivo = t.efectivo.Add(m.Monto)
		case "tarjeta_debito", "tarjeta_credito":
			t.tarjetas = t.tarjetas.Add(m.Monto)
		case "transferencia":
			t.transferencias = t.transferencias.Add(m.Monto)
		case "cheque":
			t.cheques = t.cheques.Add(m.Monto)
		default: // qr, otro
			t.otros = t.otros.Add(m.Monto)
		}
	}
	return t
}

func (s *cajaService) AutorizarCierre(ctx context.Context, cierreID uuid.UUID, req dto.AutorizarCierreRequest) (*dto.CierreResponse, error) {
	cierre, err := s.repo.FindCierreByID(ctx, cierreID)
	if err != nil {
		return nil, apierror.NoEncontrado("cierre no encontrado")
	}
	if !cierre.RequiereAutorizacion {
		return nil, apierror.EstadoInvalido("el cierre no requiere autorización")
	}
	if cierre.AutorizadoPorID != nil {
		return nil, apierror.Conflicto("el cierre ya fue autorizado")
	}
	autorizadoPor, err := uuid.Parse(req.AutorizadoPorID)
	if err != nil {
		return nil, apierror.Validacion("autorizado_por_id inválido")
	}
	if _, err := s.personas.FindEmpleadoByID(ctx, autorizadoPor); err != nil {
		return nil, apierror.NoEncontrado("empleado autorizante no encontrado")
	}

	ahora := time.Now()
	cierre.AutorizadoPorID = &autorizadoPor
	cierre.FechaAutorizacion = &ahora
	if err := s.repo.UpdateCierre(ctx, cierre); err != nil {
		return nil, err
	}
	return s.cierreToResponse(ctx, cierre), nil
}

func (s *cajaService) ObtenerCierre(ctx context.Context, id uuid.UUID) (*dto.CierreResponse, error) {
	cierre, err := s.repo.FindCierreByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("cierre no encontrado")
	}
	return s.cierreToResponse(ctx, cierre), nil
}

func (s *cajaService) ListCierres(ctx context.Context, filter dto.PageFilter) ([]dto.CierreResponse, int64, error) {
	filter.Normalize()
	cierres, total, err := s.repo.ListCierres(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		items = append(items, *s.cierreToResponse(ctx, &cierres[i]))
	}
	return items, total, nil
}

// ObtenerCierrePDF generates the report fresh on every download: the cierre
// is immutable but the autorización can llegar después.
func (s *cajaService) ObtenerCierrePDF(ctx context.Context, id uuid.UUID) (string, string, error) {
	cierre, err := s.repo.FindCierreByID(ctx, id)
	if err != nil {
		return "", "", apierror.NoEncontrado("cierre no encontrado")
	}
	if cierre.Apertura == nil {
		if apertura, err := s.repo.FindAperturaByID(ctx, cierre.AperturaID); err == nil {
			cierre.Apertura = apertura
		}
	}
	if cierre.AutorizadoPorID != nil && cierre.AutorizadoPor == nil {
		if emp, err := s.personas.FindEmpleadoByID(ctx, *cierre.AutorizadoPorID); err == nil {
			cierre.AutorizadoPor = emp
		}
	}
	path, err := infra.GenerarCierrePDF(cierre, s.storagePath)
	if err != nil {
		return "", "", err
	}
	return path, cierre.Codigo + ".pdf", nil
}

func (s *cajaService) ResumenGeneral(ctx context.Context) (*dto.ResumenGeneralResponse, error) {
	cajas, total, err := s.repo.List(ctx, dto.CajaFilter{PageFilter: dto.PageFilter{Page: 1, Limit: 100}})
	if err != nil {
		return nil, err
	}
	resumen := &dto.ResumenGeneralResponse{
		TotalCajas:        int(total),
		SaldoTotalAbierto: decimal.Zero,
	}
	for _, caja := range cajas {
		if caja.EstaAbierta() {
			resumen.CajasAbiertas++
			resumen.SaldoTotalAbierto = resumen.SaldoTotalAbierto.Add(caja.SaldoActual)
		} else {
			resumen.CajasCerradas++
		}
	}
	return resumen, nil
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	return &dto.CajaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Numero:      c.Numero,
		Estado:      c.Estado,
		SaldoActual: c.SaldoActual,
		Activo:      c.Activo,
		PuedeAbrir:  c.PuedeAbrir(),
	}
}

func (s *cajaService) aperturaToResponse(ctx context.Context, a *model.AperturaCaja, saldo decimal.Decimal) *dto.AperturaResponse {
	resp := &dto.AperturaResponse{
		ID:            a.ID.String(),
		Codigo:        a.Codigo,
		CajaID:        a.CajaID.String(),
		MontoInicial:  a.MontoInicial,
		SaldoActual:   saldo,
		EstaAbierta:   a.EstaAbierta,
		FechaApertura: a.FechaApertura.Format(time.RFC3339),
		Observaciones: a.Observaciones,
	}
	if a.Caja != nil {
		resp.CajaNombre = a.Caja.Nombre
	}
	if a.Responsable != nil && a.Responsable.Persona != nil {
		resp.Responsable = a.Responsable.Persona.NombreCompleto()
	} else if emp, err := s.personas.FindEmpleadoByID(ctx, a.ResponsableID); err == nil && emp.Persona != nil {
		resp.Responsable = emp.Persona.NombreCompleto()
	}
	return resp
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.MovimientoResponse {
	resp := &dto.MovimientoResponse{
		ID:          m.ID.String(),
		Codigo:      m.Codigo,
		AperturaID:  m.AperturaID.String(),
		Tipo:        m.Tipo,
		Concepto:    m.Concepto,
		MetodoPago:  m.MetodoPago,
		Monto:       m.Monto,
		Referencia:  m.Referencia,
		Descripcion: m.Descripcion,
		Activo:      m.Activo,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.Comprobante != nil {
		resp.Comprobante = &m.Comprobante.Codigo
	}
	return resp
}

func (s *cajaService) cierreToResponse(ctx context.Context, c *model.CierreCaja) *dto.CierreResponse {
	resp := &dto.CierreResponse{
		ID:                   c.ID.String(),
		Codigo:               c.Codigo,
		AperturaID:           c.AperturaID.String(),
		TotalVentasEfectivo:  c.TotalVentasEfectivo,
		TotalVentasTarjetas:  c.TotalVentasTarjetas,
		TotalTransferencias:  c.TotalTransferencias,
		TotalCheques:         c.TotalCheques,
		TotalOtros:           c.TotalOtros,
		TotalEgresos:         c.TotalEgresos,
		SaldoTeoricoEfectivo: c.SaldoTeoricoEfectivo,
		SaldoTeoricoTotal:    c.SaldoTeoricoTotal,
		SaldoRealEfectivo:    c.SaldoRealEfectivo,
		DetalleBilletes:      c.DetalleBilletes,
		Diferencia:           c.Diferencia,
		DiferenciaPorcentaje: c.DiferenciaPorcentaje,
		RequiereAutorizacion: c.RequiereAutorizacion,
		Observaciones:        c.Observaciones,
		FechaCierre:          c.FechaCierre.Format(time.RFC3339),
	}
	if c.FechaAutorizacion != nil {
		t := c.FechaAutorizacion.Format(time.RFC3339)
		resp.FechaAutorizacion = &t
	}
	if c.AutorizadoPorID != nil {
		if emp, err := s.personas.FindEmpleadoByID(ctx, *c.AutorizadoPorID); err == nil && emp.Persona != nil {
			nombre := emp.Persona.NombreCompleto()
			resp.AutorizadoPor = &nombre
		}
	}
	return resp
}
