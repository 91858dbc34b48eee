package service

import (
	"context"
	"errors"
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

// IVA incluido en el precio: 10% -> total/11, 5% -> total/21.
var (
	divisorIVA10 = decimal.NewFromInt(11)
	divisorIVA5  = decimal.NewFromInt(21)
)

type FacturacionService interface {
	GuardarEmpresa(ctx context.Context, req dto.EmpresaRequest) (*dto.EmpresaResponse, error)
	ObtenerEmpresa(ctx context.Context) (*dto.EmpresaResponse, error)

	CrearEstablecimiento(ctx context.Context, req dto.EstablecimientoRequest) (*dto.EstablecimientoResponse, error)
	ListEstablecimientos(ctx context.Context) ([]dto.EstablecimientoResponse, error)
	CrearPuntoExpedicion(ctx context.Context, req dto.PuntoExpedicionRequest) (*dto.PuntoExpedicionResponse, error)
	ListPuntosExpedicion(ctx context.Context, establecimientoID uuid.UUID) ([]dto.PuntoExpedicionResponse, error)
	CrearTimbrado(ctx context.Context, req dto.TimbradoRequest) (*dto.TimbradoResponse, error)
	ListTimbrados(ctx context.Context) ([]dto.TimbradoResponse, error)
	ListTiposImpuesto(ctx context.Context) ([]dto.TipoImpuestoResponse, error)

	GuardarConfiguracion(ctx context.Context, req dto.ConfiguracionFacturaRequest) (*dto.ConfiguracionFacturaResponse, error)
	ObtenerConfiguracion(ctx context.Context) (*dto.ConfiguracionFacturaResponse, error)

	EmitirFactura(ctx context.Context, req dto.EmitirFacturaRequest) (*dto.FacturaResponse, error)
	ObtenerFactura(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	ListFacturas(ctx context.Context, filter dto.FacturaFilter) ([]dto.FacturaResponse, int64, error)
	// ObtenerKude returns the KuDE file, generating it on the spot when the
	// worker hasn't produced it yet.
	ObtenerKude(ctx context.Context, id uuid.UUID) (string, string, error)

	EmitirNotaCredito(ctx context.Context, req dto.NotaCreditoRequest) (*dto.NotaCreditoResponse, error)
}

type facturacionService struct {
	repo        repository.FacturacionRepository
	personas    repository.PersonaRepository
	reservas    ReservaService
	secuencias  repository.SecuenciaRepository
	dispatcher  JobDispatcher
	storagePath string
}

func NewFacturacionService(
	repo repository.FacturacionRepository,
	personas repository.PersonaRepository,
	reservas ReservaService,
	secuencias repository.SecuenciaRepository,
	dispatcher JobDispatcher,
	storagePath string,
) FacturacionService {
	return &facturacionService{
		repo:        repo,
		personas:    personas,
		reservas:    reservas,
		secuencias:  secuencias,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

// ── Empresa ───────────────────────────────────────────────────────────────────

func (s *facturacionService) GuardarEmpresa(ctx context.Context, req dto.EmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := s.repo.FindEmpresa(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		empresa = &model.Empresa{Singleton: true}
	}
	empresa.RazonSocial = req.RazonSocial
	empresa.RUC = req.RUC
	empresa.Direccion = req.Direccion
	empresa.Telefono = req.Telefono
	empresa.Email = req.Email
	empresa.ActividadEconomica = req.ActividadEconomica
	if err := s.repo.SaveEmpresa(ctx, empresa); err != nil {
		return nil, err
	}
	return empresaToResponse(empresa), nil
}

func (s *facturacionService) ObtenerEmpresa(ctx context.Context) (*dto.EmpresaResponse, error) {
	empresa, err := s.repo.FindEmpresa(ctx)
	if err != nil {
		return nil, apierror.NoEncontrado("empresa no configurada")
	}
	return empresaToResponse(empresa), nil
}

// ── Establecimientos, puntos y timbrados ──────────────────────────────────────

func (s *facturacionService) CrearEstablecimiento(ctx context.Context, req dto.EstablecimientoRequest) (*dto.EstablecimientoResponse, error) {
	empresa, err := s.repo.FindEmpresa(ctx)
	if err != nil {
		return nil, apierror.EstadoInvalido("debe configurarse la empresa antes de crear establecimientos")
	}
	establecimiento := model.Establecimiento{
		EmpresaID: empresa.ID,
		Codigo:    req.Codigo,
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.CreateEstablecimiento(ctx, &establecimiento); err != nil {
		return nil, apierror.Conflicto("ya existe un establecimiento con ese código")
	}
	return establecimientoToResponse(&establecimiento), nil
}

func (s *facturacionService) ListEstablecimientos(ctx context.Context) ([]dto.EstablecimientoResponse, error) {
	establecimientos, err := s.repo.ListEstablecimientos(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EstablecimientoResponse, 0, len(establecimientos))
	for i := range establecimientos {
		items = append(items, *establecimientoToResponse(&establecimientos[i]))
	}
	return items, nil
}

func (s *facturacionService) CrearPuntoExpedicion(ctx context.Context, req dto.PuntoExpedicionRequest) (*dto.PuntoExpedicionResponse, error) {
	establecimientoID, err := uuid.Parse(req.EstablecimientoID)
	if err != nil {
		return nil, apierror.Validacion("establecimiento_id inválido")
	}
	if _, err := s.repo.FindEstablecimientoByID(ctx, establecimientoID); err != nil {
		return nil, apierror.NoEncontrado("establecimiento no encontrado")
	}
	punto := model.PuntoExpedicion{
		EstablecimientoID: establecimientoID,
		Codigo:            req.Codigo,
		Descripcion:       req.Descripcion,
		Activo:            true,
	}
	if err := s.repo.CreatePuntoExpedicion(ctx, &punto); err != nil {
		return nil, apierror.Conflicto("ya existe un punto de expedición con ese código")
	}
	return puntoToResponse(&punto), nil
}

func (s *facturacionService) ListPuntosExpedicion(ctx context.Context, establecimientoID uuid.UUID) ([]dto.PuntoExpedicionResponse, error) {
	puntos, err := s.repo.ListPuntosExpedicion(ctx, establecimientoID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PuntoExpedicionResponse, 0, len(puntos))
	for i := range puntos {
		items = append(items, *puntoToResponse(&puntos[i]))
	}
	return items, nil
}

func (s *facturacionService) CrearTimbrado(ctx context.Context, req dto.TimbradoRequest) (*dto.TimbradoResponse, error) {
	inicio, err := time.Parse("2006-01-02", req.FechaInicio)
	if err != nil {
		return nil, apierror.Validacion("fecha_inicio inválida")
	}
	fin, err := time.Parse("2006-01-02", req.FechaFin)
	if err != nil {
		return nil, apierror.Validacion("fecha_fin inválida")
	}
	if fin.Before(inicio) {
		return nil, apierror.Validacion("fecha_fin anterior a fecha_inicio")
	}
	timbrado := model.Timbrado{
		Numero:      req.Numero,
		FechaInicio: inicio,
		FechaFin:    fin,
		Activo:      true,
	}
	if err := s.repo.CreateTimbrado(ctx, &timbrado); err != nil {
		return nil, apierror.Conflicto("ya existe un timbrado con ese número")
	}
	return timbradoToResponse(&timbrado), nil
}

func (s *facturacionService) ListTimbrados(ctx context.Context) ([]dto.TimbradoResponse, error) {
	timbrados, err := s.repo.ListTimbrados(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TimbradoResponse, 0, len(timbrados))
	for i := range timbrados {
		items = append(items, *timbradoToResponse(&timbrados[i]))
	}
	return items, nil
}

// ListTiposImpuesto expone el catálogo de impuestos con sus subtipos, para
// armar los detalles de factura desde el frontend.
func (s *facturacionService) ListTiposImpuesto(ctx context.Context) ([]dto.TipoImpuestoResponse, error) {
	tipos, err := s.repo.ListTiposImpuesto(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TipoImpuestoResponse, 0, len(tipos))
	for _, t := range tipos {
		resp := dto.TipoImpuestoResponse{
			ID:          t.ID.String(),
			Nombre:      t.Nombre,
			Descripcion: t.Descripcion,
		}
		for _, st := range t.Subtipos {
			resp.Subtipos = append(resp.Subtipos, dto.SubtipoImpuestoResponse{
				ID:         st.ID.String(),
				Nombre:     st.Nombre,
				Porcentaje: st.Porcentaje,
			})
		}
		items = append(items, resp)
	}
	return items, nil
}

// ── Configuración de emisión ──────────────────────────────────────────────────

func (s *facturacionService) GuardarConfiguracion(ctx context.Context, req dto.ConfiguracionFacturaRequest) (*dto.ConfiguracionFacturaResponse, error) {
	if req.Empresa != nil {
		if _, err := s.GuardarEmpresa(ctx, *req.Empresa); err != nil {
			return nil, err
		}
	}
	empresa, err := s.repo.FindEmpresa(ctx)
	if err != nil {
		return nil, apierror.EstadoInvalido("debe configurarse la empresa antes de la facturación")
	}

	establecimientoID, err := uuid.Parse(req.EstablecimientoID)
	if err != nil {
		return nil, apierror.Validacion("establecimiento_id inválido")
	}
	puntoID, err := uuid.Parse(req.PuntoExpedicionID)
	if err != nil {
		return nil, apierror.Validacion("punto_expedicion_id inválido")
	}
	timbradoID, err := uuid.Parse(req.TimbradoID)
	if err != nil {
		return nil, apierror.Validacion("timbrado_id inválido")
	}

	if _, err := s.repo.FindEstablecimientoByID(ctx, establecimientoID); err != nil {
		return nil, apierror.NoEncontrado("establecimiento no encontrado")
	}
	punto, err := s.repo.FindPuntoExpedicionByID(ctx, puntoID)
	if err != nil {
		return nil, apierror.NoEncontrado("punto de expedición no encontrado")
	}
	if punto.EstablecimientoID != establecimientoID {
		return nil, apierror.Validacion("el punto de expedición no pertenece al establecimiento")
	}

	timbrados, err := s.repo.ListTimbrados(ctx)
	if err != nil {
		return nil, err
	}
	var timbrado *model.Timbrado
	for i := range timbrados {
		if timbrados[i].ID == timbradoID {
			timbrado = &timbrados[i]
			break
		}
	}
	if timbrado == nil {
		return nil, apierror.NoEncontrado("timbrado no encontrado")
	}
	if !timbrado.Vigente(time.Now()) {
		return nil, apierror.EstadoInvalido("el timbrado no está vigente")
	}

	config, err := s.repo.FindConfiguracion(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		config = &model.FacturaElectronica{EsConfiguracion: true, Estado: "pendiente"}
	}
	config.EmpresaID = empresa.ID
	config.EstablecimientoID = establecimientoID
	config.PuntoExpedicionID = puntoID
	config.TimbradoID = timbradoID
	config.CondicionVenta = req.CondicionVenta
	if err := s.repo.SaveConfiguracion(ctx, config); err != nil {
		return nil, err
	}
	return s.ObtenerConfiguracion(ctx)
}

func (s *facturacionService) ObtenerConfiguracion(ctx context.Context) (*dto.ConfiguracionFacturaResponse, error) {
	config, err := s.repo.FindConfiguracion(ctx)
	if err != nil {
		return nil, apierror.NoEncontrado("facturación no configurada")
	}
	resp := &dto.ConfiguracionFacturaResponse{CondicionVenta: config.CondicionVenta}
	if config.Empresa != nil {
		resp.Empresa = empresaToResponse(config.Empresa)
	}
	if config.Establecimiento != nil {
		resp.Establecimiento = establecimientoToResponse(config.Establecimiento)
	}
	if config.PuntoExpedicion != nil {
		resp.PuntoExpedicion = puntoToResponse(config.PuntoExpedicion)
	}
	if config.Timbrado != nil {
		resp.Timbrado = timbradoToResponse(config.Timbrado)
	}
	return resp, nil
}

// ── Emisión de facturas ───────────────────────────────────────────────────────

func (s *facturacionService) EmitirFactura(ctx context.Context, req dto.EmitirFacturaRequest) (*dto.FacturaResponse, error) {
	config, err := s.repo.FindConfiguracion(ctx)
	if err != nil {
		return nil, apierror.EstadoInvalido("facturación no configurada")
	}
	if config.Establecimiento == nil || config.PuntoExpedicion == nil || config.Timbrado == nil {
		return nil, apierror.EstadoInvalido("facturación no configurada")
	}
	if !config.Timbrado.Vigente(time.Now()) {
		return nil, apierror.EstadoInvalido("el timbrado configurado no está vigente")
	}

	receptorID, err := uuid.Parse(req.ReceptorID)
	if err != nil {
		return nil, apierror.Validacion("receptor_id inválido")
	}
	if _, err := s.personas.FindByID(ctx, receptorID); err != nil {
		return nil, apierror.NoEncontrado("receptor no encontrado")
	}

	var reservaID, comprobanteID, monedaID *uuid.UUID
	if req.ReservaID != nil {
		id, err := uuid.Parse(*req.ReservaID)
		if err != nil {
			return nil, apierror.Validacion("reserva_id inválido")
		}
		reservaID = &id
	}
	if req.ComprobanteID != nil {
		id, err := uuid.Parse(*req.ComprobanteID)
		if err != nil {
			return nil, apierror.Validacion("comprobante_id inválido")
		}
		comprobanteID = &id
	}
	if req.MonedaID != nil {
		id, err := uuid.Parse(*req.MonedaID)
		if err != nil {
			return nil, apierror.Validacion("moneda_id inválido")
		}
		monedaID = &id
	}

	detalles, totales, err := calcularDetalles(req.Detalles)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	factura := model.FacturaElectronica{
		EmpresaID:         config.EmpresaID,
		EstablecimientoID: config.EstablecimientoID,
		PuntoExpedicionID: config.PuntoExpedicionID,
		TimbradoID:        config.TimbradoID,
		ReservaID:         reservaID,
		ComprobanteID:     comprobanteID,
		ReceptorID:        &receptorID,
		FechaEmision:      &ahora,
		CondicionVenta:    &req.CondicionVenta,
		MonedaID:          monedaID,
		TotalGravado10:    totales.gravado10,
		TotalGravado5:     totales.gravado5,
		TotalExentas:      totales.exentas,
		TotalIVA:          totales.iva,
		TotalGeneral:      totales.general,
		Estado:            "pendiente",
		Detalles:          detalles,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := nextNumeroFactura(ctx, tx, s.secuencias,
			config.Establecimiento.Codigo, config.PuntoExpedicion.Codigo)
		if err != nil {
			return err
		}
		factura.Numero = &numero
		return s.repo.CreateFactura(ctx, tx, &factura)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueFacturacion(ctx, map[string]string{
			"tipo": "factura",
			"id":   factura.ID.String(),
		}); err != nil {
			log.Error().Err(err).Str("factura", *factura.Numero).Msg("no se pudo encolar el envío a SIFEN")
		}
	}
	return s.ObtenerFactura(ctx, factura.ID)
}

type totalesFactura struct {
	gravado10, gravado5, exentas, iva, general decimal.Decimal
}

// calcularDetalles derives per-line and aggregate amounts. Prices are IVA
// inclusive.
func calcularDetalles(reqs []dto.DetalleFacturaRequest) ([]model.DetalleFactura, totalesFactura, error) {
	var totales totalesFactura
	detalles := make([]model.DetalleFactura, 0, len(reqs))
	for _, d := range reqs {
		if !d.Cantidad.IsPositive() || !d.PrecioUnitario.IsPositive() {
			return nil, totales, apierror.Validacion("cantidad y precio unitario deben ser mayores a cero")
		}
		total := d.Cantidad.Mul(d.PrecioUnitario)
		var iva decimal.Decimal
		switch d.TasaIVA {
		case 10:
			iva = total.DivRound(divisorIVA10, 2)
			totales.gravado10 = totales.gravado10.Add(total)
		case 5:
			iva = total.DivRound(divisorIVA5, 2)
			totales.gravado5 = totales.gravado5.Add(total)
		case 0:
			totales.exentas = totales.exentas.Add(total)
		default:
			return nil, totales, apierror.Validacion("tasa de IVA inválida: debe ser 0, 5 o 10")
		}
		totales.iva = totales.iva.Add(iva)
		totales.general = totales.general.Add(total)
		detalles = append(detalles, model.DetalleFactura{
			Descripcion:    d.Descripcion,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			TasaIVA:        d.TasaIVA,
			MontoIVA:       iva,
			MontoTotal:     total,
		})
	}
	return detalles, totales, nil
}

func (s *facturacionService) ObtenerFactura(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	factura, err := s.repo.FindFacturaByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("factura no encontrada")
	}
	return facturaToResponse(factura), nil
}

func (s *facturacionService) ListFacturas(ctx context.Context, filter dto.FacturaFilter) ([]dto.FacturaResponse, int64, error) {
	filter.Normalize()
	facturas, total, err := s.repo.ListFacturas(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		items = append(items, *facturaToResponse(&facturas[i]))
	}
	return items, total, nil
}

func (s *facturacionService) ObtenerKude(ctx context.Context, id uuid.UUID) (string, string, error) {
	factura, err := s.repo.FindFacturaByID(ctx, id)
	if err != nil {
		return "", "", apierror.NoEncontrado("factura no encontrada")
	}
	if factura.PDFPath == nil {
		path, err := infra.GenerarKudePDF(factura, s.storagePath)
		if err != nil {
			return "", "", err
		}
		factura.PDFPath = &path
		if err := s.repo.UpdateFactura(ctx, factura); err != nil {
			return "", "", err
		}
	}
	numero := factura.ID.String()
	if factura.Numero != nil {
		numero = *factura.Numero
	}
	return *factura.PDFPath, "kude_" + numero + ".pdf", nil
}

// ── Notas de crédito ──────────────────────────────────────────────────────────

func (s *facturacionService) EmitirNotaCredito(ctx context.Context, req dto.NotaCreditoRequest) (*dto.NotaCreditoResponse, error) {
	facturaID, err := uuid.Parse(req.FacturaID)
	if err != nil {
		return nil, apierror.Validacion("factura_id inválido")
	}
	if !req.TotalGeneral.IsPositive() {
		return nil, apierror.Validacion("el total de la nota de crédito debe ser mayor a cero")
	}

	factura, err := s.repo.FindFacturaByID(ctx, facturaID)
	if err != nil {
		return nil, apierror.NoEncontrado("factura no encontrada")
	}
	if factura.Estado == "rechazada" {
		return nil, apierror.EstadoInvalido("no puede acreditarse una factura rechazada")
	}

	previas, err := s.repo.ListNotasCreditoPorFactura(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	acreditado := decimal.Zero
	for _, nc := range previas {
		acreditado = acreditado.Add(nc.TotalGeneral)
	}
	if acreditado.Add(req.TotalGeneral).GreaterThan(factura.TotalGeneral) {
		return nil, apierror.Conflicto("el total acreditado excede el total de la factura")
	}

	var devolucionID *uuid.UUID
	if req.DevolucionComprobanteID != nil {
		id, err := uuid.Parse(*req.DevolucionComprobanteID)
		if err != nil {
			return nil, apierror.Validacion("devolucion_comprobante_id inválido")
		}
		devolucionID = &id
	}

	var nota model.NotaCreditoElectronica
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := nextCodigo(ctx, tx, s.secuencias, scopeNotaCredito, time.Now())
		if err != nil {
			return err
		}
		nota = model.NotaCreditoElectronica{
			Numero:                  numero,
			FacturaID:               facturaID,
			Motivo:                  req.Motivo,
			DevolucionComprobanteID: devolucionID,
			TotalGeneral:            req.TotalGeneral,
			Estado:                  "pendiente",
			FechaEmision:            time.Now(),
		}
		if err := s.repo.CreateNotaCredito(ctx, tx, &nota); err != nil {
			return err
		}
		// La nota de crédito puede retroceder el estado de la reserva.
		if factura.ReservaID != nil && s.reservas != nil {
			return s.reservas.RecalcularPagos(ctx, tx, *factura.ReservaID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueFacturacion(ctx, map[string]string{
			"tipo": "nota_credito",
			"id":   nota.ID.String(),
		}); err != nil {
			log.Error().Err(err).Str("nota_credito", nota.Numero).Msg("no se pudo encolar el envío a SIFEN")
		}
	}
	return notaCreditoToResponse(&nota), nil
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func empresaToResponse(e *model.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:                 e.ID.String(),
		RazonSocial:        e.RazonSocial,
		RUC:                e.RUC,
		Direccion:          e.Direccion,
		Telefono:           e.Telefono,
		Email:              e.Email,
		ActividadEconomica: e.ActividadEconomica,
	}
}

func establecimientoToResponse(e *model.Establecimiento) *dto.EstablecimientoResponse {
	return &dto.EstablecimientoResponse{
		ID:        e.ID.String(),
		Codigo:    e.Codigo,
		Nombre:    e.Nombre,
		Direccion: e.Direccion,
		Activo:    e.Activo,
	}
}

func puntoToResponse(p *model.PuntoExpedicion) *dto.PuntoExpedicionResponse {
	return &dto.PuntoExpedicionResponse{
		ID:                p.ID.String(),
		EstablecimientoID: p.EstablecimientoID.String(),
		Codigo:            p.Codigo,
		Descripcion:       p.Descripcion,
		Activo:            p.Activo,
	}
}

func timbradoToResponse(t *model.Timbrado) *dto.TimbradoResponse {
	return &dto.TimbradoResponse{
		ID:          t.ID.String(),
		Numero:      t.Numero,
		FechaInicio: t.FechaInicio.Format("2006-01-02"),
		FechaFin:    t.FechaFin.Format("2006-01-02"),
		Vigente:     t.Vigente(time.Now()),
	}
}

func facturaToResponse(f *model.FacturaElectronica) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:             f.ID.String(),
		Numero:         f.Numero,
		CDC:            f.CDC,
		Estado:         f.Estado,
		CondicionVenta: f.CondicionVenta,
		TotalGravado10: f.TotalGravado10,
		TotalGravado5:  f.TotalGravado5,
		TotalExentas:   f.TotalExentas,
		TotalIVA:       f.TotalIVA,
		TotalGeneral:   f.TotalGeneral,
		ContenidoQR:    f.ContenidoQR,
		PDFPath:        f.PDFPath,
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
	if f.FechaEmision != nil {
		emision := f.FechaEmision.Format(time.RFC3339)
		resp.FechaEmision = &emision
	}
	if f.Receptor != nil {
		receptor := f.Receptor.NombreCompleto()
		resp.Receptor = &receptor
	}
	for _, d := range f.Detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleFacturaResponse{
			Descripcion:    d.Descripcion,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			TasaIVA:        d.TasaIVA,
			MontoIVA:       d.MontoIVA,
			MontoTotal:     d.MontoTotal,
		})
	}
	return resp
}

func notaCreditoToResponse(nc *model.NotaCreditoElectronica) *dto.NotaCreditoResponse {
	return &dto.NotaCreditoResponse{
		ID:           nc.ID.String(),
		Numero:       nc.Numero,
		FacturaID:    nc.FacturaID.String(),
		Motivo:       nc.Motivo,
		TotalGeneral: nc.TotalGeneral,
		Estado:       nc.Estado,
		FechaEmision: nc.FechaEmision.Format(time.RFC3339),
	}
}
