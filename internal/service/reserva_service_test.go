package service

import (
	"context"
	"testing"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ReservaRepository ──────────────────────────────────────────────

type memReservaRepo struct {
	reservas  map[uuid.UUID]*model.Reserva
	pasajeros []*model.Pasajero
	personas  *fakePersonas
	paquetes  *memPaqueteRepo
}

var _ repository.ReservaRepository = (*memReservaRepo)(nil)

func newMemReservaRepo(personas *fakePersonas, paquetes *memPaqueteRepo) *memReservaRepo {
	return &memReservaRepo{
		reservas: make(map[uuid.UUID]*model.Reserva),
		personas: personas,
		paquetes: paquetes,
	}
}

func (r *memReservaRepo) DB() *gorm.DB { return nil }

func (r *memReservaRepo) Create(_ context.Context, _ *gorm.DB, rsv *model.Reserva) error {
	if rsv.ID == uuid.Nil {
		rsv.ID = uuid.New()
	}
	rsv.CreatedAt = time.Now()
	r.reservas[rsv.ID] = rsv
	return nil
}

func (r *memReservaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	rsv, ok := r.reservas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *rsv
	pasajeros, _ := r.ListPasajeros(ctx, id)
	copia.Pasajeros = pasajeros
	if r.paquetes != nil {
		copia.Salida = r.paquetes.salidas[rsv.SalidaID]
	}
	return &copia, nil
}

func (r *memReservaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Reserva, error) {
	for id, rsv := range r.reservas {
		if rsv.Codigo == codigo {
			return r.FindByID(ctx, id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memReservaRepo) Update(_ context.Context, _ *gorm.DB, rsv *model.Reserva) error {
	guardada, ok := r.reservas[rsv.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *rsv
	copia.Pasajeros = nil
	*guardada = copia
	return nil
}

func (r *memReservaRepo) List(_ context.Context, _ dto.ReservaFilter) ([]model.Reserva, int64, error) {
	items := make([]model.Reserva, 0, len(r.reservas))
	for _, rsv := range r.reservas {
		items = append(items, *rsv)
	}
	return items, int64(len(items)), nil
}

func (r *memReservaRepo) CreatePasajero(_ context.Context, _ *gorm.DB, p *model.Pasajero) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	copia := *p
	r.pasajeros = append(r.pasajeros, &copia)
	return nil
}

func (r *memReservaRepo) FindPasajeroByID(_ context.Context, id uuid.UUID) (*model.Pasajero, error) {
	for _, p := range r.pasajeros {
		if p.ID == id {
			copia := *p
			copia.Persona, _ = r.personas.FindByID(context.Background(), p.PersonaID)
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memReservaRepo) UpdatePasajero(_ context.Context, _ *gorm.DB, p *model.Pasajero) error {
	for i := range r.pasajeros {
		if r.pasajeros[i].ID == p.ID {
			copia := *p
			copia.Persona = nil
			*r.pasajeros[i] = copia
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memReservaRepo) ListPasajeros(_ context.Context, reservaID uuid.UUID) ([]model.Pasajero, error) {
	var items []model.Pasajero
	for _, p := range r.pasajeros {
		if p.ReservaID != reservaID {
			continue
		}
		copia := *p
		copia.Persona, _ = r.personas.FindByID(context.Background(), p.PersonaID)
		items = append(items, copia)
	}
	return items, nil
}

// ── In-memory PaqueteRepository ──────────────────────────────────────────────

type memPaqueteRepo struct {
	paquetes     map[uuid.UUID]*model.Paquete
	salidas      map[uuid.UUID]*model.Salida
	habitaciones map[uuid.UUID]*model.Habitacion
}

var _ repository.PaqueteRepository = (*memPaqueteRepo)(nil)

func newMemPaqueteRepo() *memPaqueteRepo {
	return &memPaqueteRepo{
		paquetes:     make(map[uuid.UUID]*model.Paquete),
		salidas:      make(map[uuid.UUID]*model.Salida),
		habitaciones: make(map[uuid.UUID]*model.Habitacion),
	}
}

func (r *memPaqueteRepo) Create(_ context.Context, p *model.Paquete) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.paquetes[p.ID] = p
	return nil
}

func (r *memPaqueteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Paquete, error) {
	p, ok := r.paquetes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *memPaqueteRepo) Update(_ context.Context, p *model.Paquete) error {
	r.paquetes[p.ID] = p
	return nil
}

func (r *memPaqueteRepo) List(_ context.Context, _ dto.PageFilter) ([]model.Paquete, int64, error) {
	items := make([]model.Paquete, 0, len(r.paquetes))
	for _, p := range r.paquetes {
		items = append(items, *p)
	}
	return items, int64(len(items)), nil
}

func (r *memPaqueteRepo) CreateSalida(_ context.Context, s *model.Salida) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.salidas[s.ID] = s
	return nil
}

func (r *memPaqueteRepo) FindSalidaByID(_ context.Context, id uuid.UUID) (*model.Salida, error) {
	s, ok := r.salidas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *memPaqueteRepo) FindSalidaForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Salida, error) {
	return r.FindSalidaByID(ctx, id)
}

func (r *memPaqueteRepo) UpdateSalida(_ context.Context, _ *gorm.DB, s *model.Salida) error {
	r.salidas[s.ID] = s
	return nil
}

func (r *memPaqueteRepo) ListSalidas(_ context.Context, paqueteID uuid.UUID) ([]model.Salida, error) {
	var items []model.Salida
	for _, s := range r.salidas {
		if s.PaqueteID == paqueteID {
			items = append(items, *s)
		}
	}
	return items, nil
}

func (r *memPaqueteRepo) FindHabitacionByID(_ context.Context, id uuid.UUID) (*model.Habitacion, error) {
	h, ok := r.habitaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (r *memPaqueteRepo) ListHabitaciones(_ context.Context) ([]model.Habitacion, error) {
	items := make([]model.Habitacion, 0, len(r.habitaciones))
	for _, h := range r.habitaciones {
		items = append(items, *h)
	}
	return items, nil
}

// ── In-memory ComprobanteRepository ──────────────────────────────────────────

type memComprobanteRepo struct {
	comprobantes []*model.ComprobantePago
}

var _ repository.ComprobanteRepository = (*memComprobanteRepo)(nil)

func newMemComprobanteRepo() *memComprobanteRepo { return &memComprobanteRepo{} }

func (r *memComprobanteRepo) DB() *gorm.DB { return nil }

func (r *memComprobanteRepo) Create(_ context.Context, _ *gorm.DB, c *model.ComprobantePago) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	for i := range c.Distribuciones {
		if c.Distribuciones[i].ID == uuid.Nil {
			c.Distribuciones[i].ID = uuid.New()
		}
		c.Distribuciones[i].ComprobanteID = c.ID
	}
	copia := *c
	r.comprobantes = append(r.comprobantes, &copia)
	return nil
}

func (r *memComprobanteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ComprobantePago, error) {
	for _, c := range r.comprobantes {
		if c.ID == id {
			copia := *c
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memComprobanteRepo) Update(_ context.Context, _ *gorm.DB, c *model.ComprobantePago) error {
	for i := range r.comprobantes {
		if r.comprobantes[i].ID == c.ID {
			copia := *c
			r.comprobantes[i] = &copia
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memComprobanteRepo) ListByReserva(_ context.Context, reservaID uuid.UUID) ([]model.ComprobantePago, error) {
	var items []model.ComprobantePago
	for _, c := range r.comprobantes {
		if c.ReservaID == reservaID {
			items = append(items, *c)
		}
	}
	return items, nil
}

func (r *memComprobanteRepo) List(_ context.Context, _ dto.ComprobanteFilter) ([]model.ComprobantePago, int64, error) {
	items := make([]model.ComprobantePago, 0, len(r.comprobantes))
	for _, c := range r.comprobantes {
		items = append(items, *c)
	}
	return items, int64(len(items)), nil
}

func (r *memComprobanteRepo) ListDistribucionesPorPasajero(_ context.Context, pasajeroID uuid.UUID) ([]model.ComprobantePagoDistribucion, error) {
	var items []model.ComprobantePagoDistribucion
	for _, c := range r.comprobantes {
		for _, d := range c.Distribuciones {
			if d.PasajeroID == pasajeroID {
				items = append(items, d)
			}
		}
	}
	return items, nil
}

// fakeVouchers records which passengers got a voucher issued.
type fakeVouchers struct {
	VoucherService
	emitidos map[uuid.UUID]int
}

func newFakeVouchers() *fakeVouchers { return &fakeVouchers{emitidos: make(map[uuid.UUID]int)} }

func (f *fakeVouchers) EmitirParaPasajero(_ context.Context, _ *gorm.DB, _ *model.Reserva, p *model.Pasajero) error {
	if p.PorAsignar || !p.EstaTotalmentePagado() {
		return nil
	}
	f.emitidos[p.ID]++
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type reservaFixture struct {
	svc          ReservaService
	repo         *memReservaRepo
	paquetes     *memPaqueteRepo
	personas     *fakePersonas
	comprobantes *memComprobanteRepo
	facturacion  *fakeFacturacion
	vouchers     *fakeVouchers

	titularID uuid.UUID
	paqueteID uuid.UUID
	salidaID  uuid.UUID
}

// newReservaFixture provisions a paquete propio with cupo 10 and a salida in
// 60 days: seña 500.000, precio 3.000.000 per seat.
func newReservaFixture(t *testing.T) *reservaFixture {
	t.Helper()

	personas := newFakePersonas()
	apellido := "González"
	titular := personas.agregarPersona("fisica", "2345678", "María", &apellido)

	paquetes := newMemPaqueteRepo()
	paquete := &model.Paquete{ID: uuid.New(), Nombre: "Río 7 días", Destino: "Río de Janeiro", Propio: true, Activo: true}
	paquetes.paquetes[paquete.ID] = paquete
	salida := &model.Salida{
		ID:             uuid.New(),
		PaqueteID:      paquete.ID,
		FechaSalida:    time.Now().AddDate(0, 0, 60),
		Senia:          decimal.NewFromInt(500_000),
		PrecioActual:   decimal.NewFromInt(3_000_000),
		CupoTotal:      10,
		CupoDisponible: 10,
		Activo:         true,
	}
	paquetes.salidas[salida.ID] = salida

	repo := newMemReservaRepo(personas, paquetes)
	comprobantes := newMemComprobanteRepo()
	facturacion := newFakeFacturacion()
	vouchers := newFakeVouchers()

	svc := NewReservaService(repo, paquetes, personas, comprobantes, facturacion, vouchers, newMemSecuencias())

	return &reservaFixture{
		svc:          svc,
		repo:         repo,
		paquetes:     paquetes,
		personas:     personas,
		comprobantes: comprobantes,
		facturacion:  facturacion,
		vouchers:     vouchers,
		titularID:    titular.ID,
		paqueteID:    paquete.ID,
		salidaID:     salida.ID,
	}
}

func (f *reservaFixture) crear(t *testing.T, cantidad int) uuid.UUID {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearReservaRequest{
		TitularID:            f.titularID.String(),
		PaqueteID:            f.paqueteID.String(),
		SalidaID:             f.salidaID.String(),
		CantidadPasajeros:    cantidad,
		ModalidadFacturacion: "global",
		CondicionPago:        "contado",
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

// agregarPasajeroReal adds a passenger with full identity data.
func (f *reservaFixture) agregarPasajeroReal(t *testing.T, reservaID uuid.UUID, documento, nombre string) uuid.UUID {
	t.Helper()
	resp, err := f.svc.AgregarPasajero(context.Background(), reservaID, dto.AgregarPasajeroRequest{
		NumeroDocumento: &documento,
		Nombre:          &nombre,
	})
	require.NoError(t, err)
	require.False(t, resp.PorAsignar)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

// pagar registers an active comprobante directly in the repo and triggers the
// recompute, bypassing the caja requirement that the comprobante service adds.
func (f *reservaFixture) pagar(t *testing.T, reservaID uuid.UUID, tipo string, montos map[uuid.UUID]int64) {
	t.Helper()
	total := decimal.Zero
	var dist []model.ComprobantePagoDistribucion
	for pid, monto := range montos {
		total = total.Add(decimal.NewFromInt(monto))
		dist = append(dist, model.ComprobantePagoDistribucion{PasajeroID: pid, Monto: decimal.NewFromInt(monto)})
	}
	c := &model.ComprobantePago{
		Codigo:         uuid.NewString()[:13],
		ReservaID:      reservaID,
		Tipo:           tipo,
		Monto:          total,
		MetodoPago:     "efectivo",
		EmpleadoID:     uuid.New(),
		Activo:         true,
		Distribuciones: dist,
	}
	require.NoError(t, f.comprobantes.Create(context.Background(), nil, c))
	require.NoError(t, f.svc.RecalcularPagos(context.Background(), nil, reservaID))
}

func (f *reservaFixture) estado(t *testing.T, reservaID uuid.UUID) string {
	t.Helper()
	resp, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	return resp.Estado
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearReserva_IndividualACreditoSeRechaza(t *testing.T) {
	f := newReservaFixture(t)
	_, err := f.svc.Crear(context.Background(), dto.CrearReservaRequest{
		TitularID:            f.titularID.String(),
		PaqueteID:            f.paqueteID.String(),
		SalidaID:             f.salidaID.String(),
		CantidadPasajeros:    1,
		ModalidadFacturacion: "individual",
		CondicionPago:        "credito",
	})
	requireKind(t, err, "validacion")
}

func TestCrearReserva_DescuentaCupoYCreaTitular(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 2)

	salida := f.paquetes.salidas[f.salidaID]
	assert.Equal(t, 8, salida.CupoDisponible)

	resp, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Estado)
	require.Len(t, resp.Pasajeros, 1)
	assert.True(t, resp.Pasajeros[0].EsTitular)
	assert.False(t, resp.Pasajeros[0].PorAsignar)
	assert.True(t, decimal.NewFromInt(6_000_000).Equal(resp.PrecioTotal))
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(resp.SeniaTotal))
	// Falta un pasajero: la nómina sigue incompleta
	assert.False(t, resp.DatosCompletos)
}

func TestCrearReserva_UnPasajeroConDatosRealesCompletaNomina(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 1)

	resp, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	require.Len(t, resp.Pasajeros, 1)
	assert.False(t, resp.Pasajeros[0].PorAsignar)
	assert.True(t, resp.DatosCompletos,
		"con un solo pasajero y titular identificado la nómina queda completa al crear")
}

func TestCrearReserva_CupoInsuficiente(t *testing.T) {
	f := newReservaFixture(t)
	_, err := f.svc.Crear(context.Background(), dto.CrearReservaRequest{
		TitularID:            f.titularID.String(),
		PaqueteID:            f.paqueteID.String(),
		SalidaID:             f.salidaID.String(),
		CantidadPasajeros:    11,
		ModalidadFacturacion: "global",
		CondicionPago:        "contado",
	})
	requireKind(t, err, "conflicto")
}

func TestAgregarPasajero_SinDatosQuedaPorAsignar(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 3)

	resp, err := f.svc.AgregarPasajero(context.Background(), reservaID, dto.AgregarPasajeroRequest{})
	require.NoError(t, err)
	assert.True(t, resp.PorAsignar)
	assert.Equal(t, "Pasajero por asignar", resp.Persona)

	// La reserva sigue con datos incompletos
	det, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	assert.False(t, det.DatosCompletos)
}

func TestAgregarPasajero_MasAllaDelCupoDeLaReservaFalla(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 2)
	f.agregarPasajeroReal(t, reservaID, "3456789", "Pedro")

	_, err := f.svc.AgregarPasajero(context.Background(), reservaID, dto.AgregarPasajeroRequest{})
	requireKind(t, err, "conflicto")
}

func TestAsignarPasajero_CompletaDatos(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 2)

	resp, err := f.svc.AgregarPasajero(context.Background(), reservaID, dto.AgregarPasajeroRequest{})
	require.NoError(t, err)
	pasajeroID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	real := f.personas.agregarPersona("fisica", "4567890", "Lucía", nil)
	asignado, err := f.svc.AsignarPasajero(context.Background(), pasajeroID, dto.ActualizarPasajeroRequest{
		PersonaID: real.ID.String(),
	})
	require.NoError(t, err)
	assert.False(t, asignado.PorAsignar)
	assert.Equal(t, "Lucía", asignado.Persona)

	det, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	assert.True(t, det.DatosCompletos)
}

func TestRecalcularPagos_AvanzaYRetrocedeEstado(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 2)
	p2 := f.agregarPasajeroReal(t, reservaID, "3456789", "Pedro")

	det, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	titularPasajeroID, err := uuid.Parse(det.Pasajeros[0].ID)
	require.NoError(t, err)

	// Seña completa por ambos → confirmada
	f.pagar(t, reservaID, "senia", map[uuid.UUID]int64{titularPasajeroID: 500_000, p2: 500_000})
	assert.Equal(t, "confirmada", f.estado(t, reservaID))

	// Saldo restante → finalizada, y ambos pasajeros reciben voucher
	f.pagar(t, reservaID, "pago_total", map[uuid.UUID]int64{titularPasajeroID: 2_500_000, p2: 2_500_000})
	assert.Equal(t, "finalizada", f.estado(t, reservaID))
	assert.Equal(t, 1, f.vouchers.emitidos[titularPasajeroID])
	assert.Equal(t, 1, f.vouchers.emitidos[p2])

	// Una devolución parcial retrocede el estado a confirmada
	f.pagar(t, reservaID, "devolucion", map[uuid.UUID]int64{p2: 1_000_000})
	assert.Equal(t, "confirmada", f.estado(t, reservaID))

	det, err = f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5_000_000).Equal(det.MontoPagado))
}

func TestRecalcularPagos_SeniaParcialNoConfirma(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 2)
	p2 := f.agregarPasajeroReal(t, reservaID, "3456789", "Pedro")

	// Solo un pasajero con seña: la reserva sigue pendiente
	f.pagar(t, reservaID, "senia", map[uuid.UUID]int64{p2: 500_000})
	assert.Equal(t, "pendiente", f.estado(t, reservaID))
}

func TestCancelar_LiberaCupoYCalculaMontos(t *testing.T) {
	f := newReservaFixture(t)
	reservaID := f.crear(t, 2)
	p2 := f.agregarPasajeroReal(t, reservaID, "3456789", "Pedro")

	det, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	titularPasajeroID, err := uuid.Parse(det.Pasajeros[0].ID)
	require.NoError(t, err)

	// Seña 1.000.000 + 400.000 adicionales
	f.pagar(t, reservaID, "senia", map[uuid.UUID]int64{titularPasajeroID: 500_000, p2: 500_000})
	f.pagar(t, reservaID, "pago_parcial", map[uuid.UUID]int64{titularPasajeroID: 400_000})

	montos, err := f.svc.Cancelar(context.Background(), reservaID, dto.CancelarReservaRequest{})
	require.NoError(t, err)

	// A 60 días se devuelven los adicionales; la seña no se reembolsa
	assert.True(t, montos.ReembolsoHabilitado)
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(montos.SeniaPagada))
	assert.True(t, decimal.NewFromInt(400_000).Equal(montos.PagosAdicionales))
	assert.True(t, decimal.NewFromInt(400_000).Equal(montos.MontoReembolsable))

	assert.Equal(t, 10, f.paquetes.salidas[f.salidaID].CupoDisponible)
	assert.Equal(t, "cancelada", f.estado(t, reservaID))

	// Cancelar dos veces no corresponde
	_, err = f.svc.Cancelar(context.Background(), reservaID, dto.CancelarReservaRequest{})
	requireKind(t, err, "estado_invalido")
}

func TestMontosCancelacion_DentroDeLaVentanaNoReembolsa(t *testing.T) {
	f := newReservaFixture(t)
	// Salida a 10 días: no corresponde reembolso alguno
	f.paquetes.salidas[f.salidaID].FechaSalida = time.Now().AddDate(0, 0, 10)

	reservaID := f.crear(t, 1)
	det, err := f.svc.Obtener(context.Background(), reservaID)
	require.NoError(t, err)
	titularPasajeroID, err := uuid.Parse(det.Pasajeros[0].ID)
	require.NoError(t, err)

	f.pagar(t, reservaID, "senia", map[uuid.UUID]int64{titularPasajeroID: 500_000})
	f.pagar(t, reservaID, "pago_parcial", map[uuid.UUID]int64{titularPasajeroID: 300_000})

	montos, err := f.svc.MontosCancelacion(context.Background(), reservaID)
	require.NoError(t, err)
	assert.False(t, montos.ReembolsoHabilitado)
	assert.True(t, decimal.NewFromInt(500_000).Equal(montos.SeniaPagada))
	assert.True(t, decimal.NewFromInt(300_000).Equal(montos.PagosAdicionales))
	assert.True(t, montos.MontoReembolsable.IsZero(),
		"a menos de 20 días no se reembolsa nada")
}

func TestDerivarEstado_SinPasajerosRealesUsaMontos(t *testing.T) {
	reserva := &model.Reserva{
		Estado:            "pendiente",
		CantidadPasajeros: 2,
		PrecioUnitario:    decimal.NewFromInt(3_000_000),
		SeniaUnitaria:     decimal.NewFromInt(500_000),
	}

	reserva.MontoPagado = decimal.NewFromInt(900_000)
	assert.Equal(t, "pendiente", derivarEstado(reserva, nil))

	reserva.MontoPagado = decimal.NewFromInt(1_000_000)
	assert.Equal(t, "confirmada", derivarEstado(reserva, nil))

	reserva.MontoPagado = decimal.NewFromInt(6_000_000)
	assert.Equal(t, "finalizada", derivarEstado(reserva, nil))
}
