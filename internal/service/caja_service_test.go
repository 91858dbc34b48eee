package service

import (
	"context"
	"os"
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

// ── Full in-memory CajaRepository ────────────────────────────────────────────

type memCajaRepo struct {
	cajas       map[uuid.UUID]*model.Caja
	aperturas   map[uuid.UUID]*model.AperturaCaja
	movimientos []model.MovimientoCaja
	cierres     map[uuid.UUID]*model.CierreCaja
}

var _ repository.CajaRepository = (*memCajaRepo)(nil)

func newMemCajaRepo() *memCajaRepo {
	return &memCajaRepo{
		cajas:     make(map[uuid.UUID]*model.Caja),
		aperturas: make(map[uuid.UUID]*model.AperturaCaja),
		cierres:   make(map[uuid.UUID]*model.CierreCaja),
	}
}

func (r *memCajaRepo) DB() *gorm.DB { return nil }

func (r *memCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *memCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memCajaRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	return r.FindByID(ctx, id)
}

func (r *memCajaRepo) List(_ context.Context, _ dto.CajaFilter) ([]model.Caja, int64, error) {
	items := make([]model.Caja, 0, len(r.cajas))
	for _, c := range r.cajas {
		items = append(items, *c)
	}
	return items, int64(len(items)), nil
}

func (r *memCajaRepo) Update(_ context.Context, _ *gorm.DB, c *model.Caja) error {
	r.cajas[c.ID] = c
	return nil
}

func (r *memCajaRepo) CreateApertura(_ context.Context, _ *gorm.DB, a *model.AperturaCaja) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.aperturas[a.ID] = a
	return nil
}

func (r *memCajaRepo) FindAperturaByID(_ context.Context, id uuid.UUID) (*model.AperturaCaja, error) {
	a, ok := r.aperturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *memCajaRepo) FindAperturaAbiertaPorCaja(_ context.Context, cajaID uuid.UUID) (*model.AperturaCaja, error) {
	for _, a := range r.aperturas {
		if a.CajaID == cajaID && a.EstaAbierta {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCajaRepo) FindAperturaAbiertaPorEmpleado(_ context.Context, empleadoID uuid.UUID) (*model.AperturaCaja, error) {
	for _, a := range r.aperturas {
		if a.ResponsableID == empleadoID && a.EstaAbierta {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCajaRepo) UpdateApertura(_ context.Context, _ *gorm.DB, a *model.AperturaCaja) error {
	r.aperturas[a.ID] = a
	return nil
}

func (r *memCajaRepo) ListAperturas(_ context.Context, _ dto.AperturaFilter) ([]model.AperturaCaja, int64, error) {
	items := make([]model.AperturaCaja, 0, len(r.aperturas))
	for _, a := range r.aperturas {
		items = append(items, *a)
	}
	return items, int64(len(items)), nil
}

func (r *memCajaRepo) CreateMovimiento(_ context.Context, _ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *memCajaRepo) FindMovimientoByID(_ context.Context, id uuid.UUID) (*model.MovimientoCaja, error) {
	for i := range r.movimientos {
		if r.movimientos[i].ID == id {
			return &r.movimientos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCajaRepo) UpdateMovimiento(_ context.Context, _ *gorm.DB, m *model.MovimientoCaja) error {
	for i := range r.movimientos {
		if r.movimientos[i].ID == m.ID {
			r.movimientos[i] = *m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memCajaRepo) ListMovimientos(_ context.Context, aperturaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.AperturaID == aperturaID {
			movs = append(movs, m)
		}
	}
	return movs, nil
}

func (r *memCajaRepo) ListMovimientosPaginado(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoCaja, int64, error) {
	var movs []model.MovimientoCaja
	for _, m := range r.movimientos {
		if filter.AperturaID != nil && m.AperturaID != *filter.AperturaID {
			continue
		}
		movs = append(movs, m)
	}
	return movs, int64(len(movs)), nil
}

func (r *memCajaRepo) FindMovimientosPorComprobante(_ context.Context, comprobanteID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.ComprobanteID != nil && *m.ComprobanteID == comprobanteID {
			movs = append(movs, m)
		}
	}
	return movs, nil
}

func (r *memCajaRepo) CreateCierre(_ context.Context, _ *gorm.DB, c *model.CierreCaja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cierres[c.ID] = c
	return nil
}

func (r *memCajaRepo) FindCierreByID(_ context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	c, ok := r.cierres[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memCajaRepo) FindCierreByApertura(_ context.Context, aperturaID uuid.UUID) (*model.CierreCaja, error) {
	for _, c := range r.cierres {
		if c.AperturaID == aperturaID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCajaRepo) UpdateCierre(_ context.Context, c *model.CierreCaja) error {
	r.cierres[c.ID] = c
	return nil
}

func (r *memCajaRepo) ListCierres(_ context.Context, _ dto.PageFilter) ([]model.CierreCaja, int64, error) {
	items := make([]model.CierreCaja, 0, len(r.cierres))
	for _, c := range r.cierres {
		items = append(items, *c)
	}
	return items, int64(len(items)), nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type cajaFixture struct {
	svc        CajaService
	repo       *memCajaRepo
	cajaID     uuid.UUID
	empleadoID uuid.UUID
}

func newCajaFixture(t *testing.T) *cajaFixture {
	t.Helper()
	repo := newMemCajaRepo()

	personas := newFakePersonas()
	empleadoID := personas.agregarEmpleado("Carlos", "Duarte").ID

	peID := uuid.New()
	facturacion := newFakeFacturacion()
	facturacion.puntos[peID] = &model.PuntoExpedicion{
		ID:              peID,
		Codigo:          "001",
		Establecimiento: &model.Establecimiento{Codigo: "001"},
	}

	svc := NewCajaService(repo, facturacion, personas, newMemSecuencias(), t.TempDir())

	caja, err := svc.CrearCaja(context.Background(), dto.CrearCajaRequest{
		Nombre:            "Caja Principal",
		PuntoExpedicionID: peID.String(),
	})
	require.NoError(t, err)
	cajaID, err := uuid.Parse(caja.ID)
	require.NoError(t, err)

	return &cajaFixture{svc: svc, repo: repo, cajaID: cajaID, empleadoID: empleadoID}
}

func (f *cajaFixture) abrir(t *testing.T, montoInicial int64) uuid.UUID {
	t.Helper()
	resp, err := f.svc.Abrir(context.Background(), f.empleadoID, dto.AbrirCajaRequest{
		CajaID:       f.cajaID.String(),
		MontoInicial: decimal.NewFromInt(montoInicial),
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

func (f *cajaFixture) ingreso(t *testing.T, aperturaID uuid.UUID, metodo string, monto int64) {
	t.Helper()
	concepto := "otro_ingreso"
	if metodo == "efectivo" {
		concepto = "venta_efectivo"
	}
	_, err := f.svc.RegistrarMovimiento(context.Background(), f.empleadoID, dto.MovimientoManualRequest{
		AperturaID: aperturaID.String(),
		Tipo:       "ingreso",
		Concepto:   concepto,
		MetodoPago: metodo,
		Monto:      decimal.NewFromInt(monto),
	})
	require.NoError(t, err)
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAbrirCaja_SaldoAcumulaIngresos(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 500_000)

	f.ingreso(t, aperturaID, "efectivo", 200_000)
	f.ingreso(t, aperturaID, "efectivo", 300_000)
	f.ingreso(t, aperturaID, "efectivo", 150_000)

	caja, err := f.repo.FindByID(context.Background(), f.cajaID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1_150_000).Equal(caja.SaldoActual),
		"saldo esperado 1.150.000, tengo %s", caja.SaldoActual)
	assert.Equal(t, "abierta", caja.Estado)
}

func TestAbrirCaja_SegundaAperturaDelEmpleadoFalla(t *testing.T) {
	f := newCajaFixture(t)
	f.abrir(t, 100_000)

	_, err := f.svc.Abrir(context.Background(), f.empleadoID, dto.AbrirCajaRequest{
		CajaID:       f.cajaID.String(),
		MontoInicial: decimal.NewFromInt(50_000),
	})
	requireKind(t, err, "conflicto")
}

func TestRegistrarMovimiento_ConceptoCruzadoFalla(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 100_000)

	_, err := f.svc.RegistrarMovimiento(context.Background(), f.empleadoID, dto.MovimientoManualRequest{
		AperturaID: aperturaID.String(),
		Tipo:       "ingreso",
		Concepto:   "retiro_efectivo", // concepto de egreso
		MetodoPago: "efectivo",
		Monto:      decimal.NewFromInt(10_000),
	})
	requireKind(t, err, "validacion")
}

func TestRegistrarPago_SinAperturaFallaDuro(t *testing.T) {
	f := newCajaFixture(t)

	comprobante := &model.ComprobantePago{
		ID:         uuid.New(),
		Codigo:     "CPG-2026-0001",
		Tipo:       "senia",
		Monto:      decimal.NewFromInt(300_000),
		MetodoPago: "efectivo",
	}
	err := f.svc.RegistrarPago(context.Background(), nil, comprobante, comprobante.Monto, f.empleadoID)
	requireKind(t, err, "estado_invalido")
	assert.Empty(t, f.repo.movimientos, "sin apertura no se registra ningún movimiento")
}

func TestRevertirPago_DesactivaMovimientosYRecalcula(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 500_000)
	f.ingreso(t, aperturaID, "efectivo", 200_000)
	f.ingreso(t, aperturaID, "efectivo", 150_000)

	comprobante := &model.ComprobantePago{
		ID:         uuid.New(),
		Codigo:     "CPG-2026-0001",
		Tipo:       "pago_parcial",
		Monto:      decimal.NewFromInt(300_000),
		MetodoPago: "efectivo",
	}
	require.NoError(t, f.svc.RegistrarPago(context.Background(), nil, comprobante, comprobante.Monto, f.empleadoID))

	caja, err := f.repo.FindByID(context.Background(), f.cajaID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1_150_000).Equal(caja.SaldoActual))

	require.NoError(t, f.svc.RevertirPago(context.Background(), nil, comprobante.ID, f.empleadoID))

	caja, err = f.repo.FindByID(context.Background(), f.cajaID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(850_000).Equal(caja.SaldoActual),
		"tras revertir 300.000 el saldo vuelve a 850.000, tengo %s", caja.SaldoActual)

	movs, err := f.repo.FindMovimientosPorComprobante(context.Background(), comprobante.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.False(t, movs[0].Activo)
}

func TestCerrar_TotalesPorMetodoYDiferencia(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 500_000)

	f.ingreso(t, aperturaID, "efectivo", 800_000)
	f.ingreso(t, aperturaID, "tarjeta_credito", 300_000)

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{
		AperturaID:        aperturaID.String(),
		SaldoRealEfectivo: decimal.NewFromInt(1_250_000),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1_300_000).Equal(cierre.SaldoTeoricoEfectivo))
	assert.True(t, decimal.NewFromInt(1_600_000).Equal(cierre.SaldoTeoricoTotal))
	assert.True(t, decimal.NewFromInt(-50_000).Equal(cierre.Diferencia))
	// |−50.000| / 1.300.000 ≈ 3,85% > 2%
	assert.True(t, cierre.RequiereAutorizacion)

	apertura, err := f.repo.FindAperturaByID(context.Background(), aperturaID)
	require.NoError(t, err)
	assert.False(t, apertura.EstaAbierta)

	caja, err := f.repo.FindByID(context.Background(), f.cajaID)
	require.NoError(t, err)
	assert.Equal(t, "cerrada", caja.Estado)
}

func TestCerrar_DiferenciaChicaNoRequiereAutorizacion(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 1_000_000)

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{
		AperturaID:        aperturaID.String(),
		SaldoRealEfectivo: decimal.NewFromInt(990_000), // -1%
	})
	require.NoError(t, err)
	assert.False(t, cierre.RequiereAutorizacion)
}

func TestCerrar_AperturaYaCerradaFalla(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 100_000)

	_, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{
		AperturaID:        aperturaID.String(),
		SaldoRealEfectivo: decimal.NewFromInt(100_000),
	})
	require.NoError(t, err)

	_, err = f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{
		AperturaID:        aperturaID.String(),
		SaldoRealEfectivo: decimal.NewFromInt(100_000),
	})
	require.Error(t, err)
}

func TestAutorizarCierre(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 1_000_000)
	f.ingreso(t, aperturaID, "efectivo", 500_000)

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{
		AperturaID:        aperturaID.String(),
		SaldoRealEfectivo: decimal.NewFromInt(1_300_000), // faltan 200.000
	})
	require.NoError(t, err)
	require.True(t, cierre.RequiereAutorizacion)

	cierreID, err := uuid.Parse(cierre.ID)
	require.NoError(t, err)

	autorizado, err := f.svc.AutorizarCierre(context.Background(), cierreID, dto.AutorizarCierreRequest{
		AutorizadoPorID: f.empleadoID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, autorizado.AutorizadoPor)
	assert.Equal(t, "Carlos Duarte", *autorizado.AutorizadoPor)

	// Idempotencia: un segundo intento se rechaza
	_, err = f.svc.AutorizarCierre(context.Background(), cierreID, dto.AutorizarCierreRequest{
		AutorizadoPorID: f.empleadoID.String(),
	})
	requireKind(t, err, "conflicto")
}

func TestObtenerCierrePDF_GeneraElReporte(t *testing.T) {
	f := newCajaFixture(t)
	aperturaID := f.abrir(t, 500_000)
	f.ingreso(t, aperturaID, "efectivo", 300_000)

	cierre, err := f.svc.Cerrar(context.Background(), dto.CerrarCajaRequest{
		AperturaID:        aperturaID.String(),
		SaldoRealEfectivo: decimal.NewFromInt(800_000),
	})
	require.NoError(t, err)
	cierreID, err := uuid.Parse(cierre.ID)
	require.NoError(t, err)

	path, nombre, err := f.svc.ObtenerCierrePDF(context.Background(), cierreID)
	require.NoError(t, err)
	assert.Equal(t, cierre.Codigo+".pdf", nombre)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestObtenerCierrePDF_CierreInexistente(t *testing.T) {
	f := newCajaFixture(t)

	_, _, err := f.svc.ObtenerCierrePDF(context.Background(), uuid.New())
	requireKind(t, err, "no_encontrado")
}

func TestMapearConcepto(t *testing.T) {
	cases := []struct {
		tipo, metodo     string
		wantTipo         string
		wantConcepto     string
	}{
		{"senia", "efectivo", "ingreso", "venta_efectivo"},
		{"pago_parcial", "tarjeta_debito", "ingreso", "venta_tarjeta"},
		{"pago_total", "transferencia", "ingreso", "transferencia_recibida"},
		{"pago_total", "cheque", "ingreso", "cobro_cuenta"},
		{"senia", "qr", "ingreso", "otro_ingreso"},
		{"devolucion", "efectivo", "egreso", "devolucion"},
	}
	for _, tc := range cases {
		tipo, concepto := mapearConcepto(&model.ComprobantePago{Tipo: tc.tipo, MetodoPago: tc.metodo})
		assert.Equal(t, tc.wantTipo, tipo, "%s/%s", tc.tipo, tc.metodo)
		assert.Equal(t, tc.wantConcepto, concepto, "%s/%s", tc.tipo, tc.metodo)
	}
}
