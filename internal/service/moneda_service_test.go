package service

import (
	"context"
	"errors"
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

type memMonedaRepo struct {
	monedas      map[uuid.UUID]*model.Moneda
	cotizaciones []model.CotizacionMoneda
}

var _ repository.MonedaRepository = (*memMonedaRepo)(nil)

func newMemMonedaRepo() *memMonedaRepo {
	return &memMonedaRepo{monedas: make(map[uuid.UUID]*model.Moneda)}
}

func (r *memMonedaRepo) Create(_ context.Context, m *model.Moneda) error {
	for _, existente := range r.monedas {
		if existente.Codigo == m.Codigo {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.monedas[m.ID] = m
	return nil
}

func (r *memMonedaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Moneda, error) {
	if m, ok := r.monedas[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memMonedaRepo) FindByCodigo(_ context.Context, codigo string) (*model.Moneda, error) {
	for _, m := range r.monedas {
		if m.Codigo == codigo {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memMonedaRepo) List(_ context.Context) ([]model.Moneda, error) {
	items := make([]model.Moneda, 0, len(r.monedas))
	for _, m := range r.monedas {
		items = append(items, *m)
	}
	return items, nil
}

func (r *memMonedaRepo) CreateCotizacion(_ context.Context, c *model.CotizacionMoneda) error {
	for _, existente := range r.cotizaciones {
		if existente.MonedaID == c.MonedaID && existente.Fecha.Equal(c.Fecha) {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cotizaciones = append(r.cotizaciones, *c)
	return nil
}

func (r *memMonedaRepo) FindCotizacionVigente(_ context.Context, monedaID uuid.UUID, fecha time.Time) (*model.CotizacionMoneda, error) {
	var vigente *model.CotizacionMoneda
	for i := range r.cotizaciones {
		c := &r.cotizaciones[i]
		if c.MonedaID != monedaID || c.Fecha.After(fecha) {
			continue
		}
		if vigente == nil || c.Fecha.After(vigente.Fecha) {
			vigente = c
		}
	}
	if vigente == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return vigente, nil
}

func (r *memMonedaRepo) ListCotizaciones(_ context.Context, monedaID uuid.UUID, desde, hasta time.Time) ([]model.CotizacionMoneda, error) {
	var items []model.CotizacionMoneda
	for _, c := range r.cotizaciones {
		if c.MonedaID == monedaID && !c.Fecha.Before(desde) && !c.Fecha.After(hasta) {
			items = append(items, c)
		}
	}
	return items, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

func monedaFixture(t *testing.T) (MonedaService, *memMonedaRepo) {
	t.Helper()
	repo := newMemMonedaRepo()
	svc := NewMonedaService(repo, nil, 0)
	return svc, repo
}

func (r *memMonedaRepo) agregarMoneda(codigo, nombre, simbolo string) *model.Moneda {
	m := &model.Moneda{ID: uuid.New(), Codigo: codigo, Nombre: nombre, Simbolo: simbolo, Activo: true}
	r.monedas[m.ID] = m
	return m
}

func (r *memMonedaRepo) agregarCotizacion(monedaID uuid.UUID, fecha string, valor int64) {
	f, _ := time.Parse("2006-01-02", fecha)
	r.cotizaciones = append(r.cotizaciones, model.CotizacionMoneda{
		ID:               uuid.New(),
		MonedaID:         monedaID,
		Fecha:            f,
		ValorEnGuaranies: decimal.NewFromInt(valor),
	})
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearMoneda_CodigoDuplicado(t *testing.T) {
	svc, _ := monedaFixture(t)

	_, err := svc.Crear(context.Background(), dto.CrearMonedaRequest{Nombre: "Dólar", Simbolo: "US$", Codigo: "USD"})
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), dto.CrearMonedaRequest{Nombre: "Dólar americano", Simbolo: "$", Codigo: "usd"})
	requireKind(t, err, "conflicto")
}

func TestRegistrarCotizacion_GuaraniNoLlevaCotizacion(t *testing.T) {
	svc, repo := monedaFixture(t)
	pyg := repo.agregarMoneda("PYG", "Guaraní", "₲")

	_, err := svc.RegistrarCotizacion(context.Background(), dto.CrearCotizacionRequest{
		MonedaID:         pyg.ID.String(),
		Fecha:            "2026-08-01",
		ValorEnGuaranies: decimal.NewFromInt(1),
	})
	requireKind(t, err, "validacion")
}

func TestConvertir_UsaCotizacionVigenteMasReciente(t *testing.T) {
	svc, repo := monedaFixture(t)
	usd := repo.agregarMoneda("USD", "Dólar", "US$")
	repo.agregarCotizacion(usd.ID, "2026-08-01", 7_200)
	repo.agregarCotizacion(usd.ID, "2026-08-15", 7_300)
	repo.agregarCotizacion(usd.ID, "2026-09-10", 7_500) // futura respecto a la consulta

	fecha := "2026-08-20"
	resp, err := svc.Convertir(context.Background(), dto.ConvertirRequest{
		Monto:   decimal.NewFromInt(100),
		Origen:  "USD",
		Destino: "PYG",
		Fecha:   &fecha,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(730_000).Equal(resp.MontoConvertido),
		"100 USD a 7.300 = 730.000 Gs, tengo %s", resp.MontoConvertido)
}

func TestConvertir_EntreMonedasPasaPorGuaranies(t *testing.T) {
	svc, repo := monedaFixture(t)
	usd := repo.agregarMoneda("USD", "Dólar", "US$")
	brl := repo.agregarMoneda("BRL", "Real", "R$")
	repo.agregarCotizacion(usd.ID, "2026-08-01", 7_300)
	repo.agregarCotizacion(brl.ID, "2026-08-01", 1_460)

	fecha := "2026-08-01"
	resp, err := svc.Convertir(context.Background(), dto.ConvertirRequest{
		Monto:   decimal.NewFromInt(100),
		Origen:  "USD",
		Destino: "BRL",
		Fecha:   &fecha,
	})
	require.NoError(t, err)
	// 100 * 7300 / 1460 = 500
	assert.True(t, decimal.NewFromInt(500).Equal(resp.MontoConvertido),
		"tengo %s", resp.MontoConvertido)
	assert.True(t, decimal.NewFromInt(5).Equal(resp.CotizacionUsada))
}

func TestConvertir_SinCotizacionFallaDuro(t *testing.T) {
	svc, repo := monedaFixture(t)
	usd := repo.agregarMoneda("USD", "Dólar", "US$")
	repo.agregarCotizacion(usd.ID, "2026-08-15", 7_300)

	// Antes de la primera cotización registrada no hay tasa vigente
	fecha := "2026-08-01"
	_, err := svc.Convertir(context.Background(), dto.ConvertirRequest{
		Monto:   decimal.NewFromInt(100),
		Origen:  "USD",
		Destino: "PYG",
		Fecha:   &fecha,
	})
	requireKind(t, err, "estado_invalido")
}

func TestConvertir_MonedaDesconocida(t *testing.T) {
	svc, _ := monedaFixture(t)

	_, err := svc.Convertir(context.Background(), dto.ConvertirRequest{
		Monto:   decimal.NewFromInt(100),
		Origen:  "EUR",
		Destino: "PYG",
	})
	requireKind(t, err, "no_encontrado")
}
