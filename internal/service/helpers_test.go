package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// requireKind asserts the error is an *apierror.APIError of the given kind.
func requireKind(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*apierror.APIError)
	require.True(t, ok, "esperaba *apierror.APIError, tengo %T: %v", err, err)
	require.Equal(t, kind, apiErr.Kind, "detalle: %s", apiErr.Detail)
}

// memSecuencias counts per scope; good enough for code formatting tests.
type memSecuencias struct {
	valores map[string]int64
}

var _ repository.SecuenciaRepository = (*memSecuencias)(nil)

func newMemSecuencias() *memSecuencias { return &memSecuencias{valores: make(map[string]int64)} }

func (s *memSecuencias) Next(_ context.Context, _ *gorm.DB, scope string, _ int) (int64, error) {
	s.valores[scope]++
	return s.valores[scope], nil
}

// fakePersonas serves personas and empleados from maps. Methods not
// overridden panic, which is what we want: they must not be reached.
type fakePersonas struct {
	repository.PersonaRepository
	personas  map[uuid.UUID]*model.Persona
	empleados map[uuid.UUID]*model.Empleado
}

func newFakePersonas() *fakePersonas {
	return &fakePersonas{
		personas:  make(map[uuid.UUID]*model.Persona),
		empleados: make(map[uuid.UUID]*model.Empleado),
	}
}

func (f *fakePersonas) DB() *gorm.DB { return nil }

func (f *fakePersonas) Create(_ context.Context, _ *gorm.DB, p *model.Persona) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.personas[p.ID] = p
	return nil
}

func (f *fakePersonas) FindByID(_ context.Context, id uuid.UUID) (*model.Persona, error) {
	if p, ok := f.personas[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePersonas) FindEmpleadoByID(_ context.Context, id uuid.UUID) (*model.Empleado, error) {
	if e, ok := f.empleados[id]; ok {
		return e, nil
	}
	return nil, errors.New("empleado no encontrado")
}

// agregarPersona registers a persona with a fresh id and returns it.
func (f *fakePersonas) agregarPersona(tipo, documento, nombre string, apellido *string) *model.Persona {
	p := &model.Persona{
		ID:              uuid.New(),
		Tipo:            tipo,
		NumeroDocumento: documento,
		Nombre:          nombre,
		Apellido:        apellido,
		Activo:          true,
	}
	f.personas[p.ID] = p
	return p
}

// agregarEmpleado registers an empleado backed by a persona.
func (f *fakePersonas) agregarEmpleado(nombre, apellido string) *model.Empleado {
	p := f.agregarPersona("fisica", uuid.NewString()[:7], nombre, &apellido)
	e := &model.Empleado{ID: uuid.New(), PersonaID: p.ID, Persona: p, Activo: true}
	f.empleados[e.ID] = e
	return e
}

// fakeFacturacion covers the reads the caja, reserva and nota de crédito
// flows make.
type fakeFacturacion struct {
	repository.FacturacionRepository
	puntos        map[uuid.UUID]*model.PuntoExpedicion
	notas         map[uuid.UUID][]model.NotaCreditoElectronica
	facturas      map[uuid.UUID]*model.FacturaElectronica
	notasFac      map[uuid.UUID][]model.NotaCreditoElectronica
	tiposImpuesto []model.TipoImpuesto
}

func newFakeFacturacion() *fakeFacturacion {
	return &fakeFacturacion{
		puntos:   make(map[uuid.UUID]*model.PuntoExpedicion),
		notas:    make(map[uuid.UUID][]model.NotaCreditoElectronica),
		facturas: make(map[uuid.UUID]*model.FacturaElectronica),
		notasFac: make(map[uuid.UUID][]model.NotaCreditoElectronica),
	}
}

func (f *fakeFacturacion) DB() *gorm.DB { return nil }

func (f *fakeFacturacion) FindFacturaByID(_ context.Context, id uuid.UUID) (*model.FacturaElectronica, error) {
	if fac, ok := f.facturas[id]; ok {
		return fac, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFacturacion) ListNotasCreditoPorFactura(_ context.Context, facturaID uuid.UUID) ([]model.NotaCreditoElectronica, error) {
	return f.notasFac[facturaID], nil
}

func (f *fakeFacturacion) CreateNotaCredito(_ context.Context, _ *gorm.DB, nc *model.NotaCreditoElectronica) error {
	if nc.ID == uuid.Nil {
		nc.ID = uuid.New()
	}
	f.notasFac[nc.FacturaID] = append(f.notasFac[nc.FacturaID], *nc)
	return nil
}

func (f *fakeFacturacion) UpdateFactura(_ context.Context, fac *model.FacturaElectronica) error {
	if _, ok := f.facturas[fac.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.facturas[fac.ID] = fac
	return nil
}

func (f *fakeFacturacion) ListTiposImpuesto(_ context.Context) ([]model.TipoImpuesto, error) {
	return f.tiposImpuesto, nil
}

func (f *fakeFacturacion) FindPuntoExpedicionByID(_ context.Context, id uuid.UUID) (*model.PuntoExpedicion, error) {
	if p, ok := f.puntos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFacturacion) ListNotasCreditoPorReserva(_ context.Context, reservaID uuid.UUID) ([]model.NotaCreditoElectronica, error) {
	return f.notas[reservaID], nil
}
