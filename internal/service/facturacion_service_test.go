package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularDetalles_IVAIncluidoEnElPrecio(t *testing.T) {
	detalles, totales, err := calcularDetalles([]dto.DetalleFacturaRequest{
		{Descripcion: "Paquete Río 7 días", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(1_100_000), TasaIVA: 10},
		{Descripcion: "Seguro de viaje", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(105_000), TasaIVA: 5},
		{Descripcion: "Tasa de embarque", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(50_000), TasaIVA: 0},
	})
	require.NoError(t, err)
	require.Len(t, detalles, 3)

	// 1.100.000/11 = 100.000 y 210.000/21 = 10.000
	assert.True(t, decimal.NewFromInt(100_000).Equal(detalles[0].MontoIVA))
	assert.True(t, decimal.NewFromInt(10_000).Equal(detalles[1].MontoIVA))
	assert.True(t, detalles[2].MontoIVA.IsZero())

	assert.True(t, decimal.NewFromInt(1_100_000).Equal(totales.gravado10))
	assert.True(t, decimal.NewFromInt(210_000).Equal(totales.gravado5))
	assert.True(t, decimal.NewFromInt(50_000).Equal(totales.exentas))
	assert.True(t, decimal.NewFromInt(110_000).Equal(totales.iva))
	assert.True(t, decimal.NewFromInt(1_360_000).Equal(totales.general))
}

func TestCalcularDetalles_TasaInvalida(t *testing.T) {
	_, _, err := calcularDetalles([]dto.DetalleFacturaRequest{
		{Descripcion: "Item", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(100), TasaIVA: 7},
	})
	requireKind(t, err, "validacion")
}

func TestCalcularDetalles_CantidadNoPositiva(t *testing.T) {
	_, _, err := calcularDetalles([]dto.DetalleFacturaRequest{
		{Descripcion: "Item", Cantidad: decimal.Zero, PrecioUnitario: decimal.NewFromInt(100), TasaIVA: 10},
	})
	requireKind(t, err, "validacion")
}

func TestNumeracion(t *testing.T) {
	secuencias := newMemSecuencias()
	ctx := context.Background()

	n1, err := nextNumeroFactura(ctx, nil, secuencias, "001", "002")
	require.NoError(t, err)
	n2, err := nextNumeroFactura(ctx, nil, secuencias, "001", "002")
	require.NoError(t, err)
	assert.Equal(t, "001-002-0000001", n1)
	assert.Equal(t, "001-002-0000002", n2)

	// Otro punto de expedición lleva su propio correlativo
	n3, err := nextNumeroFactura(ctx, nil, secuencias, "001", "003")
	require.NoError(t, err)
	assert.Equal(t, "001-003-0000001", n3)

	ahora := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	codigo, err := nextCodigo(ctx, nil, secuencias, scopeComprobante, ahora)
	require.NoError(t, err)
	assert.Equal(t, "CPG-2026-0001", codigo)
}

func notaCreditoFixture(t *testing.T) (FacturacionService, *fakeFacturacion, uuid.UUID) {
	t.Helper()
	facturacion := newFakeFacturacion()
	factura := &model.FacturaElectronica{
		ID:           uuid.New(),
		Estado:       "aprobada",
		TotalGeneral: decimal.NewFromInt(1_000_000),
	}
	facturacion.facturas[factura.ID] = factura

	svc := NewFacturacionService(facturacion, newFakePersonas(), nil, newMemSecuencias(), nil, t.TempDir())
	return svc, facturacion, factura.ID
}

func TestListTiposImpuesto_CatalogoConSubtipos(t *testing.T) {
	facturacion := newFakeFacturacion()
	descripcion := "Impuesto al Valor Agregado"
	facturacion.tiposImpuesto = []model.TipoImpuesto{
		{
			ID:          uuid.New(),
			Nombre:      "IVA",
			Descripcion: &descripcion,
			Subtipos: []model.SubtipoImpuesto{
				{ID: uuid.New(), Nombre: "IVA 10%", Porcentaje: 10},
				{ID: uuid.New(), Nombre: "IVA 5%", Porcentaje: 5},
				{ID: uuid.New(), Nombre: "Exenta", Porcentaje: 0},
			},
		},
	}
	svc := NewFacturacionService(facturacion, newFakePersonas(), nil, newMemSecuencias(), nil, t.TempDir())

	tipos, err := svc.ListTiposImpuesto(context.Background())
	require.NoError(t, err)
	require.Len(t, tipos, 1)
	assert.Equal(t, "IVA", tipos[0].Nombre)
	require.NotNil(t, tipos[0].Descripcion)
	require.Len(t, tipos[0].Subtipos, 3)
	assert.Equal(t, 10, tipos[0].Subtipos[0].Porcentaje)
	assert.Equal(t, "Exenta", tipos[0].Subtipos[2].Nombre)
}

func TestObtenerKude_GeneraSiElWorkerNoCorrio(t *testing.T) {
	facturacion := newFakeFacturacion()
	numero := "001-002-0000042"
	factura := &model.FacturaElectronica{
		ID:           uuid.New(),
		Numero:       &numero,
		Estado:       "aprobada",
		TotalGeneral: decimal.NewFromInt(1_100_000),
	}
	facturacion.facturas[factura.ID] = factura

	svc := NewFacturacionService(facturacion, newFakePersonas(), nil, newMemSecuencias(), nil, t.TempDir())

	path, nombre, err := svc.ObtenerKude(context.Background(), factura.ID)
	require.NoError(t, err)
	assert.Equal(t, "kude_001-002-0000042.pdf", nombre)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// La ruta queda persistida y la segunda descarga no regenera
	require.NotNil(t, facturacion.facturas[factura.ID].PDFPath)
	path2, _, err := svc.ObtenerKude(context.Background(), factura.ID)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
}

func TestEmitirNotaCredito_NoExcedeElTotalDeLaFactura(t *testing.T) {
	svc, facturacion, facturaID := notaCreditoFixture(t)
	facturacion.notasFac[facturaID] = []model.NotaCreditoElectronica{
		{ID: uuid.New(), FacturaID: facturaID, TotalGeneral: decimal.NewFromInt(800_000)},
	}

	_, err := svc.EmitirNotaCredito(context.Background(), dto.NotaCreditoRequest{
		FacturaID:    facturaID.String(),
		Motivo:       "devolución parcial",
		TotalGeneral: decimal.NewFromInt(300_000),
	})
	requireKind(t, err, "conflicto")

	resp, err := svc.EmitirNotaCredito(context.Background(), dto.NotaCreditoRequest{
		FacturaID:    facturaID.String(),
		Motivo:       "devolución parcial",
		TotalGeneral: decimal.NewFromInt(200_000),
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Estado)
	assert.True(t, strings.HasPrefix(resp.Numero, "NCE-"), "número inesperado %s", resp.Numero)
}

func TestEmitirNotaCredito_FacturaRechazada(t *testing.T) {
	svc, facturacion, facturaID := notaCreditoFixture(t)
	facturacion.facturas[facturaID].Estado = "rechazada"

	_, err := svc.EmitirNotaCredito(context.Background(), dto.NotaCreditoRequest{
		FacturaID:    facturaID.String(),
		Motivo:       "anulación",
		TotalGeneral: decimal.NewFromInt(100_000),
	})
	requireKind(t, err, "estado_invalido")
}
