package service

import (
	"context"
	"os"
	"testing"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memVoucherRepo struct {
	vouchers []*model.Voucher
}

var _ repository.VoucherRepository = (*memVoucherRepo)(nil)

func (r *memVoucherRepo) Create(_ context.Context, _ *gorm.DB, v *model.Voucher) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	copia := *v
	r.vouchers = append(r.vouchers, &copia)
	return nil
}

func (r *memVoucherRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Voucher, error) {
	for _, v := range r.vouchers {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memVoucherRepo) FindByPasajero(_ context.Context, pasajeroID uuid.UUID) (*model.Voucher, error) {
	for _, v := range r.vouchers {
		if v.PasajeroID == pasajeroID {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memVoucherRepo) FindByCodigo(_ context.Context, codigo string) (*model.Voucher, error) {
	for _, v := range r.vouchers {
		if v.Codigo == codigo {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memVoucherRepo) ListByReserva(_ context.Context, reservaID uuid.UUID) ([]model.Voucher, error) {
	var items []model.Voucher
	for _, v := range r.vouchers {
		if v.ReservaID == reservaID {
			items = append(items, *v)
		}
	}
	return items, nil
}

func (r *memVoucherRepo) Update(_ context.Context, v *model.Voucher) error {
	for i := range r.vouchers {
		if r.vouchers[i].ID == v.ID {
			copia := *v
			r.vouchers[i] = &copia
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func pasajeroPagado(reservaID uuid.UUID) *model.Pasajero {
	return &model.Pasajero{
		ID:             uuid.New(),
		ReservaID:      reservaID,
		PrecioAsignado: decimal.NewFromInt(3_000_000),
		MontoPagado:    decimal.NewFromInt(3_000_000),
	}
}

func TestEmitirVoucher_CodigoYContenidoQR(t *testing.T) {
	repo := &memVoucherRepo{}
	svc := NewVoucherService(repo, nil, t.TempDir())

	reserva := &model.Reserva{ID: uuid.New(), Codigo: "RSV-2026-0007"}
	p1 := pasajeroPagado(reserva.ID)
	p2 := pasajeroPagado(reserva.ID)

	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, p1))
	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, p2))

	require.Len(t, repo.vouchers, 2)
	assert.Equal(t, "RSV-2026-0007-VOUCHER", repo.vouchers[0].Codigo)
	assert.Equal(t, "RSV-2026-0007-VOUCHER-2", repo.vouchers[1].Codigo)
	assert.Equal(t, "VOUCHER:RSV-2026-0007-VOUCHER|RESERVA:RSV-2026-0007", repo.vouchers[0].ContenidoQR)
}

func TestEmitirVoucher_EsIdempotente(t *testing.T) {
	repo := &memVoucherRepo{}
	svc := NewVoucherService(repo, nil, t.TempDir())

	reserva := &model.Reserva{ID: uuid.New(), Codigo: "RSV-2026-0008"}
	pasajero := pasajeroPagado(reserva.ID)

	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, pasajero))
	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, pasajero))

	assert.Len(t, repo.vouchers, 1)
}

func TestEmitirVoucher_PasajeroNoElegibleNoEmite(t *testing.T) {
	repo := &memVoucherRepo{}
	svc := NewVoucherService(repo, nil, t.TempDir())
	reserva := &model.Reserva{ID: uuid.New(), Codigo: "RSV-2026-0009"}

	porAsignar := pasajeroPagado(reserva.ID)
	porAsignar.PorAsignar = true
	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, porAsignar))

	impago := pasajeroPagado(reserva.ID)
	impago.MontoPagado = decimal.NewFromInt(1_000_000)
	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, impago))

	assert.Empty(t, repo.vouchers)
}

func TestObtenerVoucherPDF_GeneraSiElWorkerNoCorrio(t *testing.T) {
	repo := &memVoucherRepo{}
	svc := NewVoucherService(repo, nil, t.TempDir())

	reserva := &model.Reserva{ID: uuid.New(), Codigo: "RSV-2026-0011"}
	pasajero := pasajeroPagado(reserva.ID)
	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, pasajero))

	voucher := repo.vouchers[0]
	require.Nil(t, voucher.PDFPath, "sin dispatcher el worker nunca corre")

	path, nombre, err := svc.ObtenerPDF(context.Background(), voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, voucher.Codigo+".pdf", nombre)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// La ruta queda persistida y la segunda descarga no regenera
	require.NotNil(t, repo.vouchers[0].PDFPath)
	path2, _, err := svc.ObtenerPDF(context.Background(), voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
}

func TestObtenerVoucherPorCodigo(t *testing.T) {
	repo := &memVoucherRepo{}
	svc := NewVoucherService(repo, nil, t.TempDir())

	reserva := &model.Reserva{ID: uuid.New(), Codigo: "RSV-2026-0010"}
	pasajero := pasajeroPagado(reserva.ID)
	require.NoError(t, svc.EmitirParaPasajero(context.Background(), nil, reserva, pasajero))

	resp, err := svc.ObtenerPorCodigo(context.Background(), "RSV-2026-0010-VOUCHER")
	require.NoError(t, err)
	assert.Equal(t, reserva.ID.String(), resp.ReservaID)

	_, err = svc.ObtenerPorCodigo(context.Background(), "RSV-2026-9999-VOUCHER")
	requireKind(t, err, "no_encontrado")
}
