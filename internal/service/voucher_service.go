package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type VoucherService interface {
	// EmitirParaPasajero issues the voucher of a fully paid passenger with
	// real identity data. Idempotent: an existing voucher is left untouched.
	EmitirParaPasajero(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, pasajero *model.Pasajero) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VoucherResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.VoucherResponse, error)
	ListPorReserva(ctx context.Context, reservaID uuid.UUID) ([]dto.VoucherResponse, error)
	// ObtenerPDF returns the voucher file, generating it on the spot when the
	// worker hasn't produced it yet.
	ObtenerPDF(ctx context.Context, id uuid.UUID) (string, string, error)
}

type voucherService struct {
	repo        repository.VoucherRepository
	dispatcher  JobDispatcher
	storagePath string
}

func NewVoucherService(repo repository.VoucherRepository, dispatcher JobDispatcher, storagePath string) VoucherService {
	return &voucherService{repo: repo, dispatcher: dispatcher, storagePath: storagePath}
}

func (s *voucherService) EmitirParaPasajero(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, pasajero *model.Pasajero) error {
	if pasajero.PorAsignar || !pasajero.EstaTotalmentePagado() {
		return nil
	}
	if _, err := s.repo.FindByPasajero(ctx, pasajero.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existentes, err := s.repo.ListByReserva(ctx, reserva.ID)
	if err != nil {
		return err
	}
	codigo := fmt.Sprintf("%s-VOUCHER", reserva.Codigo)
	if len(existentes) > 0 {
		codigo = fmt.Sprintf("%s-VOUCHER-%d", reserva.Codigo, len(existentes)+1)
	}

	voucher := model.Voucher{
		Codigo:      codigo,
		ReservaID:   reserva.ID,
		PasajeroID:  pasajero.ID,
		ContenidoQR: fmt.Sprintf("VOUCHER:%s|RESERVA:%s", codigo, reserva.Codigo),
		Activo:      true,
	}
	if err := s.repo.Create(ctx, tx, &voucher); err != nil {
		return err
	}
	log.Info().
		Str("voucher", voucher.Codigo).
		Str("reserva", reserva.Codigo).
		Msg("voucher emitido")

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueuePDF(ctx, map[string]string{
			"tipo": "voucher",
			"id":   voucher.ID.String(),
		}); err != nil {
			// La emisión ya está persistida; el PDF se regenera a demanda.
			log.Error().Err(err).Str("voucher", voucher.Codigo).Msg("no se pudo encolar el PDF del voucher")
		}
	}
	return nil
}

func (s *voucherService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VoucherResponse, error) {
	voucher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("voucher no encontrado")
	}
	return voucherToResponse(voucher), nil
}

func (s *voucherService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.VoucherResponse, error) {
	voucher, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, apierror.NoEncontrado("voucher no encontrado")
	}
	return voucherToResponse(voucher), nil
}

func (s *voucherService) ObtenerPDF(ctx context.Context, id uuid.UUID) (string, string, error) {
	voucher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", "", apierror.NoEncontrado("voucher no encontrado")
	}
	if voucher.PDFPath == nil {
		path, err := infra.GenerarVoucherPDF(voucher, s.storagePath)
		if err != nil {
			return "", "", err
		}
		voucher.PDFPath = &path
		if err := s.repo.Update(ctx, voucher); err != nil {
			return "", "", err
		}
	}
	return *voucher.PDFPath, voucher.Codigo + ".pdf", nil
}

func (s *voucherService) ListPorReserva(ctx context.Context, reservaID uuid.UUID) ([]dto.VoucherResponse, error) {
	vouchers, err := s.repo.ListByReserva(ctx, reservaID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		items = append(items, *voucherToResponse(&vouchers[i]))
	}
	return items, nil
}

func voucherToResponse(v *model.Voucher) *dto.VoucherResponse {
	resp := &dto.VoucherResponse{
		ID:          v.ID.String(),
		Codigo:      v.Codigo,
		ReservaID:   v.ReservaID.String(),
		ContenidoQR: v.ContenidoQR,
		PDFPath:     v.PDFPath,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
	if v.Pasajero != nil && v.Pasajero.Persona != nil {
		resp.Pasajero = v.Pasajero.Persona.NombreCompleto()
	}
	return resp
}
