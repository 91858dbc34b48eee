package worker

// pdf_worker.go
// Renders receipts and vouchers off the request path. Regeneration is safe:
// the output file is overwritten and the stored path refreshed.

import (
	"context"
	"encoding/json"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PDFJobPayload is the job envelope sent to QueuePDF.
// Tipo: "comprobante" | "voucher"
type PDFJobPayload struct {
	Tipo string `json:"tipo"`
	ID   string `json:"id"`
}

type PDFWorker struct {
	comprobantes repository.ComprobanteRepository
	vouchers     repository.VoucherRepository
	storagePath  string
}

func NewPDFWorker(
	comprobantes repository.ComprobanteRepository,
	vouchers repository.VoucherRepository,
	storagePath string,
) *PDFWorker {
	return &PDFWorker{comprobantes: comprobantes, vouchers: vouchers, storagePath: storagePath}
}

func (w *PDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload PDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		log.Error().Str("id", payload.ID).Msg("pdf_worker: invalid id")
		return
	}

	switch payload.Tipo {
	case "comprobante":
		w.generarComprobante(ctx, id)
	case "voucher":
		w.generarVoucher(ctx, id)
	default:
		log.Warn().Str("tipo", payload.Tipo).Msg("pdf_worker: unknown document type")
	}
}

func (w *PDFWorker) generarComprobante(ctx context.Context, id uuid.UUID) {
	comprobante, err := w.comprobantes.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("comprobante_id", id.String()).Msg("pdf_worker: comprobante not found")
		return
	}
	path, err := infra.GenerarComprobantePDF(comprobante, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("comprobante", comprobante.Codigo).Msg("pdf_worker: generation failed")
		return
	}
	comprobante.PDFPath = &path
	comprobante.PDFGenerado = true
	if err := w.comprobantes.Update(ctx, w.comprobantes.DB(), comprobante); err != nil {
		log.Error().Err(err).Str("comprobante", comprobante.Codigo).Msg("pdf_worker: update failed")
		return
	}
	log.Info().Str("comprobante", comprobante.Codigo).Str("pdf", path).Msg("pdf_worker: comprobante PDF generated")
}

func (w *PDFWorker) generarVoucher(ctx context.Context, id uuid.UUID) {
	voucher, err := w.vouchers.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("voucher_id", id.String()).Msg("pdf_worker: voucher not found")
		return
	}
	path, err := infra.GenerarVoucherPDF(voucher, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("voucher", voucher.Codigo).Msg("pdf_worker: generation failed")
		return
	}
	voucher.PDFPath = &path
	if err := w.vouchers.Update(ctx, voucher); err != nil {
		log.Error().Err(err).Str("voucher", voucher.Codigo).Msg("pdf_worker: update failed")
		return
	}
	log.Info().Str("voucher", voucher.Codigo).Str("pdf", path).Msg("pdf_worker: voucher PDF generated")
}
