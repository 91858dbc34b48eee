package worker

// email_worker.go
// Processes email jobs from QueueEmail. Two shapes arrive here: direct jobs
// carrying to/subject/body/pdf_path, and "comprobante" jobs that only name a
// record id; for the latter the recipient is the booking titular and the PDF
// is regenerated if it doesn't exist yet.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Tipo    string `json:"tipo,omitempty"`
	ID      string `json:"id,omitempty"`
	To      string `json:"to,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	PDFPath string `json:"pdf_path,omitempty"`
}

type EmailWorker struct {
	mailer       *infra.Mailer
	comprobantes repository.ComprobanteRepository
	storagePath  string
}

func NewEmailWorker(mailer *infra.Mailer, comprobantes repository.ComprobanteRepository, storagePath string) *EmailWorker {
	return &EmailWorker{mailer: mailer, comprobantes: comprobantes, storagePath: storagePath}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}

	if payload.Tipo == "comprobante" {
		w.enviarComprobante(ctx, payload.ID)
		return
	}

	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return
	}
	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.To).Msg("email_worker: email sent")
}

func (w *EmailWorker) enviarComprobante(ctx context.Context, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Error().Str("id", rawID).Msg("email_worker: invalid comprobante id")
		return
	}
	comprobante, err := w.comprobantes.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("comprobante_id", rawID).Msg("email_worker: comprobante not found")
		return
	}
	if comprobante.Reserva == nil || comprobante.Reserva.Titular == nil ||
		comprobante.Reserva.Titular.Email == nil || *comprobante.Reserva.Titular.Email == "" {
		log.Debug().Str("comprobante", comprobante.Codigo).Msg("email_worker: titular has no email — skipping")
		return
	}

	// The PDF job may not have run yet; regenerate inline when missing.
	pdfPath := ""
	if comprobante.PDFPath != nil {
		pdfPath = *comprobante.PDFPath
	} else {
		generated, genErr := infra.GenerarComprobantePDF(comprobante, w.storagePath)
		if genErr != nil {
			log.Warn().Err(genErr).Str("comprobante", comprobante.Codigo).Msg("email_worker: PDF generation failed, sending without attachment")
		} else {
			pdfPath = generated
			comprobante.PDFPath = &generated
			comprobante.PDFGenerado = true
			_ = w.comprobantes.Update(ctx, w.comprobantes.DB(), comprobante)
		}
	}

	subject := "Comprobante de pago " + comprobante.Codigo
	body := fmt.Sprintf("Adjuntamos su comprobante de pago por %s.\nReserva: %s",
		comprobante.Monto.StringFixed(2), comprobante.Reserva.Codigo)
	if !comprobante.Activo {
		subject = "Anulación de comprobante " + comprobante.Codigo
		body = fmt.Sprintf("Le informamos que el comprobante %s fue anulado.", comprobante.Codigo)
	}

	if err := w.mailer.Send(*comprobante.Reserva.Titular.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("comprobante", comprobante.Codigo).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("comprobante", comprobante.Codigo).Str("to", *comprobante.Reserva.Titular.Email).Msg("email_worker: comprobante sent")
}
