package worker

// facturacion_worker.go
// Processes SIFEN submission jobs from QueueFacturacion: facturas and notas
// de crédito electrónicas. On approval it stores the CDC and QR, renders the
// KuDE and emails it to the receptor. Transport failures schedule a retry
// with exponential backoff; MaxFacturaRetries exceeded moves the job to the
// dead letter queue for manual inspection.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxFacturaRetries = 5

// FacturacionJobPayload is the job envelope sent to QueueFacturacion.
// Tipo: "factura" | "nota_credito"
type FacturacionJobPayload struct {
	Tipo string `json:"tipo"`
	ID   string `json:"id"`
}

type FacturacionWorker struct {
	sifen          *infra.SIFENClient
	repo           repository.FacturacionRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
}

func NewFacturacionWorker(
	sifen *infra.SIFENClient,
	repo repository.FacturacionRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
) *FacturacionWorker {
	return &FacturacionWorker{
		sifen:          sifen,
		repo:           repo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *FacturacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FacturacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("facturacion_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		log.Error().Str("id", payload.ID).Msg("facturacion_worker: invalid id")
		return
	}

	switch payload.Tipo {
	case "factura":
		w.procesarFactura(ctx, id)
	case "nota_credito":
		w.procesarNotaCredito(ctx, id)
	default:
		log.Warn().Str("tipo", payload.Tipo).Msg("facturacion_worker: unknown document type")
	}
}

func (w *FacturacionWorker) procesarFactura(ctx context.Context, id uuid.UUID) {
	factura, err := w.repo.FindFacturaByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("factura_id", id.String()).Msg("facturacion_worker: factura not found")
		return
	}
	if factura.Estado == "emitida" {
		return // already approved, likely a duplicate job
	}

	resp, sifenErr := w.sifen.EnviarDocumento(ctx, armarPayloadFactura(factura))
	if sifenErr != nil {
		w.programarReintento(ctx, factura, sifenErr)
		return
	}

	if !resp.Aprobado() {
		factura.Estado = "rechazada"
		msg := resp.PrimerMensaje()
		factura.LastError = &msg
		factura.NextRetryAt = nil
		if err := w.repo.UpdateFactura(ctx, factura); err != nil {
			log.Error().Err(err).Str("factura_id", id.String()).Msg("facturacion_worker: update failed")
		}
		log.Warn().Str("factura", numeroDe(factura)).Str("motivo", msg).Msg("facturacion_worker: SIFEN rechazó la factura")
		return
	}

	factura.Estado = "emitida"
	cdc := resp.CDC
	factura.CDC = &cdc
	if resp.QRData != "" {
		qr := resp.QRData
		factura.ContenidoQR = &qr
	}
	factura.NextRetryAt = nil
	factura.LastError = nil

	if pdfPath, pdfErr := infra.GenerarKudePDF(factura, w.pdfStoragePath); pdfErr != nil {
		log.Warn().Err(pdfErr).Str("factura", numeroDe(factura)).Msg("facturacion_worker: KuDE generation failed")
	} else {
		factura.PDFPath = &pdfPath
	}

	if err := w.repo.UpdateFactura(ctx, factura); err != nil {
		log.Error().Err(err).Str("factura_id", id.String()).Msg("facturacion_worker: update failed")
		return
	}
	log.Info().Str("factura", numeroDe(factura)).Str("cdc", cdc).Msg("facturacion_worker: factura emitida")

	w.enviarKudePorEmail(ctx, factura)
}

func (w *FacturacionWorker) procesarNotaCredito(ctx context.Context, id uuid.UUID) {
	nota, err := w.repo.FindNotaCreditoByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("nota_id", id.String()).Msg("facturacion_worker: nota de crédito not found")
		return
	}
	if nota.Estado == "emitida" {
		return
	}
	factura, err := w.repo.FindFacturaByID(ctx, nota.FacturaID)
	if err != nil {
		log.Error().Err(err).Str("nota", nota.Numero).Msg("facturacion_worker: factura asociada not found")
		return
	}

	payload := armarPayloadFactura(factura)
	payload.TipoDocumento = 5
	payload.Numero = nota.Numero
	payload.FechaEmision = nota.FechaEmision.Format("2006-01-02")
	payload.TotalGeneral = nota.TotalGeneral.InexactFloat64()
	if factura.CDC != nil {
		payload.CDCAsociado = *factura.CDC
	}

	resp, sifenErr := w.sifen.EnviarDocumento(ctx, payload)
	if sifenErr != nil {
		// Notas de crédito carry no retry bookkeeping: straight to the DLQ.
		raw, _ := json.Marshal(FacturacionJobPayload{Tipo: "nota_credito", ID: id.String()})
		SendToDLQ(ctx, w.rdb, QueueFacturacion, "nota_credito", raw, sifenErr.Error(), 1)
		return
	}

	if resp.Aprobado() {
		nota.Estado = "emitida"
		log.Info().Str("nota", nota.Numero).Str("cdc", resp.CDC).Msg("facturacion_worker: nota de crédito emitida")
	} else {
		nota.Estado = "rechazada"
		log.Warn().Str("nota", nota.Numero).Str("motivo", resp.PrimerMensaje()).Msg("facturacion_worker: SIFEN rechazó la nota de crédito")
	}
	if err := w.repo.UpdateNotaCredito(ctx, nota); err != nil {
		log.Error().Err(err).Str("nota", nota.Numero).Msg("facturacion_worker: update failed")
	}
}

// programarReintento marks the factura for the retry cron, or sends it to the
// DLQ when the retry budget ran out.
func (w *FacturacionWorker) programarReintento(ctx context.Context, factura *model.FacturaElectronica, cause error) {
	factura.RetryCount++
	msg := cause.Error()
	factura.LastError = &msg
	factura.Estado = "error"

	if factura.RetryCount >= MaxFacturaRetries {
		factura.NextRetryAt = nil
		raw, _ := json.Marshal(FacturacionJobPayload{Tipo: "factura", ID: factura.ID.String()})
		SendToDLQ(ctx, w.rdb, QueueFacturacion, "factura", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxFacturaRetries, msg),
			factura.RetryCount)
	} else {
		next := time.Now().Add(computeRetryBackoff(factura.RetryCount))
		factura.NextRetryAt = &next
		log.Warn().
			Str("factura", numeroDe(factura)).
			Int("retry_count", factura.RetryCount).
			Time("next_retry_at", next).
			Msg("facturacion_worker: SIFEN failed, scheduled next attempt")
	}

	if err := w.repo.UpdateFactura(ctx, factura); err != nil {
		log.Error().Err(err).Str("factura_id", factura.ID.String()).Msg("facturacion_worker: update failed")
	}
}

func (w *FacturacionWorker) enviarKudePorEmail(ctx context.Context, factura *model.FacturaElectronica) {
	if factura.Receptor == nil || factura.Receptor.Email == nil || *factura.Receptor.Email == "" {
		return
	}
	pdfPath := ""
	if factura.PDFPath != nil {
		pdfPath = *factura.PDFPath
	}
	job := EmailJobPayload{
		To:      *factura.Receptor.Email,
		Subject: "Factura electrónica " + numeroDe(factura),
		Body:    fmt.Sprintf("Adjuntamos su factura electrónica por un total de %s.", factura.TotalGeneral.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("factura", numeroDe(factura)).Msg("facturacion_worker: failed to enqueue email")
	}
}

// armarPayloadFactura maps the persisted invoice onto the SIFEN wire format.
func armarPayloadFactura(f *model.FacturaElectronica) infra.SIFENPayload {
	payload := infra.SIFENPayload{
		TipoDocumento:  1,
		TotalGravado10: f.TotalGravado10.InexactFloat64(),
		TotalGravado5:  f.TotalGravado5.InexactFloat64(),
		TotalExentas:   f.TotalExentas.InexactFloat64(),
		TotalIVA:       f.TotalIVA.InexactFloat64(),
		TotalGeneral:   f.TotalGeneral.InexactFloat64(),
		Moneda:         "PYG",
	}
	if f.Numero != nil {
		payload.Numero = *f.Numero
	}
	if f.Timbrado != nil {
		payload.Timbrado = f.Timbrado.Numero
	}
	if f.Establecimiento != nil {
		payload.Establecimiento = f.Establecimiento.Codigo
	}
	if f.PuntoExpedicion != nil {
		payload.PuntoExpedicion = f.PuntoExpedicion.Codigo
	}
	if f.FechaEmision != nil {
		payload.FechaEmision = f.FechaEmision.Format("2006-01-02")
	}
	if f.CondicionVenta != nil {
		payload.CondicionVenta = *f.CondicionVenta
	}
	if f.Receptor != nil {
		payload.RUCReceptor = f.Receptor.NumeroDocumento
		payload.NombreReceptor = f.Receptor.NombreCompleto()
	}
	for _, d := range f.Detalles {
		payload.Detalles = append(payload.Detalles, infra.SIFENDetalle{
			Descripcion:    d.Descripcion,
			Cantidad:       d.Cantidad.InexactFloat64(),
			PrecioUnitario: d.PrecioUnitario.InexactFloat64(),
			TasaIVA:        d.TasaIVA,
			MontoIVA:       d.MontoIVA.InexactFloat64(),
			MontoTotal:     d.MontoTotal.InexactFloat64(),
		})
	}
	return payload
}

// computeRetryBackoff: 1m, 2m, 4m, 8m … capped at 1h.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if backoff > time.Hour {
		return time.Hour
	}
	return backoff
}

func numeroDe(f *model.FacturaElectronica) string {
	if f.Numero != nil {
		return *f.Numero
	}
	return f.ID.String()
}
