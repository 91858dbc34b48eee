package infra

// pdf.go — internal PDF generation using go-pdf/fpdf.
// Four documents come out of here:
//   - Recibo de comprobante de pago (A7 thermal style, distribution table,
//     "ANULADO" watermark when voided)
//   - Reporte de cierre de caja (A5, totals by payment method)
//   - Voucher de viaje (A5 with QR for gate-side verification)
//   - KuDE de factura electrónica (A4 with QR from SIFEN)
//
// Files are written under storagePath and the returned path is persisted on
// the owning record so downloads don't regenerate. A download that arrives
// before the worker ran generates the file on the spot. The cierre report
// is the exception: it renders fresh on every download.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerarComprobantePDF renders the receipt of a payment comprobante.
func GenerarComprobantePDF(comprobante *model.ComprobantePago, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("comprobante_%s.pdf", comprobante.Codigo))

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "Group Tours", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	titulo := "Comprobante de Pago"
	if comprobante.EsDevolucion() {
		titulo = "Comprobante de Devolución"
	}
	pdf.CellFormat(contentW, 5, titulo, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Datos ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, comprobante.Codigo, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, comprobante.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if comprobante.Reserva != nil {
		pdf.CellFormat(contentW, 4, "Reserva: "+comprobante.Reserva.Codigo, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Método: "+comprobante.MetodoPago, "", 1, "L", false, 0, "")
	if comprobante.Referencia != nil && *comprobante.Referencia != "" {
		pdf.CellFormat(contentW, 4, "Ref: "+*comprobante.Referencia, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Distribución por pasajero ─────────────────────────────────────────────
	col1 := contentW * 0.62
	col2 := contentW * 0.38

	if len(comprobante.Distribuciones) > 0 {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(col1, 5, "Pasajero", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "Monto", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 7)
		for _, d := range comprobante.Distribuciones {
			nombre := "Pasajero"
			if d.Pasajero != nil && d.Pasajero.Persona != nil {
				nombre = d.Pasajero.Persona.NombreCompleto()
			}
			if len(nombre) > 26 {
				nombre = nombre[:25] + "…"
			}
			pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, d.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(1)
		pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
		pdf.Ln(1)
	}

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, comprobante.Monto.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por viajar con nosotros!", "", 1, "C", false, 0, "")

	if !comprobante.Activo {
		marcaAnulado(pdf, pageW, pageH, 30)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerarCierrePDF renders the arqueo report that closes a cashier session.
func GenerarCierrePDF(cierre *model.CierreCaja, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("cierre_%s.pdf", cierre.Codigo))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24
	col1 := contentW * 0.60
	col2 := contentW * 0.40

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, cierre.Codigo, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, cierre.FechaCierre.Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	fila := func(label, valor string, negrita bool) {
		estilo := ""
		if negrita {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 9)
		pdf.CellFormat(col1, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, valor, "", 1, "R", false, 0, "")
	}

	if cierre.Apertura != nil {
		fila("Monto inicial", cierre.Apertura.MontoInicial.StringFixed(2), false)
	}
	fila("Ventas en efectivo", cierre.TotalVentasEfectivo.StringFixed(2), false)
	fila("Ventas con tarjeta", cierre.TotalVentasTarjetas.StringFixed(2), false)
	fila("Transferencias", cierre.TotalTransferencias.StringFixed(2), false)
	fila("Cheques", cierre.TotalCheques.StringFixed(2), false)
	fila("Otros ingresos", cierre.TotalOtros.StringFixed(2), false)
	fila("Egresos", cierre.TotalEgresos.StringFixed(2), false)

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	fila("Saldo teórico en efectivo", cierre.SaldoTeoricoEfectivo.StringFixed(2), true)
	fila("Saldo teórico total", cierre.SaldoTeoricoTotal.StringFixed(2), true)
	fila("Efectivo contado", cierre.SaldoRealEfectivo.StringFixed(2), true)
	fila("Diferencia", cierre.Diferencia.StringFixed(2), true)
	if cierre.DiferenciaPorcentaje != nil {
		fila("Diferencia %", cierre.DiferenciaPorcentaje.StringFixed(2)+" %", false)
	}

	if cierre.RequiereAutorizacion {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(180, 0, 0)
		pdf.CellFormat(contentW, 6, "REQUIERE AUTORIZACIÓN DE SUPERVISOR", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		if cierre.AutorizadoPor != nil && cierre.AutorizadoPor.Persona != nil {
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(contentW, 5, "Autorizado por: "+cierre.AutorizadoPor.Persona.NombreCompleto(), "", 1, "C", false, 0, "")
		}
	}

	if cierre.Observaciones != nil && *cierre.Observaciones != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Obs: "+*cierre.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerarVoucherPDF renders the travel voucher with its verification QR.
func GenerarVoucherPDF(voucher *model.Voucher, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("voucher_%s.pdf", voucher.Codigo))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Voucher de Viaje", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, voucher.Codigo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	if voucher.Pasajero != nil && voucher.Pasajero.Persona != nil {
		pdf.CellFormat(contentW, 6, "Pasajero: "+voucher.Pasajero.Persona.NombreCompleto(), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 6, "Documento: "+voucher.Pasajero.Persona.NumeroDocumento, "", 1, "L", false, 0, "")
	}
	if voucher.Reserva != nil {
		pdf.CellFormat(contentW, 6, "Reserva: "+voucher.Reserva.Codigo, "", 1, "L", false, 0, "")
		if voucher.Reserva.Paquete != nil {
			pdf.CellFormat(contentW, 6, "Paquete: "+voucher.Reserva.Paquete.Nombre, "", 1, "L", false, 0, "")
			pdf.CellFormat(contentW, 6, "Destino: "+voucher.Reserva.Paquete.Destino, "", 1, "L", false, 0, "")
		}
		if voucher.Reserva.Salida != nil {
			pdf.CellFormat(contentW, 6, "Salida: "+voucher.Reserva.Salida.FechaSalida.Format("02/01/2006"), "", 1, "L", false, 0, "")
			if voucher.Reserva.Salida.FechaRegreso != nil {
				pdf.CellFormat(contentW, 6, "Regreso: "+voucher.Reserva.Salida.FechaRegreso.Format("02/01/2006"), "", 1, "L", false, 0, "")
			}
		}
	}

	if err := insertarQR(pdf, voucher.ContenidoQR, (pageW-40)/2, pdf.GetY()+6, 40); err != nil {
		return "", err
	}

	pdf.SetY(pdf.GetY() + 50)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Presente este voucher al momento del embarque.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerarKudePDF renders the printable representation (KuDE) of an electronic
// invoice already accepted by SIFEN.
func GenerarKudePDF(factura *model.FacturaElectronica, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	numero := factura.ID.String()
	if factura.Numero != nil {
		numero = *factura.Numero
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("kude_%s.pdf", numero))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Emisor ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	razon := "Group Tours"
	if factura.Empresa != nil {
		razon = factura.Empresa.RazonSocial
	}
	pdf.CellFormat(contentW, 7, razon, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if factura.Empresa != nil {
		pdf.CellFormat(contentW, 5, "RUC: "+factura.Empresa.RUC, "", 1, "L", false, 0, "")
	}
	if factura.Timbrado != nil {
		pdf.CellFormat(contentW, 5, "Timbrado N° "+factura.Timbrado.Numero, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5,
			fmt.Sprintf("Vigencia: %s al %s",
				factura.Timbrado.FechaInicio.Format("02/01/2006"),
				factura.Timbrado.FechaFin.Format("02/01/2006")),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "FACTURA ELECTRÓNICA  "+numero, "", 1, "C", false, 0, "")
	if factura.CDC != nil {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 4, "CDC: "+*factura.CDC, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	// ── Receptor ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	if factura.Receptor != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+factura.Receptor.NombreCompleto(), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, "Documento: "+factura.Receptor.NumeroDocumento, "", 1, "L", false, 0, "")
	}
	if factura.FechaEmision != nil {
		pdf.CellFormat(contentW, 5, "Fecha de emisión: "+factura.FechaEmision.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	if factura.CondicionVenta != nil {
		pdf.CellFormat(contentW, 5, "Condición de venta: "+*factura.CondicionVenta, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Detalles ──────────────────────────────────────────────────────────────
	colDesc := contentW * 0.44
	colCant := contentW * 0.10
	colPrecio := contentW * 0.16
	colIVA := contentW * 0.14
	colTotal := contentW * 0.16

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colDesc, 6, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCant, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrecio, 6, "P. Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colIVA, 6, "IVA", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, det := range factura.Detalles {
		desc := det.Descripcion
		if len(desc) > 48 {
			desc = desc[:47] + "…"
		}
		pdf.CellFormat(colDesc, 5, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(colCant, 5, det.Cantidad.StringFixed(0), "", 0, "C", false, 0, "")
		pdf.CellFormat(colPrecio, 5, det.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colIVA, 5, fmt.Sprintf("%d%%", det.TasaIVA), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 5, det.MontoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totales ───────────────────────────────────────────────────────────────
	labelW := contentW - colTotal
	fila := func(label, valor string, negrita bool) {
		estilo := ""
		if negrita {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 9)
		pdf.CellFormat(labelW, 5, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 5, valor, "", 1, "R", false, 0, "")
	}
	fila("Gravado 10%:", factura.TotalGravado10.StringFixed(2), false)
	fila("Gravado 5%:", factura.TotalGravado5.StringFixed(2), false)
	fila("Exentas:", factura.TotalExentas.StringFixed(2), false)
	fila("Total IVA:", factura.TotalIVA.StringFixed(2), false)
	fila("TOTAL:", factura.TotalGeneral.StringFixed(2), true)

	if factura.ContenidoQR != nil && *factura.ContenidoQR != "" {
		if err := insertarQR(pdf, *factura.ContenidoQR, 15, pdf.GetY()+6, 30); err != nil {
			return "", err
		}
		pdf.SetY(pdf.GetY() + 40)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4, "Consulte la validez de esta factura en el portal de SIFEN.", "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// insertarQR encodes the payload with skip2/go-qrcode and places it as a PNG.
func insertarQR(pdf *fpdf.Fpdf, contenido string, x, y, size float64) error {
	png, err := qrcode.Encode(contenido, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("pdf: encode qr: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr-"+contenido[:min(len(contenido), 16)], opts, bytes.NewReader(png))
	pdf.ImageOptions("qr-"+contenido[:min(len(contenido), 16)], x, y, size, size, false, opts, 0, "")
	return nil
}

// marcaAnulado stamps a rotated gray "ANULADO" across the page.
func marcaAnulado(pdf *fpdf.Fpdf, pageW, pageH, fontSize float64) {
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetTextColor(200, 200, 200)
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, pageH/2)
	pdf.Text(pageW/2-pdf.GetStringWidth("ANULADO")/2, pageH/2, "ANULADO")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)
}
