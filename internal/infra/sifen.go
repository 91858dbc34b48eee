package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SIFENDetalle is one invoice line as submitted to SIFEN.
type SIFENDetalle struct {
	Descripcion    string  `json:"descripcion"`
	Cantidad       float64 `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	TasaIVA        int     `json:"tasa_iva"`
	MontoIVA       float64 `json:"monto_iva"`
	MontoTotal     float64 `json:"monto_total"`
}

// SIFENPayload is the electronic document sent to the tax authority.
// TipoDocumento: 1 = factura electrónica, 5 = nota de crédito electrónica.
type SIFENPayload struct {
	TipoDocumento     int            `json:"tipo_documento"`
	RUCEmisor         string         `json:"ruc_emisor"`
	Timbrado          string         `json:"timbrado"`
	Establecimiento   string         `json:"establecimiento"`
	PuntoExpedicion   string         `json:"punto_expedicion"`
	Numero            string         `json:"numero"`
	FechaEmision      string         `json:"fecha_emision"`
	RUCReceptor       string         `json:"ruc_receptor"`
	NombreReceptor    string         `json:"nombre_receptor"`
	CondicionVenta    string         `json:"condicion_venta"`
	Moneda            string         `json:"moneda"`
	TotalGravado10    float64        `json:"total_gravado_10"`
	TotalGravado5     float64        `json:"total_gravado_5"`
	TotalExentas      float64        `json:"total_exentas"`
	TotalIVA          float64        `json:"total_iva"`
	TotalGeneral      float64        `json:"total_general"`
	Detalles          []SIFENDetalle `json:"detalles"`
	// CDCAsociado links a nota de crédito to its factura.
	CDCAsociado string `json:"cdc_asociado,omitempty"`
}

// SIFENResponse is the authority's answer to a document submission.
// Estado: "Aprobado" | "Rechazado".
type SIFENResponse struct {
	CDC           string `json:"cdc"`
	Estado        string `json:"estado"`
	NumeroControl string `json:"numero_control"`
	QRData        string `json:"qr_data"`
	Mensajes      []struct {
		Codigo  string `json:"codigo"`
		Mensaje string `json:"mensaje"`
	} `json:"mensajes"`
}

func (r *SIFENResponse) Aprobado() bool { return r.Estado == "Aprobado" }

// PrimerMensaje returns the first rejection message, for LastError.
func (r *SIFENResponse) PrimerMensaje() string {
	if len(r.Mensajes) == 0 {
		return r.Estado
	}
	return fmt.Sprintf("%s: %s", r.Mensajes[0].Codigo, r.Mensajes[0].Mensaje)
}

// SIFENClient talks to the SIFEN web services through a circuit breaker so an
// authority outage fast-fails instead of piling up blocked workers. Documents
// that could not be submitted stay "pendiente" and the retry cron re-attempts
// them with exponential backoff.
type SIFENClient struct {
	baseURL    string
	rucEmisor  string
	idCSC      string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewSIFENClient(baseURL, rucEmisor, idCSC string, timeout time.Duration) *SIFENClient {
	return &SIFENClient{
		baseURL:    baseURL,
		rucEmisor:  rucEmisor,
		idCSC:      idCSC,
		httpClient: &http.Client{Timeout: timeout},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Estado exposes the circuit breaker state for the health endpoint.
func (c *SIFENClient) Estado() string { return c.cb.State().String() }

// EnviarDocumento submits a factura or nota de crédito and returns the CDC.
func (c *SIFENClient) EnviarDocumento(ctx context.Context, payload SIFENPayload) (*SIFENResponse, error) {
	payload.RUCEmisor = c.rucEmisor

	var result *SIFENResponse
	err := c.cb.Execute(func() error {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("sifen: marshal payload: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sync/recibe", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("sifen: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-ID-CSC", c.idCSC)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sifen: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("sifen: returned %d", resp.StatusCode)
		}

		var decoded SIFENResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("sifen: decode response: %w", err)
		}
		result = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConsultarDocumento queries the status of a previously submitted CDC.
func (c *SIFENClient) ConsultarDocumento(ctx context.Context, cdc string) (*SIFENResponse, error) {
	var result *SIFENResponse
	err := c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/consultas/"+cdc, nil)
		if err != nil {
			return fmt.Errorf("sifen: create request: %w", err)
		}
		req.Header.Set("X-ID-CSC", c.idCSC)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sifen: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("sifen: returned %d", resp.StatusCode)
		}

		var decoded SIFENResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("sifen: decode response: %w", err)
		}
		result = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
