//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Reserva completa: configuración SIFEN → caja → paquete → reserva → seña con distribución
//   - Arqueo: apertura → movimientos → cierre con diferencia que requiere autorización
//   - Pago rechazado cuando el cajero no tiene apertura vigente

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/config"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/router"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/crypto/bcrypt"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type idResp struct {
	ID string `json:"id"`
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("grouptours_test"),
		tcPostgres.WithUsername("grouptours"),
		tcPostgres.WithPassword("grouptours"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		SIFENBaseURL:       "http://localhost:9999", // never reached in e2e
		SIFENRUCEmisor:     "80012345-6",
		SIFENTimeoutSec:    2,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin login linked to an empleado; caja operations resolve the
	// acting empleado from the JWT.
	hash, err := bcrypt.GenerateFromPassword([]byte("grouptours2026"), bcrypt.MinCost)
	require.NoError(t, err)
	seed := `
		WITH p AS (
			INSERT INTO personas (tipo, numero_documento, nombre, apellido)
			VALUES ('fisica', '1111111', 'Admin', 'E2E')
			RETURNING id
		), e AS (
			INSERT INTO empleados (persona_id, cargo)
			SELECT id, 'Administrador' FROM p
			RETURNING id
		)
		INSERT INTO usuarios (username, nombre, password_hash, rol, empleado_id)
		SELECT 'admin@e2e.test', 'Admin E2E', ?, 'administrador', id
		FROM e`
	require.NoError(t, db.Exec(seed, string(hash)).Error)

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "grouptours2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		engine: r,
	}
}

// crearCaja provisions establecimiento → punto de expedición → caja and
// returns the caja id.
func crearCaja(t *testing.T, env *testEnv) string {
	t.Helper()

	estResp := do(t, env.server, "POST", "/v1/facturacion/establecimientos",
		jsonBody(t, map[string]any{"codigo": "001", "nombre": "Casa Matriz"}), env.token)
	require.Equal(t, http.StatusCreated, estResp.StatusCode)
	var est idResp
	decodeJSON(t, estResp, &est)

	peResp := do(t, env.server, "POST", "/v1/facturacion/puntos-expedicion",
		jsonBody(t, map[string]any{"establecimiento_id": est.ID, "codigo": "001"}), env.token)
	require.Equal(t, http.StatusCreated, peResp.StatusCode)
	var pe idResp
	decodeJSON(t, peResp, &pe)

	cajaResp := do(t, env.server, "POST", "/v1/cajas",
		jsonBody(t, map[string]any{"nombre": "Caja Principal", "punto_expedicion_id": pe.ID}), env.token)
	require.Equal(t, http.StatusCreated, cajaResp.StatusCode)
	var caja idResp
	decodeJSON(t, cajaResp, &caja)
	return caja.ID
}

// crearReserva provisions titular → paquete → salida → reserva de 2 pasajeros
// y devuelve el id de la reserva.
func crearReserva(t *testing.T, env *testEnv) string {
	t.Helper()

	titularResp := do(t, env.server, "POST", "/v1/personas",
		jsonBody(t, map[string]any{
			"tipo": "fisica", "numero_documento": "2222222",
			"nombre": "María", "apellido": "González",
		}), env.token)
	require.Equal(t, http.StatusCreated, titularResp.StatusCode)
	var titular idResp
	decodeJSON(t, titularResp, &titular)

	paqResp := do(t, env.server, "POST", "/v1/paquetes",
		jsonBody(t, map[string]any{"nombre": "Río de Janeiro 7 días", "destino": "Río de Janeiro", "propio": true}), env.token)
	require.Equal(t, http.StatusCreated, paqResp.StatusCode)
	var paq idResp
	decodeJSON(t, paqResp, &paq)

	salidaResp := do(t, env.server, "POST", "/v1/paquetes/salidas",
		jsonBody(t, map[string]any{
			"paquete_id":    paq.ID,
			"fecha_salida":  time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
			"senia":         500000,
			"precio_actual": 3000000,
			"cupo_total":    30,
		}), env.token)
	require.Equal(t, http.StatusCreated, salidaResp.StatusCode)
	var salida idResp
	decodeJSON(t, salidaResp, &salida)

	resResp := do(t, env.server, "POST", "/v1/reservas",
		jsonBody(t, map[string]any{
			"titular_id":            titular.ID,
			"paquete_id":            paq.ID,
			"salida_id":             salida.ID,
			"cantidad_pasajeros":    2,
			"modalidad_facturacion": "global",
			"condicion_pago":        "contado",
		}), env.token)
	require.Equal(t, http.StatusCreated, resResp.StatusCode)
	var res idResp
	decodeJSON(t, resResp, &res)
	return res.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_ReservaConSenia(t *testing.T) {
	env := setupTestEnv(t)

	cajaID := crearCaja(t, env)
	reservaID := crearReserva(t, env)

	// Apertura de caja con fondo inicial
	abrirResp := do(t, env.server, "POST", "/v1/cajas/abrir",
		jsonBody(t, map[string]any{"caja_id": cajaID, "monto_inicial": 500000}), env.token)
	require.Equal(t, http.StatusCreated, abrirResp.StatusCode)

	// Pasajeros de la reserva para armar la distribución
	detResp := do(t, env.server, "GET", "/v1/reservas/"+reservaID, nil, env.token)
	require.Equal(t, http.StatusOK, detResp.StatusCode)
	var reserva struct {
		Estado     string `json:"estado"`
		SeniaTotal string `json:"senia_total"`
		Pasajeros  []struct {
			ID string `json:"id"`
		} `json:"pasajeros"`
	}
	decodeJSON(t, detResp, &reserva)
	require.Equal(t, "pendiente", reserva.Estado)
	require.Len(t, reserva.Pasajeros, 2)

	// Seña completa: 500.000 por pasajero
	compResp := do(t, env.server, "POST", "/v1/comprobantes",
		jsonBody(t, map[string]any{
			"reserva_id":  reservaID,
			"tipo":        "senia",
			"monto":       1000000,
			"metodo_pago": "efectivo",
			"distribuciones": []map[string]any{
				{"pasajero_id": reserva.Pasajeros[0].ID, "monto": 500000},
				{"pasajero_id": reserva.Pasajeros[1].ID, "monto": 500000},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, compResp.StatusCode)
	var comp struct {
		Codigo string `json:"codigo"`
		Activo bool   `json:"activo"`
	}
	decodeJSON(t, compResp, &comp)
	assert.NotEmpty(t, comp.Codigo)
	assert.True(t, comp.Activo)

	// La seña completa confirma la reserva y actualiza lo pagado
	detResp2 := do(t, env.server, "GET", "/v1/reservas/"+reservaID, nil, env.token)
	require.Equal(t, http.StatusOK, detResp2.StatusCode)
	var reserva2 struct {
		Estado      string `json:"estado"`
		MontoPagado string `json:"monto_pagado"`
	}
	decodeJSON(t, detResp2, &reserva2)
	assert.Equal(t, "confirmada", reserva2.Estado)
	assert.Equal(t, "1000000", reserva2.MontoPagado)
}

func TestE2E_CierreConDiferencia(t *testing.T) {
	env := setupTestEnv(t)
	cajaID := crearCaja(t, env)

	abrirResp := do(t, env.server, "POST", "/v1/cajas/abrir",
		jsonBody(t, map[string]any{"caja_id": cajaID, "monto_inicial": 500000}), env.token)
	require.Equal(t, http.StatusCreated, abrirResp.StatusCode)
	var apertura idResp
	decodeJSON(t, abrirResp, &apertura)

	movResp := do(t, env.server, "POST", "/v1/cajas/movimientos",
		jsonBody(t, map[string]any{
			"apertura_id": apertura.ID,
			"tipo":        "ingreso",
			"concepto":    "otro_ingreso",
			"metodo_pago": "efectivo",
			"monto":       200000,
		}), env.token)
	require.Equal(t, http.StatusCreated, movResp.StatusCode)

	// Teórico en efectivo: 700.000; contado real: 650.000 → faltante > 2%
	cerrarResp := do(t, env.server, "POST", "/v1/cajas/cerrar",
		jsonBody(t, map[string]any{
			"apertura_id":         apertura.ID,
			"saldo_real_efectivo": 650000,
		}), env.token)
	require.Equal(t, http.StatusCreated, cerrarResp.StatusCode)
	var cierre struct {
		SaldoTeoricoEfectivo string `json:"saldo_teorico_efectivo"`
		Diferencia           string `json:"diferencia"`
		RequiereAutorizacion bool   `json:"requiere_autorizacion"`
	}
	decodeJSON(t, cerrarResp, &cierre)
	assert.Equal(t, "700000", cierre.SaldoTeoricoEfectivo)
	assert.Equal(t, "-50000", cierre.Diferencia)
	assert.True(t, cierre.RequiereAutorizacion)
}

func TestE2E_PagoSinCajaAbierta(t *testing.T) {
	env := setupTestEnv(t)
	crearCaja(t, env) // caja existe pero nadie la abrió
	reservaID := crearReserva(t, env)

	detResp := do(t, env.server, "GET", "/v1/reservas/"+reservaID, nil, env.token)
	require.Equal(t, http.StatusOK, detResp.StatusCode)
	var reserva struct {
		Pasajeros []struct {
			ID string `json:"id"`
		} `json:"pasajeros"`
	}
	decodeJSON(t, detResp, &reserva)
	require.Len(t, reserva.Pasajeros, 2)

	compResp := do(t, env.server, "POST", "/v1/comprobantes",
		jsonBody(t, map[string]any{
			"reserva_id":  reservaID,
			"tipo":        "senia",
			"monto":       1000000,
			"metodo_pago": "efectivo",
			"distribuciones": []map[string]any{
				{"pasajero_id": reserva.Pasajeros[0].ID, "monto": 500000},
				{"pasajero_id": reserva.Pasajeros[1].ID, "monto": 500000},
			},
		}), env.token)
	assert.Equal(t, http.StatusBadRequest, compResp.StatusCode)
	compResp.Body.Close()
}
