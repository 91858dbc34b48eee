package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type MonedaService interface {
	Crear(ctx context.Context, req dto.CrearMonedaRequest) (*dto.MonedaResponse, error)
	List(ctx context.Context) ([]dto.MonedaResponse, error)

	RegistrarCotizacion(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	ListCotizaciones(ctx context.Context, monedaID uuid.UUID, desde, hasta time.Time) ([]dto.CotizacionResponse, error)

	// Convertir converts between currencies passing through guaraníes. A
	// missing rate is a hard failure, never a silent 1:1 fallback.
	Convertir(ctx context.Context, req dto.ConvertirRequest) (*dto.ConvertirResponse, error)
}

type monedaService struct {
	repo     repository.MonedaRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewMonedaService(repo repository.MonedaRepository, rdb *redis.Client, cacheTTL time.Duration) MonedaService {
	return &monedaService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *monedaService) Crear(ctx context.Context, req dto.CrearMonedaRequest) (*dto.MonedaResponse, error) {
	moneda := model.Moneda{
		Nombre:  req.Nombre,
		Simbolo: req.Simbolo,
		Codigo:  strings.ToUpper(req.Codigo),
		Activo:  true,
	}
	if err := s.repo.Create(ctx, &moneda); err != nil {
		return nil, apierror.Conflicto("ya existe una moneda con ese código")
	}
	return monedaToResponse(&moneda), nil
}

func (s *monedaService) List(ctx context.Context) ([]dto.MonedaResponse, error) {
	monedas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MonedaResponse, 0, len(monedas))
	for i := range monedas {
		items = append(items, *monedaToResponse(&monedas[i]))
	}
	return items, nil
}

func (s *monedaService) RegistrarCotizacion(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	monedaID, err := uuid.Parse(req.MonedaID)
	if err != nil {
		return nil, apierror.Validacion("moneda_id inválido")
	}
	if !req.ValorEnGuaranies.IsPositive() {
		return nil, apierror.Validacion("la cotización debe ser mayor a cero")
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, apierror.Validacion("fecha inválida")
	}
	moneda, err := s.repo.FindByID(ctx, monedaID)
	if err != nil {
		return nil, apierror.NoEncontrado("moneda no encontrada")
	}
	if moneda.EsBase() {
		return nil, apierror.Validacion("el guaraní no lleva cotización")
	}

	cotizacion := model.CotizacionMoneda{
		MonedaID:         monedaID,
		Fecha:            fecha,
		ValorEnGuaranies: req.ValorEnGuaranies,
	}
	if err := s.repo.CreateCotizacion(ctx, &cotizacion); err != nil {
		return nil, apierror.Conflicto("ya existe una cotización para esa moneda y fecha")
	}
	s.invalidarCache(ctx, moneda.Codigo, fecha)
	cotizacion.Moneda = moneda
	return cotizacionToResponse(&cotizacion), nil
}

func (s *monedaService) ListCotizaciones(ctx context.Context, monedaID uuid.UUID, desde, hasta time.Time) ([]dto.CotizacionResponse, error) {
	cotizaciones, err := s.repo.ListCotizaciones(ctx, monedaID, desde, hasta)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		items = append(items, *cotizacionToResponse(&cotizaciones[i]))
	}
	return items, nil
}

// ── Conversión ────────────────────────────────────────────────────────────────

func (s *monedaService) Convertir(ctx context.Context, req dto.ConvertirRequest) (*dto.ConvertirResponse, error) {
	origen := strings.ToUpper(req.Origen)
	destino := strings.ToUpper(req.Destino)

	fecha := time.Now()
	if req.Fecha != nil {
		parsed, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, apierror.Validacion("fecha inválida")
		}
		fecha = parsed
	}

	valorOrigen, err := s.valorEnGuaranies(ctx, origen, fecha)
	if err != nil {
		return nil, err
	}
	valorDestino, err := s.valorEnGuaranies(ctx, destino, fecha)
	if err != nil {
		return nil, err
	}

	enGuaranies := req.Monto.Mul(valorOrigen)
	convertido := enGuaranies.DivRound(valorDestino, 2)

	return &dto.ConvertirResponse{
		Monto:           req.Monto,
		Origen:          origen,
		Destino:         destino,
		Fecha:           fecha.Format("2006-01-02"),
		MontoConvertido: convertido,
		CotizacionUsada: valorOrigen.DivRound(valorDestino, 6),
	}, nil
}

// valorEnGuaranies resolves the rate of one currency unit in guaraníes for a
// date, with a Redis cache in front of the database lookup. PYG is always 1.
func (s *monedaService) valorEnGuaranies(ctx context.Context, codigo string, fecha time.Time) (decimal.Decimal, error) {
	if codigo == "PYG" {
		return decimal.NewFromInt(1), nil
	}

	key := cacheKeyCotizacion(codigo, fecha)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			if valor, err := decimal.NewFromString(cached); err == nil {
				return valor, nil
			}
		}
	}

	moneda, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return decimal.Zero, apierror.NoEncontrado(fmt.Sprintf("moneda %s no encontrada", codigo))
	}
	cotizacion, err := s.repo.FindCotizacionVigente(ctx, moneda.ID, fecha)
	if err != nil {
		return decimal.Zero, apierror.EstadoInvalido(fmt.Sprintf(
			"no hay cotización registrada para %s al %s", codigo, fecha.Format("2006-01-02")))
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, cotizacion.ValorEnGuaranies.String(), s.cacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("moneda", codigo).Msg("no se pudo cachear la cotización")
		}
	}
	return cotizacion.ValorEnGuaranies, nil
}

func (s *monedaService) invalidarCache(ctx context.Context, codigo string, fecha time.Time) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKeyCotizacion(codigo, fecha)).Err(); err != nil {
		log.Warn().Err(err).Str("moneda", codigo).Msg("no se pudo invalidar la cotización cacheada")
	}
}

func cacheKeyCotizacion(codigo string, fecha time.Time) string {
	return fmt.Sprintf("cotizacion:%s:%s", codigo, fecha.Format("2006-01-02"))
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func monedaToResponse(m *model.Moneda) *dto.MonedaResponse {
	return &dto.MonedaResponse{
		ID:      m.ID.String(),
		Nombre:  m.Nombre,
		Simbolo: m.Simbolo,
		Codigo:  m.Codigo,
		Activo:  m.Activo,
	}
}

func cotizacionToResponse(c *model.CotizacionMoneda) *dto.CotizacionResponse {
	resp := &dto.CotizacionResponse{
		ID:               c.ID.String(),
		MonedaID:         c.MonedaID.String(),
		Fecha:            c.Fecha.Format("2006-01-02"),
		ValorEnGuaranies: c.ValorEnGuaranies,
	}
	if c.Moneda != nil {
		resp.Codigo = c.Moneda.Codigo
	}
	return resp
}
