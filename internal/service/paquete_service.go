package service

import (
	"context"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/apierror"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/google/uuid"
)

type PaqueteService interface {
	Crear(ctx context.Context, req dto.CrearPaqueteRequest) (*dto.PaqueteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PaqueteResponse, error)
	List(ctx context.Context, filter dto.PageFilter) ([]dto.PaqueteResponse, int64, error)

	CrearSalida(ctx context.Context, req dto.CrearSalidaRequest) (*dto.SalidaResponse, error)
	ListSalidas(ctx context.Context, paqueteID uuid.UUID) ([]dto.SalidaResponse, error)
	ListHabitaciones(ctx context.Context) ([]dto.HabitacionResponse, error)
}

type paqueteService struct {
	repo    repository.PaqueteRepository
	monedas repository.MonedaRepository
}

func NewPaqueteService(repo repository.PaqueteRepository, monedas repository.MonedaRepository) PaqueteService {
	return &paqueteService{repo: repo, monedas: monedas}
}

func (s *paqueteService) Crear(ctx context.Context, req dto.CrearPaqueteRequest) (*dto.PaqueteResponse, error) {
	paquete := model.Paquete{
		Nombre:      req.Nombre,
		Destino:     req.Destino,
		Descripcion: req.Descripcion,
		Propio:      req.Propio,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, &paquete); err != nil {
		return nil, err
	}
	return paqueteToResponse(&paquete), nil
}

func (s *paqueteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PaqueteResponse, error) {
	paquete, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("paquete no encontrado")
	}
	return paqueteToResponse(paquete), nil
}

func (s *paqueteService) List(ctx context.Context, filter dto.PageFilter) ([]dto.PaqueteResponse, int64, error) {
	filter.Normalize()
	paquetes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.PaqueteResponse, 0, len(paquetes))
	for i := range paquetes {
		items = append(items, *paqueteToResponse(&paquetes[i]))
	}
	return items, total, nil
}

func (s *paqueteService) CrearSalida(ctx context.Context, req dto.CrearSalidaRequest) (*dto.SalidaResponse, error) {
	paqueteID, err := uuid.Parse(req.PaqueteID)
	if err != nil {
		return nil, apierror.Validacion("paquete_id inválido")
	}
	if _, err := s.repo.FindByID(ctx, paqueteID); err != nil {
		return nil, apierror.NoEncontrado("paquete no encontrado")
	}
	fechaSalida, err := time.Parse("2006-01-02", req.FechaSalida)
	if err != nil {
		return nil, apierror.Validacion("fecha_salida inválida")
	}
	if !req.PrecioActual.IsPositive() {
		return nil, apierror.Validacion("el precio debe ser mayor a cero")
	}
	if req.Senia.IsNegative() || req.Senia.GreaterThan(req.PrecioActual) {
		return nil, apierror.Validacion("la seña no puede ser negativa ni superar el precio")
	}

	salida := model.Salida{
		PaqueteID:      paqueteID,
		FechaSalida:    fechaSalida,
		Senia:          req.Senia,
		PrecioActual:   req.PrecioActual,
		CupoTotal:      req.CupoTotal,
		CupoDisponible: req.CupoTotal,
		Activo:         true,
	}
	if req.FechaRegreso != nil {
		fechaRegreso, err := time.Parse("2006-01-02", *req.FechaRegreso)
		if err != nil {
			return nil, apierror.Validacion("fecha_regreso inválida")
		}
		if fechaRegreso.Before(fechaSalida) {
			return nil, apierror.Validacion("fecha_regreso anterior a fecha_salida")
		}
		salida.FechaRegreso = &fechaRegreso
	}
	if req.MonedaID != nil {
		monedaID, err := uuid.Parse(*req.MonedaID)
		if err != nil {
			return nil, apierror.Validacion("moneda_id inválido")
		}
		if _, err := s.monedas.FindByID(ctx, monedaID); err != nil {
			return nil, apierror.NoEncontrado("moneda no encontrada")
		}
		salida.MonedaID = &monedaID
	}
	if err := s.repo.CreateSalida(ctx, &salida); err != nil {
		return nil, err
	}
	return salidaToResponse(&salida), nil
}

func (s *paqueteService) ListSalidas(ctx context.Context, paqueteID uuid.UUID) ([]dto.SalidaResponse, error) {
	salidas, err := s.repo.ListSalidas(ctx, paqueteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalidaResponse, 0, len(salidas))
	for i := range salidas {
		items = append(items, *salidaToResponse(&salidas[i]))
	}
	return items, nil
}

func (s *paqueteService) ListHabitaciones(ctx context.Context) ([]dto.HabitacionResponse, error) {
	habitaciones, err := s.repo.ListHabitaciones(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HabitacionResponse, 0, len(habitaciones))
	for _, h := range habitaciones {
		items = append(items, dto.HabitacionResponse{
			ID:        h.ID.String(),
			Tipo:      h.Tipo,
			Capacidad: h.Capacidad,
		})
	}
	return items, nil
}

func paqueteToResponse(p *model.Paquete) *dto.PaqueteResponse {
	return &dto.PaqueteResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Destino:     p.Destino,
		Descripcion: p.Descripcion,
		Propio:      p.Propio,
		Activo:      p.Activo,
	}
}

func salidaToResponse(s *model.Salida) *dto.SalidaResponse {
	resp := &dto.SalidaResponse{
		ID:             s.ID.String(),
		PaqueteID:      s.PaqueteID.String(),
		FechaSalida:    s.FechaSalida.Format("2006-01-02"),
		Senia:          s.Senia,
		PrecioActual:   s.PrecioActual,
		CupoTotal:      s.CupoTotal,
		CupoDisponible: s.CupoDisponible,
		Activo:         s.Activo,
	}
	if s.FechaRegreso != nil {
		regreso := s.FechaRegreso.Format("2006-01-02")
		resp.FechaRegreso = &regreso
	}
	return resp
}
