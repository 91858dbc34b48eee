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

type PersonaService interface {
	Crear(ctx context.Context, req dto.CrearPersonaRequest) (*dto.PersonaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PersonaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearPersonaRequest) (*dto.PersonaResponse, error)
	List(ctx context.Context, filter dto.PersonaFilter) ([]dto.PersonaResponse, int64, error)
	ListEmpleados(ctx context.Context) ([]dto.EmpleadoResponse, error)
}

type personaService struct {
	repo repository.PersonaRepository
}

func NewPersonaService(repo repository.PersonaRepository) PersonaService {
	return &personaService{repo: repo}
}

func (s *personaService) Crear(ctx context.Context, req dto.CrearPersonaRequest) (*dto.PersonaResponse, error) {
	if req.Tipo == "juridica" && req.Apellido != nil && *req.Apellido != "" {
		return nil, apierror.Validacion("una persona jurídica no lleva apellido")
	}
	persona := model.Persona{
		Tipo:            req.Tipo,
		NumeroDocumento: req.NumeroDocumento,
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		Email:           req.Email,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		Activo:          true,
	}
	if req.FechaNacimiento != nil {
		if req.Tipo == "juridica" {
			return nil, apierror.Validacion("una persona jurídica no lleva fecha de nacimiento")
		}
		fecha, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, apierror.Validacion("fecha_nacimiento inválida")
		}
		persona.FechaNacimiento = &fecha
	}
	if err := s.repo.Create(ctx, s.repo.DB(), &persona); err != nil {
		return nil, apierror.Conflicto("ya existe una persona con ese documento")
	}
	return personaToResponse(&persona), nil
}

func (s *personaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PersonaResponse, error) {
	persona, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("persona no encontrada")
	}
	return personaToResponse(persona), nil
}

// Actualizar completes or corrects identity data. Replacing a "_PEND"
// document with the real one is what turns a placeholder into a real person.
func (s *personaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearPersonaRequest) (*dto.PersonaResponse, error) {
	persona, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("persona no encontrada")
	}
	persona.Tipo = req.Tipo
	persona.NumeroDocumento = req.NumeroDocumento
	persona.Nombre = req.Nombre
	persona.Apellido = req.Apellido
	persona.Email = req.Email
	persona.Telefono = req.Telefono
	persona.Direccion = req.Direccion
	if req.FechaNacimiento != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, apierror.Validacion("fecha_nacimiento inválida")
		}
		persona.FechaNacimiento = &fecha
	}
	if err := s.repo.Update(ctx, s.repo.DB(), persona); err != nil {
		return nil, apierror.Conflicto("ya existe una persona con ese documento")
	}
	return personaToResponse(persona), nil
}

func (s *personaService) List(ctx context.Context, filter dto.PersonaFilter) ([]dto.PersonaResponse, int64, error) {
	filter.Normalize()
	personas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.PersonaResponse, 0, len(personas))
	for i := range personas {
		items = append(items, *personaToResponse(&personas[i]))
	}
	return items, total, nil
}

func (s *personaService) ListEmpleados(ctx context.Context) ([]dto.EmpleadoResponse, error) {
	empleados, err := s.repo.ListEmpleados(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpleadoResponse, 0, len(empleados))
	for _, e := range empleados {
		resp := dto.EmpleadoResponse{
			ID:     e.ID.String(),
			Cargo:  e.Cargo,
			Activo: e.Activo,
		}
		if e.Persona != nil {
			resp.Persona = e.Persona.NombreCompleto()
		}
		items = append(items, resp)
	}
	return items, nil
}

func personaToResponse(p *model.Persona) *dto.PersonaResponse {
	return &dto.PersonaResponse{
		ID:              p.ID.String(),
		Tipo:            p.Tipo,
		NumeroDocumento: p.NumeroDocumento,
		Nombre:          p.Nombre,
		Apellido:        p.Apellido,
		NombreCompleto:  p.NombreCompleto(),
		Email:           p.Email,
		Telefono:        p.Telefono,
		Activo:          p.Activo,
	}
}
