package repository

import (
	"context"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/dto"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Persona) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Persona, error)
	FindByDocumento(ctx context.Context, documento string) (*model.Persona, error)
	Update(ctx context.Context, tx *gorm.DB, p *model.Persona) error
	List(ctx context.Context, filter dto.PersonaFilter) ([]model.Persona, int64, error)

	FindEmpleadoByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error)
	ListEmpleados(ctx context.Context) ([]model.Empleado, error)
	DB() *gorm.DB
}

type personaRepo struct{ db *gorm.DB }

func NewPersonaRepository(db *gorm.DB) PersonaRepository { return &personaRepo{db: db} }

func (r *personaRepo) DB() *gorm.DB { return r.db }

func (r *personaRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Persona) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *personaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Persona, error) {
	var p model.Persona
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *personaRepo) FindByDocumento(ctx context.Context, documento string) (*model.Persona, error) {
	var p model.Persona
	err := r.db.WithContext(ctx).Where("numero_documento = ?", documento).First(&p).Error
	return &p, err
}

func (r *personaRepo) Update(ctx context.Context, tx *gorm.DB, p *model.Persona) error {
	return tx.WithContext(ctx).Save(p).Error
}

func (r *personaRepo) List(ctx context.Context, filter dto.PersonaFilter) ([]model.Persona, int64, error) {
	var personas []model.Persona
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Persona{}).Where("activo = true")
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ? OR numero_documento ILIKE ?", like, like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nombre ASC").Offset(offset).Limit(filter.Limit).Find(&personas).Error
	return personas, total, err
}

func (r *personaRepo) FindEmpleadoByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Preload("Persona").First(&e, id).Error
	return &e, err
}

func (r *personaRepo) ListEmpleados(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).Where("activo = true").Preload("Persona").Find(&empleados).Error
	return empleados, err
}
