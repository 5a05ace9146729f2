package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type IncapacidadRepository interface {
	Create(ctx context.Context, incapacidad *model.Incapacidad) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Incapacidad, error)
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID, offset, limit int) ([]*model.Incapacidad, int64, error)
	FindAll(ctx context.Context, estado string, offset, limit int) ([]*model.Incapacidad, int64, error)
	Update(ctx context.Context, incapacidad *model.Incapacidad) error
}

type incapacidadRepository struct {
	db *gorm.DB
}

func NewIncapacidadRepository(db *gorm.DB) IncapacidadRepository {
	return &incapacidadRepository{db: db}
}

func (r *incapacidadRepository) Create(ctx context.Context, incapacidad *model.Incapacidad) error {
	return r.db.WithContext(ctx).Create(incapacidad).Error
}

func (r *incapacidadRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Incapacidad, error) {
	var incapacidad model.Incapacidad
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Adjuntos").
		Where("id = ?", id).
		First(&incapacidad).Error; err != nil {
		return nil, err
	}
	return &incapacidad, nil
}

func (r *incapacidadRepository) FindByUsuario(ctx context.Context, usuarioID uuid.UUID, offset, limit int) ([]*model.Incapacidad, int64, error) {
	var incapacidades []*model.Incapacidad
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Adjuntos").
		Where("usuario_id = ?", usuarioID)

	if err := query.Model(&model.Incapacidad{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&incapacidades).Error; err != nil {
		return nil, 0, err
	}

	return incapacidades, total, nil
}

func (r *incapacidadRepository) FindAll(ctx context.Context, estado string, offset, limit int) ([]*model.Incapacidad, int64, error) {
	var incapacidades []*model.Incapacidad
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Adjuntos")
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Model(&model.Incapacidad{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&incapacidades).Error; err != nil {
		return nil, 0, err
	}

	return incapacidades, total, nil
}

func (r *incapacidadRepository) Update(ctx context.Context, incapacidad *model.Incapacidad) error {
	return r.db.WithContext(ctx).Save(incapacidad).Error
}
