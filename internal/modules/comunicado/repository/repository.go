package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type ComunicadoRepository interface {
	Create(ctx context.Context, comunicado *model.Comunicado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comunicado, error)
	FindBySlug(ctx context.Context, slug string) (*model.Comunicado, error)
	FindAll(ctx context.Context, audiencias []string, soloPublicados bool, offset, limit int) ([]*model.Comunicado, int64, error)
	Update(ctx context.Context, comunicado *model.Comunicado) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type comunicadoRepository struct {
	db *gorm.DB
}

func NewComunicadoRepository(db *gorm.DB) ComunicadoRepository {
	return &comunicadoRepository{db: db}
}

func (r *comunicadoRepository) Create(ctx context.Context, comunicado *model.Comunicado) error {
	return r.db.WithContext(ctx).Create(comunicado).Error
}

func (r *comunicadoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comunicado, error) {
	var comunicado model.Comunicado
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Adjuntos").
		Where("id = ?", id).
		First(&comunicado).Error; err != nil {
		return nil, err
	}
	return &comunicado, nil
}

func (r *comunicadoRepository) FindBySlug(ctx context.Context, slug string) (*model.Comunicado, error) {
	var comunicado model.Comunicado
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Adjuntos").
		Where("slug = ?", slug).
		First(&comunicado).Error; err != nil {
		return nil, err
	}
	return &comunicado, nil
}

func (r *comunicadoRepository) FindAll(ctx context.Context, audiencias []string, soloPublicados bool, offset, limit int) ([]*model.Comunicado, int64, error) {
	var comunicados []*model.Comunicado
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Adjuntos")

	if len(audiencias) > 0 {
		query = query.Where("audiencia IN ?", audiencias)
	}
	if soloPublicados {
		query = query.Where("publicado = ?", true)
	}

	if err := query.Model(&model.Comunicado{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("publicado_en DESC NULLS LAST").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comunicados).Error; err != nil {
		return nil, 0, err
	}

	return comunicados, total, nil
}

func (r *comunicadoRepository) Update(ctx context.Context, comunicado *model.Comunicado) error {
	return r.db.WithContext(ctx).Save(comunicado).Error
}

func (r *comunicadoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Comunicado{}, "id = ?", id).Error
}
