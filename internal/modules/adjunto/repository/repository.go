package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type AdjuntoRepository interface {
	Create(ctx context.Context, adjunto *model.Adjunto) error
	UpdateComunicadoID(ctx context.Context, adjuntoIDs []uint, comunicadoID uuid.UUID, usuarioID uuid.UUID) error
	UpdateIncapacidadID(ctx context.Context, adjuntoIDs []uint, incapacidadID uuid.UUID, usuarioID uuid.UUID) error
	UpdatePostulacionID(ctx context.Context, adjuntoIDs []uint, postulacionID uuid.UUID) error
	FindOrphans(ctx context.Context, cutoffTime time.Time) ([]model.Adjunto, error)
	Delete(ctx context.Context, id uint) error
}

type adjuntoRepository struct {
	db *gorm.DB
}

func NewAdjuntoRepository(db *gorm.DB) AdjuntoRepository {
	return &adjuntoRepository{db: db}
}

func (r *adjuntoRepository) Create(ctx context.Context, adjunto *model.Adjunto) error {
	return r.db.WithContext(ctx).Create(adjunto).Error
}

func (r *adjuntoRepository) UpdateComunicadoID(ctx context.Context, adjuntoIDs []uint, comunicadoID uuid.UUID, usuarioID uuid.UUID) error {
	// Only claim files the user uploaded and that no other parent owns yet.
	return r.db.WithContext(ctx).Model(&model.Adjunto{}).
		Where("id IN ? AND usuario_id = ?", adjuntoIDs, usuarioID).
		Where("(comunicado_id IS NULL OR comunicado_id = ?) AND incapacidad_id IS NULL AND postulacion_id IS NULL", comunicadoID).
		Update("comunicado_id", comunicadoID).Error
}

func (r *adjuntoRepository) UpdateIncapacidadID(ctx context.Context, adjuntoIDs []uint, incapacidadID uuid.UUID, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Adjunto{}).
		Where("id IN ? AND usuario_id = ?", adjuntoIDs, usuarioID).
		Where("comunicado_id IS NULL AND (incapacidad_id IS NULL OR incapacidad_id = ?) AND postulacion_id IS NULL", incapacidadID).
		Update("incapacidad_id", incapacidadID).Error
}

// UpdatePostulacionID carries no owner check: job applications come from the
// public form, so their uploads have no usuario_id.
func (r *adjuntoRepository) UpdatePostulacionID(ctx context.Context, adjuntoIDs []uint, postulacionID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Adjunto{}).
		Where("id IN ?", adjuntoIDs).
		Where("comunicado_id IS NULL AND incapacidad_id IS NULL AND (postulacion_id IS NULL OR postulacion_id = ?)", postulacionID).
		Update("postulacion_id", postulacionID).Error
}

func (r *adjuntoRepository) FindOrphans(ctx context.Context, cutoffTime time.Time) ([]model.Adjunto, error) {
	var adjuntos []model.Adjunto
	err := r.db.WithContext(ctx).
		Where("comunicado_id IS NULL AND incapacidad_id IS NULL AND postulacion_id IS NULL AND created_at < ?", cutoffTime).
		Find(&adjuntos).Error
	return adjuntos, err
}

func (r *adjuntoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Adjunto{}, id).Error
}
