package repository

import (
	"context"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarioRepository interface {
	// FindBloqueados returns the scope's blocked intervals, ascending by
	// fecha_inicio (the rendering and mutation order).
	FindBloqueados(ctx context.Context, scopeID string) ([]model.IntervaloDisponibilidad, error)
	// FindBloqueadosSolapados returns blocked intervals overlapping the
	// closed range [inicio, fin].
	FindBloqueadosSolapados(ctx context.Context, scopeID string, inicio, fin string) ([]model.IntervaloDisponibilidad, error)
	Create(ctx context.Context, intervalo *model.IntervaloDisponibilidad) error
	// ReemplazarIntervalos deletes the given intervals and inserts the
	// replacement pieces in one transaction.
	ReemplazarIntervalos(ctx context.Context, ids []uuid.UUID, reemplazos []model.IntervaloDisponibilidad) error
}

type calendarioRepository struct {
	db *gorm.DB
}

func NewCalendarioRepository(db *gorm.DB) CalendarioRepository {
	return &calendarioRepository{db: db}
}

func (r *calendarioRepository) FindBloqueados(ctx context.Context, scopeID string) ([]model.IntervaloDisponibilidad, error) {
	var intervalos []model.IntervaloDisponibilidad
	if err := r.db.WithContext(ctx).
		Where("scope_id = ? AND disponible = ?", scopeID, false).
		Order("fecha_inicio asc").
		Find(&intervalos).Error; err != nil {
		return nil, err
	}
	return intervalos, nil
}

func (r *calendarioRepository) FindBloqueadosSolapados(ctx context.Context, scopeID string, inicio, fin string) ([]model.IntervaloDisponibilidad, error) {
	var intervalos []model.IntervaloDisponibilidad
	if err := r.db.WithContext(ctx).
		Where("scope_id = ? AND disponible = ?", scopeID, false).
		Where("fecha_inicio <= ? AND fecha_fin >= ?", fin, inicio).
		Order("fecha_inicio asc").
		Find(&intervalos).Error; err != nil {
		return nil, err
	}
	return intervalos, nil
}

func (r *calendarioRepository) Create(ctx context.Context, intervalo *model.IntervaloDisponibilidad) error {
	return r.db.WithContext(ctx).Create(intervalo).Error
}

func (r *calendarioRepository) ReemplazarIntervalos(ctx context.Context, ids []uuid.UUID, reemplazos []model.IntervaloDisponibilidad) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Delete(&model.IntervaloDisponibilidad{}, "id IN ?", ids).Error; err != nil {
				return err
			}
		}

		for i := range reemplazos {
			if err := tx.Create(&reemplazos[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
