package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type VacacionesRepository interface {
	Create(ctx context.Context, solicitud *model.SolicitudVacaciones) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitudVacaciones, error)
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID, offset, limit int) ([]*model.SolicitudVacaciones, int64, error)
	FindAll(ctx context.Context, estado string, offset, limit int) ([]*model.SolicitudVacaciones, int64, error)
	// FindAprobadasSolapadas returns the user's approved requests that
	// intersect [inicio, fin].
	FindAprobadasSolapadas(ctx context.Context, usuarioID uuid.UUID, inicio, fin time.Time) ([]*model.SolicitudVacaciones, error)
	Update(ctx context.Context, solicitud *model.SolicitudVacaciones) error
}

type vacacionesRepository struct {
	db *gorm.DB
}

func NewVacacionesRepository(db *gorm.DB) VacacionesRepository {
	return &vacacionesRepository{db: db}
}

func (r *vacacionesRepository) Create(ctx context.Context, solicitud *model.SolicitudVacaciones) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

func (r *vacacionesRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitudVacaciones, error) {
	var solicitud model.SolicitudVacaciones
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("RevisadaPor").
		Where("id = ?", id).
		First(&solicitud).Error; err != nil {
		return nil, err
	}
	return &solicitud, nil
}

func (r *vacacionesRepository) FindByUsuario(ctx context.Context, usuarioID uuid.UUID, offset, limit int) ([]*model.SolicitudVacaciones, int64, error) {
	var solicitudes []*model.SolicitudVacaciones
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("usuario_id = ?", usuarioID)

	if err := query.Model(&model.SolicitudVacaciones{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&solicitudes).Error; err != nil {
		return nil, 0, err
	}

	return solicitudes, total, nil
}

func (r *vacacionesRepository) FindAll(ctx context.Context, estado string, offset, limit int) ([]*model.SolicitudVacaciones, int64, error) {
	var solicitudes []*model.SolicitudVacaciones
	var total int64

	query := r.db.WithContext(ctx).Preload("Usuario")
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Model(&model.SolicitudVacaciones{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&solicitudes).Error; err != nil {
		return nil, 0, err
	}

	return solicitudes, total, nil
}

func (r *vacacionesRepository) FindAprobadasSolapadas(ctx context.Context, usuarioID uuid.UUID, inicio, fin time.Time) ([]*model.SolicitudVacaciones, error) {
	var solicitudes []*model.SolicitudVacaciones
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.EstadoAprobada).
		Where("fecha_inicio <= ? AND fecha_fin >= ?", fin, inicio).
		Find(&solicitudes).Error
	return solicitudes, err
}

func (r *vacacionesRepository) Update(ctx context.Context, solicitud *model.SolicitudVacaciones) error {
	return r.db.WithContext(ctx).Save(solicitud).Error
}
