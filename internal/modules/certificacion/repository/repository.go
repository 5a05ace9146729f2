package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type CertificacionRepository interface {
	Create(ctx context.Context, solicitud *model.SolicitudCertificacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitudCertificacion, error)
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID, offset, limit int) ([]*model.SolicitudCertificacion, int64, error)
	FindAll(ctx context.Context, estado string, offset, limit int) ([]*model.SolicitudCertificacion, int64, error)
	Update(ctx context.Context, solicitud *model.SolicitudCertificacion) error
}

type certificacionRepository struct {
	db *gorm.DB
}

func NewCertificacionRepository(db *gorm.DB) CertificacionRepository {
	return &certificacionRepository{db: db}
}

func (r *certificacionRepository) Create(ctx context.Context, solicitud *model.SolicitudCertificacion) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

func (r *certificacionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitudCertificacion, error) {
	var solicitud model.SolicitudCertificacion
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("id = ?", id).
		First(&solicitud).Error; err != nil {
		return nil, err
	}
	return &solicitud, nil
}

func (r *certificacionRepository) FindByUsuario(ctx context.Context, usuarioID uuid.UUID, offset, limit int) ([]*model.SolicitudCertificacion, int64, error) {
	var solicitudes []*model.SolicitudCertificacion
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("usuario_id = ?", usuarioID)

	if err := query.Model(&model.SolicitudCertificacion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&solicitudes).Error; err != nil {
		return nil, 0, err
	}

	return solicitudes, total, nil
}

func (r *certificacionRepository) FindAll(ctx context.Context, estado string, offset, limit int) ([]*model.SolicitudCertificacion, int64, error) {
	var solicitudes []*model.SolicitudCertificacion
	var total int64

	query := r.db.WithContext(ctx).Preload("Usuario")
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Model(&model.SolicitudCertificacion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&solicitudes).Error; err != nil {
		return nil, 0, err
	}

	return solicitudes, total, nil
}

func (r *certificacionRepository) Update(ctx context.Context, solicitud *model.SolicitudCertificacion) error {
	return r.db.WithContext(ctx).Save(solicitud).Error
}
