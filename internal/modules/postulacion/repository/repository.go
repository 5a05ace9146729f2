package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type VacanteRepository interface {
	Create(ctx context.Context, vacante *model.Vacante) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vacante, error)
	FindBySlug(ctx context.Context, slug string) (*model.Vacante, error)
	FindAll(ctx context.Context, soloAbiertas bool) ([]*model.Vacante, error)
	Update(ctx context.Context, vacante *model.Vacante) error
}

type PostulacionRepository interface {
	Create(ctx context.Context, postulacion *model.Postulacion) error
	FindByVacanteYCorreo(ctx context.Context, vacanteID uuid.UUID, correo string) (*model.Postulacion, error)
	FindByVacante(ctx context.Context, vacanteID uuid.UUID, offset, limit int) ([]*model.Postulacion, int64, error)
}

type vacanteRepository struct {
	db *gorm.DB
}

func NewVacanteRepository(db *gorm.DB) VacanteRepository {
	return &vacanteRepository{db: db}
}

func (r *vacanteRepository) Create(ctx context.Context, vacante *model.Vacante) error {
	return r.db.WithContext(ctx).Create(vacante).Error
}

func (r *vacanteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vacante, error) {
	var vacante model.Vacante
	if err := r.db.WithContext(ctx).
		Preload("Puesto").
		Where("id = ?", id).
		First(&vacante).Error; err != nil {
		return nil, err
	}
	return &vacante, nil
}

func (r *vacanteRepository) FindBySlug(ctx context.Context, slug string) (*model.Vacante, error) {
	var vacante model.Vacante
	if err := r.db.WithContext(ctx).
		Preload("Puesto").
		Where("slug = ?", slug).
		First(&vacante).Error; err != nil {
		return nil, err
	}
	return &vacante, nil
}

func (r *vacanteRepository) FindAll(ctx context.Context, soloAbiertas bool) ([]*model.Vacante, error) {
	var vacantes []*model.Vacante
	query := r.db.WithContext(ctx).Preload("Puesto")
	if soloAbiertas {
		query = query.Where("abierta = ?", true)
	}
	err := query.Order("created_at DESC").Find(&vacantes).Error
	return vacantes, err
}

func (r *vacanteRepository) Update(ctx context.Context, vacante *model.Vacante) error {
	return r.db.WithContext(ctx).Save(vacante).Error
}

type postulacionRepository struct {
	db *gorm.DB
}

func NewPostulacionRepository(db *gorm.DB) PostulacionRepository {
	return &postulacionRepository{db: db}
}

func (r *postulacionRepository) Create(ctx context.Context, postulacion *model.Postulacion) error {
	return r.db.WithContext(ctx).Create(postulacion).Error
}

func (r *postulacionRepository) FindByVacanteYCorreo(ctx context.Context, vacanteID uuid.UUID, correo string) (*model.Postulacion, error) {
	var postulacion model.Postulacion
	if err := r.db.WithContext(ctx).
		Where("vacante_id = ? AND correo = ?", vacanteID, correo).
		First(&postulacion).Error; err != nil {
		return nil, err
	}
	return &postulacion, nil
}

func (r *postulacionRepository) FindByVacante(ctx context.Context, vacanteID uuid.UUID, offset, limit int) ([]*model.Postulacion, int64, error) {
	var postulaciones []*model.Postulacion
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Adjuntos").
		Where("vacante_id = ?", vacanteID)

	if err := query.Model(&model.Postulacion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&postulaciones).Error; err != nil {
		return nil, 0, err
	}

	return postulaciones, total, nil
}
