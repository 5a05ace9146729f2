package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

type PuestoRepository interface {
	Create(ctx context.Context, puesto *model.Puesto) error
	FindBySlug(ctx context.Context, slug string) (*model.Puesto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Puesto, error)
	FindAll(ctx context.Context, filter string) ([]*model.Puesto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type puestoRepository struct {
	db *gorm.DB
}

func NewPuestoRepository(db *gorm.DB) PuestoRepository {
	return &puestoRepository{db: db}
}

func (r *puestoRepository) Create(ctx context.Context, puesto *model.Puesto) error {
	return r.db.WithContext(ctx).Create(puesto).Error
}

func (r *puestoRepository) FindBySlug(ctx context.Context, slug string) (*model.Puesto, error) {
	var puesto model.Puesto
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&puesto).Error; err != nil {
		return nil, err
	}
	return &puesto, nil
}

func (r *puestoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Puesto, error) {
	var puesto model.Puesto
	if err := r.db.WithContext(ctx).First(&puesto, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &puesto, nil
}

func (r *puestoRepository) FindAll(ctx context.Context, filter string) ([]*model.Puesto, error) {
	var puestos []*model.Puesto
	query := r.db.WithContext(ctx)

	if filter != "" {
		query = query.Where("nombre ILIKE ?", "%"+filter+"%")
	}

	if err := query.Order("nombre ASC").Find(&puestos).Error; err != nil {
		return nil, err
	}
	return puestos, nil
}

func (r *puestoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Puesto{}, "id = ?", id).Error
}
