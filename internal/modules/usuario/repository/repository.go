package repository

import (
	"context"

	"github.com/andeshr/portalrh/internal/model"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	FindByID(ctx context.Context, id string) (*model.Usuario, error)
	FindByCorreo(ctx context.Context, correo string) (*model.Usuario, error)
	FindRolByNombre(ctx context.Context, nombre string) (*model.Rol, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	FindAll(ctx context.Context) ([]*model.Usuario, error)
	// FindActivos returns active users, optionally narrowed by puesto area
	// ('administrativo'/'operativo'); empty area means everyone active.
	FindActivos(ctx context.Context, area string) ([]*model.Usuario, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type usuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepository) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).
		Preload("Rol").
		Preload("Puesto").
		Where("id = ?", id).
		First(&usuario).Error; err != nil {
		return nil, err
	}

	return &usuario, nil
}

func (r *usuarioRepository) FindByCorreo(ctx context.Context, correo string) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).
		Preload("Rol").
		Preload("Puesto").
		Where("correo = ?", correo).
		First(&usuario).Error; err != nil {
		return nil, err
	}

	return &usuario, nil
}

func (r *usuarioRepository) FindRolByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&rol).Error; err != nil {
		return nil, err
	}

	return &rol, nil
}

func (r *usuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

func (r *usuarioRepository) FindAll(ctx context.Context) ([]*model.Usuario, error) {
	var usuarios []*model.Usuario
	if err := r.db.WithContext(ctx).
		Preload("Rol").
		Preload("Puesto").
		Find(&usuarios).Error; err != nil {
		return nil, err
	}

	return usuarios, nil
}

func (r *usuarioRepository) FindActivos(ctx context.Context, area string) ([]*model.Usuario, error) {
	query := r.db.WithContext(ctx).
		Preload("Rol").
		Preload("Puesto").
		Where("estado = ?", model.EstadoUsuarioActivo)

	if area != "" {
		query = query.
			Joins("JOIN puestos ON puestos.id = usuarios.puesto_id").
			Where("puestos.area = ?", area)
	}

	var usuarios []*model.Usuario
	if err := query.Find(&usuarios).Error; err != nil {
		return nil, err
	}

	return usuarios, nil
}

func (r *usuarioRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Usuario{}, "id = ?", id).Error
}

func (r *usuarioRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
