package repository

import (
	"github.com/andeshr/portalrh/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(notificacion *model.Notificacion) error
	GetByUsuarioID(usuarioID uuid.UUID, limit, offset int) ([]model.Notificacion, error)
	MarkAsRead(id uuid.UUID) error
	MarkAllAsRead(usuarioID uuid.UUID) error
	CountUnread(usuarioID uuid.UUID) (int64, error)
}

type notificacionRepository struct {
	db *gorm.DB
}

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepository{db: db}
}

func (r *notificacionRepository) Create(notificacion *model.Notificacion) error {
	return r.db.Create(notificacion).Error
}

func (r *notificacionRepository) GetByUsuarioID(usuarioID uuid.UUID, limit, offset int) ([]model.Notificacion, error) {
	var notificaciones []model.Notificacion
	err := r.db.Where("usuario_id = ?", usuarioID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Preload("Actor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nombre", "avatar_url")
		}).
		Find(&notificaciones).Error
	return notificaciones, err
}

func (r *notificacionRepository) MarkAsRead(id uuid.UUID) error {
	return r.db.Model(&model.Notificacion{}).Where("id = ?", id).Update("leida", true).Error
}

func (r *notificacionRepository) MarkAllAsRead(usuarioID uuid.UUID) error {
	return r.db.Model(&model.Notificacion{}).Where("usuario_id = ? AND leida = ?", usuarioID, false).Update("leida", true).Error
}

func (r *notificacionRepository) CountUnread(usuarioID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notificacion{}).Where("usuario_id = ? AND leida = ?", usuarioID, false).Count(&count).Error
	return count, err
}
