package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andeshr/portalrh/internal/model"
	notifRepo "github.com/andeshr/portalrh/internal/modules/notificacion/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificacionService interface {
	CrearNotificacion(ctx context.Context, notificacion *model.Notificacion) error
	GetNotificaciones(usuarioID uuid.UUID, limit, offset int) ([]model.Notificacion, error)
	MarkAsRead(id uuid.UUID) error
	MarkAllAsRead(usuarioID uuid.UUID) error
	UnreadCount(usuarioID uuid.UUID) (int64, error)
}

type notificacionService struct {
	repo        notifRepo.NotificacionRepository
	redisClient *redis.Client
}

func NewNotificacionService(repo notifRepo.NotificacionRepository, redisClient *redis.Client) NotificacionService {
	return &notificacionService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// CanalUsuario is the per-user realtime channel carrying notification events.
func CanalUsuario(usuarioID string) string {
	return fmt.Sprintf("usuario_notificaciones:%s", usuarioID)
}

func (s *notificacionService) CrearNotificacion(ctx context.Context, notificacion *model.Notificacion) error {
	// 1. Save to DB
	if err := s.repo.Create(notificacion); err != nil {
		return err
	}

	// 2. Publish to Redis if Redis is available
	if s.redisClient != nil {
		payload, err := json.Marshal(notificacion)
		if err == nil {
			s.redisClient.Publish(ctx, CanalUsuario(notificacion.UsuarioID.String()), payload)
		}
	}

	return nil
}

func (s *notificacionService) GetNotificaciones(usuarioID uuid.UUID, limit, offset int) ([]model.Notificacion, error) {
	return s.repo.GetByUsuarioID(usuarioID, limit, offset)
}

func (s *notificacionService) MarkAsRead(id uuid.UUID) error {
	return s.repo.MarkAsRead(id)
}

func (s *notificacionService) MarkAllAsRead(usuarioID uuid.UUID) error {
	return s.repo.MarkAllAsRead(usuarioID)
}

func (s *notificacionService) UnreadCount(usuarioID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(usuarioID)
}
