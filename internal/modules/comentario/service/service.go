package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/comentario/dto"
	"github.com/andeshr/portalrh/internal/modules/comentario/repository"
	notifService "github.com/andeshr/portalrh/internal/modules/notificacion/service"
	"github.com/andeshr/portalrh/pkg/ratelimiter"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

type ComentarioService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, req dto.CrearComentarioRequest) (*dto.ComentarioResponse, error)
	// ObtenerHilo returns the assembled reply forest. With marcarVisto the
	// viewer side's seen flags are persisted BEFORE the thread is returned;
	// if that write fails the whole call fails and the unread badge stays.
	ObtenerHilo(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin, marcarVisto bool) (*dto.HiloResponse, error)
	ContarNoVistos(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin bool) (int64, error)
}

type comentarioService struct {
	repo         repository.ComentarioRepository
	redisClient  *redis.Client
	notificacion notifService.NotificacionService
	sanitizer    *bluemonday.Policy
}

func NewComentarioService(repo repository.ComentarioRepository, redisClient *redis.Client, notificacion notifService.NotificacionService) ComentarioService {
	return &comentarioService{
		repo:         repo,
		redisClient:  redisClient,
		notificacion: notificacion,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

// CanalHilo is the realtime channel of one comment thread.
func CanalHilo(tipoHilo string, hiloID uuid.UUID) string {
	return fmt.Sprintf("hilo:%s:%s", tipoHilo, hiloID)
}

func (s *comentarioService) Crear(ctx context.Context, usuarioID uuid.UUID, esAdmin bool, req dto.CrearComentarioRequest) (*dto.ComentarioResponse, error) {
	limit := ratelimiter.GetDurationFromEnv("RATE_LIMIT_COMENTARIO", 15*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, usuarioID, "comentario", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, usuarioID, "comentario")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you are commenting too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	// A rejected comment must not consume the cooldown slot.
	rechazar := func(motivo string) error {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, usuarioID, "comentario")
		return errors.New(motivo)
	}

	hiloID, err := uuid.Parse(req.HiloID)
	if err != nil {
		return nil, rechazar("invalid hilo id")
	}

	info, err := s.repo.ResolverHilo(ctx, req.TipoHilo, hiloID)
	if err != nil {
		return nil, rechazar("hilo not found")
	}

	var respuestaA *uuid.UUID
	if req.RespuestaA != "" {
		pid, err := uuid.Parse(req.RespuestaA)
		if err != nil {
			return nil, rechazar("invalid parent id")
		}
		padre, err := s.repo.FindByID(ctx, pid)
		if err != nil || padre == nil {
			return nil, rechazar("parent comment not found")
		}
		if padre.TipoHilo != req.TipoHilo || padre.HiloID != hiloID {
			return nil, rechazar("parent comment belongs to another thread")
		}
		respuestaA = &pid
	}

	comentario := &model.Comentario{
		TipoHilo:   req.TipoHilo,
		HiloID:     hiloID,
		UsuarioID:  usuarioID,
		RespuestaA: respuestaA,
		Contenido:  s.sanitizer.Sanitize(req.Contenido),
		EsDeAdmin:  esAdmin,
	}
	// The author has trivially seen their own comment.
	if esAdmin {
		comentario.VistoAdmin = true
	} else {
		comentario.VistoUsuario = true
	}

	if err := s.repo.Create(ctx, comentario); err != nil {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, usuarioID, "comentario")
		return nil, err
	}

	go s.publicarEvento(comentario, info, usuarioID)

	creado, err := s.repo.FindByHilo(ctx, req.TipoHilo, hiloID)
	if err == nil {
		for i := range creado {
			if creado[i].ID == comentario.ID {
				comentario = &creado[i]
				break
			}
		}
	}

	resp := mapComentario(&NodoComentario{Comentario: *comentario})
	return resp, nil
}

// publicarEvento fires the realtime signal for a new comment and the in-app
// notification to the counterpart. The event is an invalidation signal:
// subscribers refetch the thread, they do not patch local state with it.
func (s *comentarioService) publicarEvento(comentario *model.Comentario, info *repository.InfoHilo, actorID uuid.UUID) {
	ctx := context.Background()

	if s.redisClient != nil {
		evento := dto.EventoComentario{
			TipoHilo:     comentario.TipoHilo,
			HiloID:       comentario.HiloID,
			ComentarioID: comentario.ID,
			EsDeAdmin:    comentario.EsDeAdmin,
		}
		if payload, err := json.Marshal(evento); err == nil {
			s.redisClient.Publish(ctx, CanalHilo(comentario.TipoHilo, comentario.HiloID), payload)
		}
	}

	// Admin comments notify the request/announcement owner; the owner's own
	// comments notify nobody in-app (admins watch the back-office lists).
	if comentario.EsDeAdmin && info.PropietarioID != actorID {
		notificacion := &model.Notificacion{
			UsuarioID:   info.PropietarioID,
			ActorID:     actorID,
			EntidadID:   comentario.HiloID,
			TipoEntidad: comentario.TipoHilo,
			Tipo:        "respuesta_comentario",
			Mensaje:     fmt.Sprintf("Recursos Humanos comentó en su %s", info.Titulo),
		}
		if err := s.notificacion.CrearNotificacion(ctx, notificacion); err != nil {
			log.Printf("[comentario] failed to create notification: %v", err)
		}
	}
}

func (s *comentarioService) ObtenerHilo(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin, marcarVisto bool) (*dto.HiloResponse, error) {
	if _, err := s.repo.ResolverHilo(ctx, tipoHilo, hiloID); err != nil {
		return nil, fmt.Errorf("hilo not found")
	}

	if marcarVisto {
		// Persisted first: a zero badge may only be shown after this write
		// is acknowledged (fail closed on error).
		if err := s.repo.MarcarVistos(ctx, tipoHilo, hiloID, visorAdmin); err != nil {
			return nil, fmt.Errorf("failed to mark comments as seen: %w", err)
		}
	}

	comentarios, err := s.repo.FindByHilo(ctx, tipoHilo, hiloID)
	if err != nil {
		return nil, err
	}

	noVistos, err := s.repo.CountNoVistos(ctx, tipoHilo, hiloID, visorAdmin)
	if err != nil {
		return nil, err
	}

	raices := ArmarArbol(comentarios)
	respuesta := &dto.HiloResponse{
		TipoHilo:    tipoHilo,
		HiloID:      hiloID,
		Comentarios: make([]*dto.ComentarioResponse, 0, len(raices)),
		NoVistos:    noVistos,
	}
	for _, raiz := range raices {
		respuesta.Comentarios = append(respuesta.Comentarios, mapComentario(raiz))
	}

	return respuesta, nil
}

func (s *comentarioService) ContarNoVistos(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin bool) (int64, error) {
	return s.repo.CountNoVistos(ctx, tipoHilo, hiloID, visorAdmin)
}

func mapComentario(nodo *NodoComentario) *dto.ComentarioResponse {
	autor := commonDto.AutorResponse{
		ID:     nodo.Comentario.UsuarioID.String(),
		Nombre: "Desconocido",
	}
	if nodo.Comentario.Usuario.Nombre != "" {
		autor.Nombre = nodo.Comentario.Usuario.Nombre
		autor.AvatarURL = nodo.Comentario.Usuario.AvatarURL
	}

	resp := &dto.ComentarioResponse{
		ID:            nodo.Comentario.ID,
		RespuestaA:    nodo.Comentario.RespuestaA,
		Contenido:     nodo.Comentario.Contenido,
		Autor:         autor,
		EsDeAdmin:     nodo.Comentario.EsDeAdmin,
		FechaCreacion: nodo.Comentario.CreatedAt.Format("2006-01-02 15:04:05"),
		Respuestas:    make([]*dto.ComentarioResponse, 0, len(nodo.Respuestas)),
	}
	for _, hijo := range nodo.Respuestas {
		resp.Respuestas = append(resp.Respuestas, mapComentario(hijo))
	}
	return resp
}
