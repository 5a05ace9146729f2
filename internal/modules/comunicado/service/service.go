package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/andeshr/portalrh/internal/model"
	adjuntoRepo "github.com/andeshr/portalrh/internal/modules/adjunto/repository"
	busqueda "github.com/andeshr/portalrh/internal/modules/busqueda/service"
	comunicadoDto "github.com/andeshr/portalrh/internal/modules/comunicado/dto"
	repo "github.com/andeshr/portalrh/internal/modules/comunicado/repository"
	notificacion "github.com/andeshr/portalrh/internal/modules/notificacion/service"
	usuarioRepo "github.com/andeshr/portalrh/internal/modules/usuario/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type ComunicadoService interface {
	CrearComunicado(ctx context.Context, usuarioID uuid.UUID, req comunicadoDto.CrearComunicadoRequest) (*comunicadoDto.ComunicadoResponse, error)
	GetComunicados(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*comunicadoDto.PaginatedComunicadosResponse, error)
	GetComunicadoBySlug(ctx context.Context, usuarioID uuid.UUID, slug string) (*comunicadoDto.ComunicadoResponse, error)
	ActualizarComunicado(ctx context.Context, usuarioID, comunicadoID uuid.UUID, req comunicadoDto.ActualizarComunicadoRequest) error
	PublicarComunicado(ctx context.Context, usuarioID, comunicadoID uuid.UUID) error
	EliminarComunicado(ctx context.Context, comunicadoID uuid.UUID) error
}

type comunicadoService struct {
	comunicadoRepo repo.ComunicadoRepository
	adjuntoRepo    adjuntoRepo.AdjuntoRepository
	usuarioRepo    usuarioRepo.UsuarioRepository
	notificaciones notificacion.NotificacionService
	envio          notificacion.EnvioService
	meili          busqueda.BusquedaService
	sanitizer      *bluemonday.Policy
}

func NewComunicadoService(
	comunicadoRepo repo.ComunicadoRepository,
	adjuntoRepo adjuntoRepo.AdjuntoRepository,
	usuarioRepo usuarioRepo.UsuarioRepository,
	notificaciones notificacion.NotificacionService,
	envio notificacion.EnvioService,
	meili busqueda.BusquedaService,
) ComunicadoService {
	return &comunicadoService{
		comunicadoRepo: comunicadoRepo,
		adjuntoRepo:    adjuntoRepo,
		usuarioRepo:    usuarioRepo,
		notificaciones: notificaciones,
		envio:          envio,
		meili:          meili,
		sanitizer:      bluemonday.UGCPolicy(),
	}
}

func (s *comunicadoService) CrearComunicado(ctx context.Context, usuarioID uuid.UUID, req comunicadoDto.CrearComunicadoRequest) (*comunicadoDto.ComunicadoResponse, error) {
	autor, err := s.usuarioRepo.FindByID(ctx, usuarioID.String())
	if err != nil {
		return nil, fmt.Errorf("author not found: %w", apperror.ErrNotFound)
	}

	comunicado := &model.Comunicado{
		UsuarioID:  usuarioID,
		Titulo:     req.Titulo,
		Slug:       s.generateUniqueSlug(ctx, req.Titulo),
		Contenido:  s.sanitizer.Sanitize(req.Contenido),
		Audiencia:  req.Audiencia,
		PortadaURL: req.PortadaURL,
	}

	if req.Publicar {
		now := time.Now()
		comunicado.Publicado = true
		comunicado.PublicadoEn = &now
	}

	if err := s.comunicadoRepo.Create(ctx, comunicado); err != nil {
		return nil, err
	}

	if len(req.AdjuntoIDs) > 0 {
		if err := s.adjuntoRepo.UpdateComunicadoID(ctx, req.AdjuntoIDs, comunicado.ID, usuarioID); err != nil {
			return nil, err
		}
	}

	comunicado.Usuario = *autor

	if s.meili != nil {
		if err := s.meili.IndexarComunicado(comunicado); err != nil {
			log.Printf("Failed to index comunicado: %v", err)
		}
	}

	if comunicado.Publicado {
		go s.difundirComunicado(comunicado)
	}

	resp := comunicadoDto.MapComunicadoResponse(comunicado)
	return &resp, nil
}

func (s *comunicadoService) GetComunicados(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*comunicadoDto.PaginatedComunicadosResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID.String())
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
	}

	audiencias, soloPublicados := s.audienciasVisibles(usuario)

	pag.Normalize()
	comunicados, total, err := s.comunicadoRepo.FindAll(ctx, audiencias, soloPublicados, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]comunicadoDto.ComunicadoResponse, 0, len(comunicados))
	for _, c := range comunicados {
		data = append(data, comunicadoDto.MapComunicadoResponse(c))
	}

	return &comunicadoDto.PaginatedComunicadosResponse{
		Data: data,
		Meta: commonDto.NewPageMeta(pag, total),
	}, nil
}

func (s *comunicadoService) GetComunicadoBySlug(ctx context.Context, usuarioID uuid.UUID, slug string) (*comunicadoDto.ComunicadoResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID.String())
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
	}

	comunicado, err := s.comunicadoRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("comunicado not found: %w", apperror.ErrNotFound)
	}

	if !s.puedeVer(usuario, comunicado) {
		return nil, fmt.Errorf("comunicado not visible for this user: %w", apperror.ErrForbidden)
	}

	resp := comunicadoDto.MapComunicadoResponse(comunicado)
	return &resp, nil
}

func (s *comunicadoService) ActualizarComunicado(ctx context.Context, usuarioID, comunicadoID uuid.UUID, req comunicadoDto.ActualizarComunicadoRequest) error {
	comunicado, err := s.comunicadoRepo.FindByID(ctx, comunicadoID)
	if err != nil {
		return fmt.Errorf("comunicado not found: %w", apperror.ErrNotFound)
	}

	if req.Titulo != nil {
		comunicado.Titulo = *req.Titulo
	}
	if req.Contenido != nil {
		comunicado.Contenido = s.sanitizer.Sanitize(*req.Contenido)
	}
	if req.Audiencia != nil {
		comunicado.Audiencia = *req.Audiencia
	}
	if req.PortadaURL != nil {
		comunicado.PortadaURL = req.PortadaURL
	}

	if err := s.comunicadoRepo.Update(ctx, comunicado); err != nil {
		return err
	}

	if len(req.AdjuntoIDs) > 0 {
		if err := s.adjuntoRepo.UpdateComunicadoID(ctx, req.AdjuntoIDs, comunicado.ID, usuarioID); err != nil {
			return err
		}
	}

	if s.meili != nil {
		if err := s.meili.IndexarComunicado(comunicado); err != nil {
			log.Printf("Failed to reindex comunicado: %v", err)
		}
	}

	return nil
}

// PublicarComunicado flips a draft to published and fans out notifications.
// Publishing an already-published comunicado is a no-op, so retrying the
// endpoint cannot double-send the emails.
func (s *comunicadoService) PublicarComunicado(ctx context.Context, usuarioID, comunicadoID uuid.UUID) error {
	comunicado, err := s.comunicadoRepo.FindByID(ctx, comunicadoID)
	if err != nil {
		return fmt.Errorf("comunicado not found: %w", apperror.ErrNotFound)
	}

	if comunicado.Publicado {
		return nil
	}

	now := time.Now()
	comunicado.Publicado = true
	comunicado.PublicadoEn = &now

	if err := s.comunicadoRepo.Update(ctx, comunicado); err != nil {
		return err
	}

	if s.meili != nil {
		if err := s.meili.IndexarComunicado(comunicado); err != nil {
			log.Printf("Failed to reindex comunicado: %v", err)
		}
	}

	go s.difundirComunicado(comunicado)

	return nil
}

func (s *comunicadoService) EliminarComunicado(ctx context.Context, comunicadoID uuid.UUID) error {
	if _, err := s.comunicadoRepo.FindByID(ctx, comunicadoID); err != nil {
		return fmt.Errorf("comunicado not found: %w", apperror.ErrNotFound)
	}

	if err := s.comunicadoRepo.Delete(ctx, comunicadoID); err != nil {
		return err
	}

	if s.meili != nil {
		if err := s.meili.EliminarComunicado(comunicadoID.String()); err != nil {
			log.Printf("Failed to remove comunicado from index: %v", err)
		}
	}

	return nil
}

// difundirComunicado runs the post-publish side effects: one in-app
// notification per recipient plus the bulk email dispatch. It runs in its
// own goroutine with a fresh context so an HTTP cancel cannot cut it short.
func (s *comunicadoService) difundirComunicado(comunicado *model.Comunicado) {
	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Minute)
	defer cancel()

	area := ""
	if comunicado.Audiencia != model.AudienciaTodos {
		area = comunicado.Audiencia
	}

	destinatarios, err := s.usuarioRepo.FindActivos(ctx, area)
	if err != nil {
		log.Printf("Failed to resolve comunicado recipients: %v", err)
	}

	for _, u := range destinatarios {
		if u.ID == comunicado.UsuarioID {
			continue
		}
		notif := &model.Notificacion{
			UsuarioID:   u.ID,
			ActorID:     comunicado.UsuarioID,
			EntidadID:   comunicado.ID,
			TipoEntidad: model.TipoHiloComunicado,
			Tipo:        "nuevo_comunicado",
			Mensaje:     fmt.Sprintf("Nuevo comunicado: %s", comunicado.Titulo),
		}
		if err := s.notificaciones.CrearNotificacion(ctx, notif); err != nil {
			log.Printf("Failed to create notification for %s: %v", u.ID, err)
		}
	}

	if s.envio != nil {
		if _, err := s.envio.NotificarComunicado(ctx, comunicado.Audiencia, comunicado.Titulo, comunicado.Contenido); err != nil {
			log.Printf("Comunicado email dispatch ended with error: %v", err)
		}
	}
}

func (s *comunicadoService) audienciasVisibles(usuario *model.Usuario) (audiencias []string, soloPublicados bool) {
	if usuario.Rol.Nombre == model.RolAdmin {
		return nil, false
	}

	audiencias = []string{model.AudienciaTodos}
	if usuario.Puesto != nil && usuario.Puesto.Area != "" {
		audiencias = append(audiencias, usuario.Puesto.Area)
	}
	return audiencias, true
}

func (s *comunicadoService) puedeVer(usuario *model.Usuario, comunicado *model.Comunicado) bool {
	audiencias, soloPublicados := s.audienciasVisibles(usuario)
	if audiencias == nil {
		return true
	}
	if soloPublicados && !comunicado.Publicado {
		return false
	}
	for _, a := range audiencias {
		if a == comunicado.Audiencia {
			return true
		}
	}
	return false
}

var slugInvalido = regexp.MustCompile("[^a-z0-9 ]+")

func (s *comunicadoService) generateUniqueSlug(ctx context.Context, titulo string) string {
	slug := strings.ToLower(titulo)
	slug = slugInvalido.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.Trim(slug, "-")

	existing, _ := s.comunicadoRepo.FindBySlug(ctx, slug)
	if existing != nil {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}
	return slug
}
