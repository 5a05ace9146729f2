package service

import (
	"context"
	"fmt"
	"log"

	"github.com/andeshr/portalrh/internal/model"
	comentarioRepo "github.com/andeshr/portalrh/internal/modules/comentario/repository"
	comunicadoRepo "github.com/andeshr/portalrh/internal/modules/comunicado/repository"
	"github.com/andeshr/portalrh/internal/modules/notificacion/dto"
	usuarioRepo "github.com/andeshr/portalrh/internal/modules/usuario/repository"
	"github.com/andeshr/portalrh/pkg/mailer"
	"github.com/google/uuid"
)

// EnvioService resolves recipients and runs bulk email dispatches for the
// portal's business events. Delivery failure is reported as metadata, never
// escalated to the triggering action.
type EnvioService interface {
	NotificarComunicado(ctx context.Context, audiencia, titulo, contenido string) (*dto.ResumenEnvio, error)
	NotificarComunicadoPorID(ctx context.Context, comunicadoID uuid.UUID, titulo, contenido string) (*dto.ResumenEnvio, error)
	NotificarSolicitud(ctx context.Context, tipo string, solicitudID uuid.UUID, mensaje string) (*dto.ResumenEnvio, error)
	ResolverDestinatarios(ctx context.Context, audiencia string) ([]dto.Destinatario, error)
}

type envioService struct {
	dispatcher  *Dispatcher
	usuarios    usuarioRepo.UsuarioRepository
	comentarios comentarioRepo.ComentarioRepository
	comunicados comunicadoRepo.ComunicadoRepository
}

func NewEnvioService(dispatcher *Dispatcher, usuarios usuarioRepo.UsuarioRepository, comentarios comentarioRepo.ComentarioRepository, comunicados comunicadoRepo.ComunicadoRepository) EnvioService {
	return &envioService{
		dispatcher:  dispatcher,
		usuarios:    usuarios,
		comentarios: comentarios,
		comunicados: comunicados,
	}
}

// ResolverDestinatarios maps the audience to the active users it covers.
// Rows without a usable address are dropped here; syntactic validation is
// the dispatcher's job.
func (s *envioService) ResolverDestinatarios(ctx context.Context, audiencia string) ([]dto.Destinatario, error) {
	area := ""
	if audiencia == model.AudienciaAdministrativo || audiencia == model.AudienciaOperativo {
		area = audiencia
	}

	usuarios, err := s.usuarios.FindActivos(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	destinatarios := make([]dto.Destinatario, 0, len(usuarios))
	for _, u := range usuarios {
		if u.Correo == "" {
			continue
		}
		destinatarios = append(destinatarios, dto.Destinatario{
			Correo: u.Correo,
			Nombre: u.Nombre,
		})
	}

	return destinatarios, nil
}

func (s *envioService) NotificarComunicado(ctx context.Context, audiencia, titulo, contenido string) (*dto.ResumenEnvio, error) {
	destinatarios, err := s.ResolverDestinatarios(ctx, audiencia)
	if err != nil {
		return nil, err
	}

	msg := mailer.Message{
		Subject:  fmt.Sprintf("Nuevo comunicado: %s", titulo),
		HTMLBody: fmt.Sprintf("<h2>%s</h2>%s", titulo, contenido),
		TextBody: fmt.Sprintf("%s\n\n%s", titulo, contenido),
	}

	resumen, err := s.dispatcher.Dispatch(ctx, destinatarios, msg)
	if resumen != nil {
		log.Printf("[envio] comunicado %q: %d enviados, %d fallidos, %d reintentos",
			titulo, resumen.Successful, resumen.Failed, resumen.TotalRetries)
	}
	return resumen, err
}

// NotificarComunicadoPorID resolves the announcement's audience before
// dispatching; this is the HTTP entry-point path, where the body carries
// only id/titulo/contenido.
func (s *envioService) NotificarComunicadoPorID(ctx context.Context, comunicadoID uuid.UUID, titulo, contenido string) (*dto.ResumenEnvio, error) {
	comunicado, err := s.comunicados.FindByID(ctx, comunicadoID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comunicado %s: %w", comunicadoID, err)
	}

	return s.NotificarComunicado(ctx, comunicado.Audiencia, titulo, contenido)
}

// NotificarSolicitud emails the owner of one request (vacaciones,
// incapacidad or certificación); content is resolved server-side.
func (s *envioService) NotificarSolicitud(ctx context.Context, tipo string, solicitudID uuid.UUID, mensaje string) (*dto.ResumenEnvio, error) {
	info, err := s.comentarios.ResolverHilo(ctx, tipo, solicitudID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve request %s/%s: %w", tipo, solicitudID, err)
	}

	propietario, err := s.usuarios.FindByID(ctx, info.PropietarioID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve request owner: %w", err)
	}

	destinatarios := []dto.Destinatario{{Correo: propietario.Correo, Nombre: propietario.Nombre}}

	msg := mailer.Message{
		Subject:  fmt.Sprintf("Actualización de su %s", info.Titulo),
		HTMLBody: fmt.Sprintf("<p>Hola %s,</p><p>%s</p>", propietario.Nombre, mensaje),
		TextBody: fmt.Sprintf("Hola %s,\n\n%s", propietario.Nombre, mensaje),
	}

	return s.dispatcher.Dispatch(ctx, destinatarios, msg)
}
