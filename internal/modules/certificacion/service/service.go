package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	certificacionDto "github.com/andeshr/portalrh/internal/modules/certificacion/dto"
	repo "github.com/andeshr/portalrh/internal/modules/certificacion/repository"
	notificacion "github.com/andeshr/portalrh/internal/modules/notificacion/service"
	"github.com/andeshr/portalrh/pkg/apperror"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CertificacionService interface {
	CrearSolicitud(ctx context.Context, usuarioID uuid.UUID, req certificacionDto.CrearCertificacionRequest) (*certificacionDto.CertificacionResponse, error)
	GetMisSolicitudes(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*certificacionDto.PaginatedCertificacionesResponse, error)
	GetSolicitudes(ctx context.Context, estado string, pag commonDto.Pagination) (*certificacionDto.PaginatedCertificacionesResponse, error)
	// CompletarSolicitud attaches the generated document and marks the
	// request entregada.
	CompletarSolicitud(ctx context.Context, adminID, solicitudID uuid.UUID, req certificacionDto.CompletarCertificacionRequest) error
}

type certificacionService struct {
	certificacionRepo repo.CertificacionRepository
	notificaciones    notificacion.NotificacionService
	envio             notificacion.EnvioService
}

func NewCertificacionService(
	certificacionRepo repo.CertificacionRepository,
	notificaciones notificacion.NotificacionService,
	envio notificacion.EnvioService,
) CertificacionService {
	return &certificacionService{
		certificacionRepo: certificacionRepo,
		notificaciones:    notificaciones,
		envio:             envio,
	}
}

func (s *certificacionService) CrearSolicitud(ctx context.Context, usuarioID uuid.UUID, req certificacionDto.CrearCertificacionRequest) (*certificacionDto.CertificacionResponse, error) {
	solicitud := &model.SolicitudCertificacion{
		UsuarioID:         usuarioID,
		TipoCertificacion: req.TipoCertificacion,
		DirigidoA:         req.DirigidoA,
		Estado:            model.EstadoPendiente,
	}

	if err := s.certificacionRepo.Create(ctx, solicitud); err != nil {
		return nil, err
	}

	creada, err := s.certificacionRepo.FindByID(ctx, solicitud.ID)
	if err != nil {
		return nil, err
	}

	resp := certificacionDto.MapCertificacionResponse(creada)
	return &resp, nil
}

func (s *certificacionService) GetMisSolicitudes(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*certificacionDto.PaginatedCertificacionesResponse, error) {
	pag.Normalize()
	solicitudes, total, err := s.certificacionRepo.FindByUsuario(ctx, usuarioID, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}
	return paginar(solicitudes, pag, total), nil
}

func (s *certificacionService) GetSolicitudes(ctx context.Context, estado string, pag commonDto.Pagination) (*certificacionDto.PaginatedCertificacionesResponse, error) {
	pag.Normalize()
	solicitudes, total, err := s.certificacionRepo.FindAll(ctx, estado, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}
	return paginar(solicitudes, pag, total), nil
}

func (s *certificacionService) CompletarSolicitud(ctx context.Context, adminID, solicitudID uuid.UUID, req certificacionDto.CompletarCertificacionRequest) error {
	solicitud, err := s.certificacionRepo.FindByID(ctx, solicitudID)
	if err != nil {
		return fmt.Errorf("solicitud not found: %w", apperror.ErrNotFound)
	}

	if solicitud.Estado == model.EstadoEntregada {
		return fmt.Errorf("la solicitud ya fue entregada: %w", apperror.ErrConflict)
	}

	now := time.Now()
	solicitud.Estado = model.EstadoEntregada
	solicitud.DocumentoURL = &req.DocumentoURL
	solicitud.EntregadaEn = &now

	if err := s.certificacionRepo.Update(ctx, solicitud); err != nil {
		return err
	}

	go s.notificarEntrega(solicitud, adminID)

	return nil
}

func (s *certificacionService) notificarEntrega(solicitud *model.SolicitudCertificacion, adminID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Minute)
	defer cancel()

	mensaje := fmt.Sprintf("Su certificación %s está lista para descargar", solicitud.TipoCertificacion)

	notif := &model.Notificacion{
		UsuarioID:   solicitud.UsuarioID,
		ActorID:     adminID,
		EntidadID:   solicitud.ID,
		TipoEntidad: model.TipoHiloCertificacion,
		Tipo:        "cambio_estado",
		Mensaje:     mensaje,
	}
	if err := s.notificaciones.CrearNotificacion(ctx, notif); err != nil {
		log.Printf("Failed to create certificacion notification: %v", err)
	}

	if s.envio != nil {
		if _, err := s.envio.NotificarSolicitud(ctx, model.TipoHiloCertificacion, solicitud.ID, mensaje); err != nil {
			log.Printf("Certificacion email dispatch ended with error: %v", err)
		}
	}
}

func paginar(solicitudes []*model.SolicitudCertificacion, pag commonDto.Pagination, total int64) *certificacionDto.PaginatedCertificacionesResponse {
	data := make([]certificacionDto.CertificacionResponse, 0, len(solicitudes))
	for _, s := range solicitudes {
		data = append(data, certificacionDto.MapCertificacionResponse(s))
	}
	return &certificacionDto.PaginatedCertificacionesResponse{
		Data: data,
		Meta: commonDto.NewPageMeta(pag, total),
	}
}
