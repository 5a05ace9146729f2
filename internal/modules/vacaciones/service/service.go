package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	calendario "github.com/andeshr/portalrh/internal/modules/calendario/service"
	calendarioDto "github.com/andeshr/portalrh/internal/modules/calendario/dto"
	notificacion "github.com/andeshr/portalrh/internal/modules/notificacion/service"
	vacacionesDto "github.com/andeshr/portalrh/internal/modules/vacaciones/dto"
	repo "github.com/andeshr/portalrh/internal/modules/vacaciones/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

const formatoFecha = "2006-01-02"

type VacacionesService interface {
	CrearSolicitud(ctx context.Context, usuarioID uuid.UUID, req vacacionesDto.CrearSolicitudRequest) (*vacacionesDto.SolicitudResponse, error)
	GetMisSolicitudes(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*vacacionesDto.PaginatedSolicitudesResponse, error)
	GetSolicitudes(ctx context.Context, estado string, pag commonDto.Pagination) (*vacacionesDto.PaginatedSolicitudesResponse, error)
	GetSolicitud(ctx context.Context, solicitudID uuid.UUID, usuarioID uuid.UUID, esAdmin bool) (*vacacionesDto.SolicitudResponse, error)
	RevisarSolicitud(ctx context.Context, adminID, solicitudID uuid.UUID, req vacacionesDto.RevisarSolicitudRequest) error
}

type vacacionesService struct {
	vacacionesRepo repo.VacacionesRepository
	calendario     calendario.CalendarioService
	notificaciones notificacion.NotificacionService
	envio          notificacion.EnvioService
}

func NewVacacionesService(
	vacacionesRepo repo.VacacionesRepository,
	calendarioService calendario.CalendarioService,
	notificaciones notificacion.NotificacionService,
	envio notificacion.EnvioService,
) VacacionesService {
	return &vacacionesService{
		vacacionesRepo: vacacionesRepo,
		calendario:     calendarioService,
		notificaciones: notificaciones,
		envio:          envio,
	}
}

func (s *vacacionesService) CrearSolicitud(ctx context.Context, usuarioID uuid.UUID, req vacacionesDto.CrearSolicitudRequest) (*vacacionesDto.SolicitudResponse, error) {
	inicio, err := time.Parse(formatoFecha, req.FechaInicio)
	if err != nil {
		return nil, fmt.Errorf("fecha_inicio inválida: %w", apperror.ErrBadRequest)
	}
	fin, err := time.Parse(formatoFecha, req.FechaFin)
	if err != nil {
		return nil, fmt.Errorf("fecha_fin inválida: %w", apperror.ErrBadRequest)
	}
	if fin.Before(inicio) {
		return nil, fmt.Errorf("fecha_fin debe ser posterior o igual a fecha_inicio: %w", apperror.ErrBadRequest)
	}

	bloqueado, err := s.calendario.RangoBloqueado(ctx, calendario.ScopeGeneral, inicio, fin)
	if err != nil {
		return nil, err
	}
	if bloqueado {
		return nil, fmt.Errorf("el rango solicitado cae en un periodo no disponible: %w", apperror.ErrConflict)
	}

	aprobadas, err := s.vacacionesRepo.FindAprobadasSolapadas(ctx, usuarioID, inicio, fin)
	if err != nil {
		return nil, err
	}
	if len(aprobadas) > 0 {
		return nil, fmt.Errorf("ya existe una solicitud aprobada que se cruza con el rango: %w", apperror.ErrConflict)
	}

	solicitud := &model.SolicitudVacaciones{
		UsuarioID:   usuarioID,
		FechaInicio: inicio,
		FechaFin:    fin,
		Motivo:      req.Motivo,
		Estado:      model.EstadoPendiente,
	}

	if err := s.vacacionesRepo.Create(ctx, solicitud); err != nil {
		return nil, err
	}

	creada, err := s.vacacionesRepo.FindByID(ctx, solicitud.ID)
	if err != nil {
		return nil, err
	}

	resp := vacacionesDto.MapSolicitudResponse(creada)
	return &resp, nil
}

func (s *vacacionesService) GetMisSolicitudes(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*vacacionesDto.PaginatedSolicitudesResponse, error) {
	pag.Normalize()
	solicitudes, total, err := s.vacacionesRepo.FindByUsuario(ctx, usuarioID, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}
	return paginar(solicitudes, pag, total), nil
}

func (s *vacacionesService) GetSolicitudes(ctx context.Context, estado string, pag commonDto.Pagination) (*vacacionesDto.PaginatedSolicitudesResponse, error) {
	pag.Normalize()
	solicitudes, total, err := s.vacacionesRepo.FindAll(ctx, estado, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}
	return paginar(solicitudes, pag, total), nil
}

func (s *vacacionesService) GetSolicitud(ctx context.Context, solicitudID uuid.UUID, usuarioID uuid.UUID, esAdmin bool) (*vacacionesDto.SolicitudResponse, error) {
	solicitud, err := s.vacacionesRepo.FindByID(ctx, solicitudID)
	if err != nil {
		return nil, fmt.Errorf("solicitud not found: %w", apperror.ErrNotFound)
	}

	if !esAdmin && solicitud.UsuarioID != usuarioID {
		return nil, fmt.Errorf("solicitud does not belong to user: %w", apperror.ErrForbidden)
	}

	resp := vacacionesDto.MapSolicitudResponse(solicitud)
	return &resp, nil
}

// RevisarSolicitud resolves a pending request. Approval also blocks the
// range on the requester's personal calendar scope so a second overlapping
// request from them is rejected at creation time.
func (s *vacacionesService) RevisarSolicitud(ctx context.Context, adminID, solicitudID uuid.UUID, req vacacionesDto.RevisarSolicitudRequest) error {
	solicitud, err := s.vacacionesRepo.FindByID(ctx, solicitudID)
	if err != nil {
		return fmt.Errorf("solicitud not found: %w", apperror.ErrNotFound)
	}

	if solicitud.Estado != model.EstadoPendiente {
		return fmt.Errorf("la solicitud ya fue revisada: %w", apperror.ErrConflict)
	}

	now := time.Now()
	solicitud.Estado = req.Estado
	solicitud.RevisadaPorID = &adminID
	solicitud.RevisadaEn = &now

	if err := s.vacacionesRepo.Update(ctx, solicitud); err != nil {
		return err
	}

	if req.Estado == model.EstadoAprobada {
		rango := calendarioDto.RangoRequest{
			FechaInicio: solicitud.FechaInicio.Format(formatoFecha),
			FechaFin:    solicitud.FechaFin.Format(formatoFecha),
		}
		if err := s.calendario.Deshabilitar(ctx, solicitud.UsuarioID.String(), rango); err != nil {
			log.Printf("Failed to block personal calendar for %s: %v", solicitud.UsuarioID, err)
		}
	}

	go s.notificarRevision(solicitud, adminID, req)

	return nil
}

func (s *vacacionesService) notificarRevision(solicitud *model.SolicitudVacaciones, adminID uuid.UUID, req vacacionesDto.RevisarSolicitudRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Minute)
	defer cancel()

	mensaje := fmt.Sprintf("Su solicitud de vacaciones fue %s", req.Estado)
	if req.Comentario != "" {
		mensaje = fmt.Sprintf("%s: %s", mensaje, req.Comentario)
	}

	notif := &model.Notificacion{
		UsuarioID:   solicitud.UsuarioID,
		ActorID:     adminID,
		EntidadID:   solicitud.ID,
		TipoEntidad: model.TipoHiloVacaciones,
		Tipo:        "cambio_estado",
		Mensaje:     mensaje,
	}
	if err := s.notificaciones.CrearNotificacion(ctx, notif); err != nil {
		log.Printf("Failed to create review notification: %v", err)
	}

	if s.envio != nil {
		if _, err := s.envio.NotificarSolicitud(ctx, model.TipoHiloVacaciones, solicitud.ID, mensaje); err != nil {
			log.Printf("Review email dispatch ended with error: %v", err)
		}
	}
}

func paginar(solicitudes []*model.SolicitudVacaciones, pag commonDto.Pagination, total int64) *vacacionesDto.PaginatedSolicitudesResponse {
	data := make([]vacacionesDto.SolicitudResponse, 0, len(solicitudes))
	for _, s := range solicitudes {
		data = append(data, vacacionesDto.MapSolicitudResponse(s))
	}
	return &vacacionesDto.PaginatedSolicitudesResponse{
		Data: data,
		Meta: commonDto.NewPageMeta(pag, total),
	}
}
