package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	adjuntoRepo "github.com/andeshr/portalrh/internal/modules/adjunto/repository"
	incapacidadDto "github.com/andeshr/portalrh/internal/modules/incapacidad/dto"
	repo "github.com/andeshr/portalrh/internal/modules/incapacidad/repository"
	notificacion "github.com/andeshr/portalrh/internal/modules/notificacion/service"
	"github.com/andeshr/portalrh/pkg/apperror"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

const formatoFecha = "2006-01-02"

// transicionesIncapacidad lists the reachable states from each state.
// radicada -> en_revision -> aprobada | rechazada; a resolved record is
// final.
var transicionesIncapacidad = map[string][]string{
	model.EstadoRadicada:   {model.EstadoEnRevision, model.EstadoAprobada, model.EstadoRechazada},
	model.EstadoEnRevision: {model.EstadoAprobada, model.EstadoRechazada},
}

type IncapacidadService interface {
	CrearIncapacidad(ctx context.Context, usuarioID uuid.UUID, req incapacidadDto.CrearIncapacidadRequest) (*incapacidadDto.IncapacidadResponse, error)
	GetMisIncapacidades(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*incapacidadDto.PaginatedIncapacidadesResponse, error)
	GetIncapacidades(ctx context.Context, estado string, pag commonDto.Pagination) (*incapacidadDto.PaginatedIncapacidadesResponse, error)
	GetIncapacidad(ctx context.Context, incapacidadID, usuarioID uuid.UUID, esAdmin bool) (*incapacidadDto.IncapacidadResponse, error)
	RevisarIncapacidad(ctx context.Context, adminID, incapacidadID uuid.UUID, req incapacidadDto.RevisarIncapacidadRequest) error
}

type incapacidadService struct {
	incapacidadRepo repo.IncapacidadRepository
	adjuntoRepo     adjuntoRepo.AdjuntoRepository
	notificaciones  notificacion.NotificacionService
	envio           notificacion.EnvioService
}

func NewIncapacidadService(
	incapacidadRepo repo.IncapacidadRepository,
	adjuntoRepo adjuntoRepo.AdjuntoRepository,
	notificaciones notificacion.NotificacionService,
	envio notificacion.EnvioService,
) IncapacidadService {
	return &incapacidadService{
		incapacidadRepo: incapacidadRepo,
		adjuntoRepo:     adjuntoRepo,
		notificaciones:  notificaciones,
		envio:           envio,
	}
}

func (s *incapacidadService) CrearIncapacidad(ctx context.Context, usuarioID uuid.UUID, req incapacidadDto.CrearIncapacidadRequest) (*incapacidadDto.IncapacidadResponse, error) {
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

	incapacidad := &model.Incapacidad{
		UsuarioID:   usuarioID,
		FechaInicio: inicio,
		FechaFin:    fin,
		Diagnostico: req.Diagnostico,
		Estado:      model.EstadoRadicada,
	}

	if err := s.incapacidadRepo.Create(ctx, incapacidad); err != nil {
		return nil, err
	}

	// The medical certificate upload is mandatory; a submission whose files
	// cannot be claimed is rolled back by the orphan cleanup job, the record
	// itself stays.
	if err := s.adjuntoRepo.UpdateIncapacidadID(ctx, req.AdjuntoIDs, incapacidad.ID, usuarioID); err != nil {
		return nil, err
	}

	creada, err := s.incapacidadRepo.FindByID(ctx, incapacidad.ID)
	if err != nil {
		return nil, err
	}

	resp := incapacidadDto.MapIncapacidadResponse(creada)
	return &resp, nil
}

func (s *incapacidadService) GetMisIncapacidades(ctx context.Context, usuarioID uuid.UUID, pag commonDto.Pagination) (*incapacidadDto.PaginatedIncapacidadesResponse, error) {
	pag.Normalize()
	incapacidades, total, err := s.incapacidadRepo.FindByUsuario(ctx, usuarioID, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}
	return paginar(incapacidades, pag, total), nil
}

func (s *incapacidadService) GetIncapacidades(ctx context.Context, estado string, pag commonDto.Pagination) (*incapacidadDto.PaginatedIncapacidadesResponse, error) {
	pag.Normalize()
	incapacidades, total, err := s.incapacidadRepo.FindAll(ctx, estado, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}
	return paginar(incapacidades, pag, total), nil
}

func (s *incapacidadService) GetIncapacidad(ctx context.Context, incapacidadID, usuarioID uuid.UUID, esAdmin bool) (*incapacidadDto.IncapacidadResponse, error) {
	incapacidad, err := s.incapacidadRepo.FindByID(ctx, incapacidadID)
	if err != nil {
		return nil, fmt.Errorf("incapacidad not found: %w", apperror.ErrNotFound)
	}

	if !esAdmin && incapacidad.UsuarioID != usuarioID {
		return nil, fmt.Errorf("incapacidad does not belong to user: %w", apperror.ErrForbidden)
	}

	resp := incapacidadDto.MapIncapacidadResponse(incapacidad)
	return &resp, nil
}

func (s *incapacidadService) RevisarIncapacidad(ctx context.Context, adminID, incapacidadID uuid.UUID, req incapacidadDto.RevisarIncapacidadRequest) error {
	incapacidad, err := s.incapacidadRepo.FindByID(ctx, incapacidadID)
	if err != nil {
		return fmt.Errorf("incapacidad not found: %w", apperror.ErrNotFound)
	}

	if !transicionValida(incapacidad.Estado, req.Estado) {
		return fmt.Errorf("transición de %s a %s no permitida: %w", incapacidad.Estado, req.Estado, apperror.ErrConflict)
	}

	incapacidad.Estado = req.Estado
	if err := s.incapacidadRepo.Update(ctx, incapacidad); err != nil {
		return err
	}

	go s.notificarCambio(incapacidad, adminID, req)

	return nil
}

func (s *incapacidadService) notificarCambio(incapacidad *model.Incapacidad, adminID uuid.UUID, req incapacidadDto.RevisarIncapacidadRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Minute)
	defer cancel()

	mensaje := fmt.Sprintf("Su incapacidad pasó a estado %s", req.Estado)
	if req.Comentario != "" {
		mensaje = fmt.Sprintf("%s: %s", mensaje, req.Comentario)
	}

	notif := &model.Notificacion{
		UsuarioID:   incapacidad.UsuarioID,
		ActorID:     adminID,
		EntidadID:   incapacidad.ID,
		TipoEntidad: model.TipoHiloIncapacidad,
		Tipo:        "cambio_estado",
		Mensaje:     mensaje,
	}
	if err := s.notificaciones.CrearNotificacion(ctx, notif); err != nil {
		log.Printf("Failed to create incapacidad notification: %v", err)
	}

	if s.envio != nil {
		if _, err := s.envio.NotificarSolicitud(ctx, model.TipoHiloIncapacidad, incapacidad.ID, mensaje); err != nil {
			log.Printf("Incapacidad email dispatch ended with error: %v", err)
		}
	}
}

func transicionValida(desde, hacia string) bool {
	for _, permitida := range transicionesIncapacidad[desde] {
		if permitida == hacia {
			return true
		}
	}
	return false
}

func paginar(incapacidades []*model.Incapacidad, pag commonDto.Pagination, total int64) *incapacidadDto.PaginatedIncapacidadesResponse {
	data := make([]incapacidadDto.IncapacidadResponse, 0, len(incapacidades))
	for _, i := range incapacidades {
		data = append(data, incapacidadDto.MapIncapacidadResponse(i))
	}
	return &incapacidadDto.PaginatedIncapacidadesResponse{
		Data: data,
		Meta: commonDto.NewPageMeta(pag, total),
	}
}
