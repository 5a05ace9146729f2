package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
	adjuntoRepo "github.com/andeshr/portalrh/internal/modules/adjunto/repository"
	busqueda "github.com/andeshr/portalrh/internal/modules/busqueda/service"
	postulacionDto "github.com/andeshr/portalrh/internal/modules/postulacion/dto"
	repo "github.com/andeshr/portalrh/internal/modules/postulacion/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type PostulacionService interface {
	CrearVacante(ctx context.Context, req postulacionDto.CrearVacanteRequest) (*postulacionDto.VacanteResponse, error)
	GetVacantes(ctx context.Context, incluirCerradas bool) ([]postulacionDto.VacanteResponse, error)
	GetVacanteBySlug(ctx context.Context, slug string) (*postulacionDto.VacanteResponse, error)
	ActualizarVacante(ctx context.Context, vacanteID uuid.UUID, req postulacionDto.ActualizarVacanteRequest) error
	// Postularse registers a public job application. One application per
	// (vacante, correo); a duplicate is rejected with a conflict.
	Postularse(ctx context.Context, vacanteID uuid.UUID, req postulacionDto.CrearPostulacionRequest) (*postulacionDto.PostulacionResponse, error)
	GetPostulaciones(ctx context.Context, vacanteID uuid.UUID, pag commonDto.Pagination) (*postulacionDto.PaginatedPostulacionesResponse, error)
}

type postulacionService struct {
	vacanteRepo     repo.VacanteRepository
	postulacionRepo repo.PostulacionRepository
	adjuntoRepo     adjuntoRepo.AdjuntoRepository
	meili           busqueda.BusquedaService
	sanitizer       *bluemonday.Policy
}

func NewPostulacionService(
	vacanteRepo repo.VacanteRepository,
	postulacionRepo repo.PostulacionRepository,
	adjuntoRepo adjuntoRepo.AdjuntoRepository,
	meili busqueda.BusquedaService,
) PostulacionService {
	return &postulacionService{
		vacanteRepo:     vacanteRepo,
		postulacionRepo: postulacionRepo,
		adjuntoRepo:     adjuntoRepo,
		meili:           meili,
		sanitizer:       bluemonday.UGCPolicy(),
	}
}

func (s *postulacionService) CrearVacante(ctx context.Context, req postulacionDto.CrearVacanteRequest) (*postulacionDto.VacanteResponse, error) {
	puestoID, err := uuid.Parse(req.PuestoID)
	if err != nil {
		return nil, fmt.Errorf("invalid puesto id: %w", apperror.ErrBadRequest)
	}

	vacante := &model.Vacante{
		PuestoID:    puestoID,
		Titulo:      req.Titulo,
		Slug:        s.generateUniqueSlug(ctx, req.Titulo),
		Descripcion: s.sanitizer.Sanitize(req.Descripcion),
		Abierta:     true,
	}

	if err := s.vacanteRepo.Create(ctx, vacante); err != nil {
		return nil, err
	}

	creada, err := s.vacanteRepo.FindByID(ctx, vacante.ID)
	if err != nil {
		return nil, err
	}

	if s.meili != nil {
		if err := s.meili.IndexarVacante(creada); err != nil {
			log.Printf("Failed to index vacante: %v", err)
		}
	}

	resp := postulacionDto.MapVacanteResponse(creada)
	return &resp, nil
}

func (s *postulacionService) GetVacantes(ctx context.Context, incluirCerradas bool) ([]postulacionDto.VacanteResponse, error) {
	vacantes, err := s.vacanteRepo.FindAll(ctx, !incluirCerradas)
	if err != nil {
		return nil, err
	}

	data := make([]postulacionDto.VacanteResponse, 0, len(vacantes))
	for _, v := range vacantes {
		data = append(data, postulacionDto.MapVacanteResponse(v))
	}
	return data, nil
}

func (s *postulacionService) GetVacanteBySlug(ctx context.Context, slug string) (*postulacionDto.VacanteResponse, error) {
	vacante, err := s.vacanteRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("vacante not found: %w", apperror.ErrNotFound)
	}

	resp := postulacionDto.MapVacanteResponse(vacante)
	return &resp, nil
}

func (s *postulacionService) ActualizarVacante(ctx context.Context, vacanteID uuid.UUID, req postulacionDto.ActualizarVacanteRequest) error {
	vacante, err := s.vacanteRepo.FindByID(ctx, vacanteID)
	if err != nil {
		return fmt.Errorf("vacante not found: %w", apperror.ErrNotFound)
	}

	if req.Titulo != nil {
		vacante.Titulo = *req.Titulo
	}
	if req.Descripcion != nil {
		vacante.Descripcion = s.sanitizer.Sanitize(*req.Descripcion)
	}
	if req.Abierta != nil {
		vacante.Abierta = *req.Abierta
	}

	if err := s.vacanteRepo.Update(ctx, vacante); err != nil {
		return err
	}

	if s.meili != nil {
		if vacante.Abierta {
			if err := s.meili.IndexarVacante(vacante); err != nil {
				log.Printf("Failed to reindex vacante: %v", err)
			}
		} else {
			if err := s.meili.EliminarVacante(vacante.ID.String()); err != nil {
				log.Printf("Failed to remove vacante from index: %v", err)
			}
		}
	}

	return nil
}

func (s *postulacionService) Postularse(ctx context.Context, vacanteID uuid.UUID, req postulacionDto.CrearPostulacionRequest) (*postulacionDto.PostulacionResponse, error) {
	vacante, err := s.vacanteRepo.FindByID(ctx, vacanteID)
	if err != nil {
		return nil, fmt.Errorf("vacante not found: %w", apperror.ErrNotFound)
	}
	if !vacante.Abierta {
		return nil, fmt.Errorf("la vacante ya no recibe postulaciones: %w", apperror.ErrConflict)
	}

	correo := strings.ToLower(strings.TrimSpace(req.Correo))

	existente, err := s.postulacionRepo.FindByVacanteYCorreo(ctx, vacanteID, correo)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("ya existe una postulación con este correo para la vacante: %w", apperror.ErrConflict)
	}

	postulacion := &model.Postulacion{
		VacanteID:      vacanteID,
		NombreCompleto: req.NombreCompleto,
		Correo:         correo,
		Telefono:       req.Telefono,
		CVURL:          req.CVURL,
	}

	if err := s.postulacionRepo.Create(ctx, postulacion); err != nil {
		// The unique index catches the race two concurrent submissions
		// can slip past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("ya existe una postulación con este correo para la vacante: %w", apperror.ErrConflict)
		}
		return nil, err
	}

	if len(req.AdjuntoIDs) > 0 {
		if err := s.adjuntoRepo.UpdatePostulacionID(ctx, req.AdjuntoIDs, postulacion.ID); err != nil {
			return nil, err
		}
	}

	resp := postulacionDto.MapPostulacionResponse(postulacion)
	return &resp, nil
}

func (s *postulacionService) GetPostulaciones(ctx context.Context, vacanteID uuid.UUID, pag commonDto.Pagination) (*postulacionDto.PaginatedPostulacionesResponse, error) {
	pag.Normalize()
	postulaciones, total, err := s.postulacionRepo.FindByVacante(ctx, vacanteID, pag.Offset(), pag.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]postulacionDto.PostulacionResponse, 0, len(postulaciones))
	for _, p := range postulaciones {
		data = append(data, postulacionDto.MapPostulacionResponse(p))
	}

	return &postulacionDto.PaginatedPostulacionesResponse{
		Data: data,
		Meta: commonDto.NewPageMeta(pag, total),
	}, nil
}

var slugInvalido = regexp.MustCompile("[^a-z0-9 ]+")

func (s *postulacionService) generateUniqueSlug(ctx context.Context, titulo string) string {
	slug := strings.ToLower(titulo)
	slug = slugInvalido.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.Trim(slug, "-")

	existing, _ := s.vacanteRepo.FindBySlug(ctx, slug)
	if existing != nil {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}
	return slug
}
