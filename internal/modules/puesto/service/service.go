package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/puesto/dto"
	"github.com/andeshr/portalrh/internal/modules/puesto/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
)

type PuestoService interface {
	CrearPuesto(ctx context.Context, req dto.CrearPuestoRequest) (*dto.PuestoResponse, error)
	GetPuestos(ctx context.Context, filtro string) ([]dto.PuestoResponse, error)
	EliminarPuesto(ctx context.Context, id uuid.UUID) error
}

type puestoService struct {
	repo repository.PuestoRepository
}

func NewPuestoService(repo repository.PuestoRepository) PuestoService {
	return &puestoService{repo: repo}
}

func (s *puestoService) CrearPuesto(ctx context.Context, req dto.CrearPuestoRequest) (*dto.PuestoResponse, error) {
	slug := strings.ReplaceAll(strings.ToLower(req.Nombre), " ", "-")

	existing, _ := s.repo.FindBySlug(ctx, slug)
	if existing != nil {
		return nil, fmt.Errorf("ya existe un puesto con el nombre %s: %w", req.Nombre, apperror.ErrConflict)
	}

	puesto := &model.Puesto{
		Nombre:      req.Nombre,
		Slug:        slug,
		Descripcion: req.Descripcion,
		Area:        req.Area,
	}

	if err := s.repo.Create(ctx, puesto); err != nil {
		return nil, err
	}

	resp := mapPuesto(puesto)
	return &resp, nil
}

func (s *puestoService) GetPuestos(ctx context.Context, filtro string) ([]dto.PuestoResponse, error) {
	puestos, err := s.repo.FindAll(ctx, filtro)
	if err != nil {
		return nil, err
	}

	respuestas := make([]dto.PuestoResponse, 0, len(puestos))
	for _, p := range puestos {
		respuestas = append(respuestas, mapPuesto(p))
	}
	return respuestas, nil
}

func (s *puestoService) EliminarPuesto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("puesto not found: %w", apperror.ErrNotFound)
	}

	return s.repo.Delete(ctx, id)
}

func mapPuesto(p *model.Puesto) dto.PuestoResponse {
	return dto.PuestoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Slug:        p.Slug,
		Descripcion: p.Descripcion,
		Area:        p.Area,
	}
}
