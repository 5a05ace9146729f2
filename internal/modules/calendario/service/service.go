package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/calendario/dto"
	"github.com/andeshr/portalrh/internal/modules/calendario/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/google/uuid"
)

const formatoFecha = "2006-01-02"

// ScopeGeneral is the single shared vacation calendar. Scopes exist so a
// future per-sede or per-equipo calendar doesn't need a schema change.
const ScopeGeneral = "general"

type CalendarioService interface {
	Listar(ctx context.Context, scopeID string) ([]dto.IntervaloResponse, error)
	// Deshabilitar blocks the range by inserting one new interval. It does
	// not merge with pre-existing overlapping blocked intervals; redundant
	// overlap is tolerated (see DESIGN.md).
	Deshabilitar(ctx context.Context, scopeID string, rango dto.RangoRequest) error
	// Habilitar unblocks exactly the given sub-range: every overlapping
	// blocked interval is deleted and its portions outside the range are
	// re-inserted as narrower intervals. Afterwards no blocked interval of
	// the scope overlaps the range.
	Habilitar(ctx context.Context, scopeID string, rango dto.RangoRequest) error
	// RangoBloqueado reports whether [inicio, fin] intersects any blocked
	// interval; vacaciones uses it to reject requests over closed periods.
	RangoBloqueado(ctx context.Context, scopeID string, inicio, fin time.Time) (bool, error)
}

type calendarioService struct {
	repo repository.CalendarioRepository
}

func NewCalendarioService(repo repository.CalendarioRepository) CalendarioService {
	return &calendarioService{repo: repo}
}

func (s *calendarioService) Listar(ctx context.Context, scopeID string) ([]dto.IntervaloResponse, error) {
	intervalos, err := s.repo.FindBloqueados(ctx, scopeID)
	if err != nil {
		return nil, err
	}

	respuestas := make([]dto.IntervaloResponse, 0, len(intervalos))
	for _, intervalo := range intervalos {
		respuestas = append(respuestas, dto.IntervaloResponse{
			ID:          intervalo.ID.String(),
			ScopeID:     intervalo.ScopeID,
			FechaInicio: intervalo.FechaInicio.Format(formatoFecha),
			FechaFin:    intervalo.FechaFin.Format(formatoFecha),
			Disponible:  intervalo.Disponible,
		})
	}
	return respuestas, nil
}

func (s *calendarioService) Deshabilitar(ctx context.Context, scopeID string, rango dto.RangoRequest) error {
	inicio, fin, err := parseRango(rango)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, &model.IntervaloDisponibilidad{
		ScopeID:     scopeID,
		FechaInicio: inicio,
		FechaFin:    fin,
		Disponible:  false,
	})
}

func (s *calendarioService) Habilitar(ctx context.Context, scopeID string, rango dto.RangoRequest) error {
	inicio, fin, err := parseRango(rango)
	if err != nil {
		return err
	}

	solapados, err := s.repo.FindBloqueadosSolapados(ctx, scopeID,
		inicio.Format(formatoFecha), fin.Format(formatoFecha))
	if err != nil {
		return err
	}
	if len(solapados) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(solapados))
	var restos []model.IntervaloDisponibilidad
	for _, intervalo := range solapados {
		ids = append(ids, intervalo.ID)

		// Piece strictly before the enabled range.
		if intervalo.FechaInicio.Before(inicio) {
			restos = append(restos, model.IntervaloDisponibilidad{
				ScopeID:     scopeID,
				FechaInicio: intervalo.FechaInicio,
				FechaFin:    inicio.AddDate(0, 0, -1),
				Disponible:  false,
			})
		}
		// Piece strictly after the enabled range.
		if intervalo.FechaFin.After(fin) {
			restos = append(restos, model.IntervaloDisponibilidad{
				ScopeID:     scopeID,
				FechaInicio: fin.AddDate(0, 0, 1),
				FechaFin:    intervalo.FechaFin,
				Disponible:  false,
			})
		}
	}

	return s.repo.ReemplazarIntervalos(ctx, ids, restos)
}

func (s *calendarioService) RangoBloqueado(ctx context.Context, scopeID string, inicio, fin time.Time) (bool, error) {
	solapados, err := s.repo.FindBloqueadosSolapados(ctx, scopeID,
		inicio.Format(formatoFecha), fin.Format(formatoFecha))
	if err != nil {
		return false, err
	}
	return len(solapados) > 0, nil
}

func parseRango(rango dto.RangoRequest) (time.Time, time.Time, error) {
	inicio, err := time.Parse(formatoFecha, rango.FechaInicio)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.New(0, "fecha_inicio inválida", apperror.ErrInvalidInput)
	}
	fin, err := time.Parse(formatoFecha, rango.FechaFin)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.New(0, "fecha_fin inválida", apperror.ErrInvalidInput)
	}
	if fin.Before(inicio) {
		return time.Time{}, time.Time{}, fmt.Errorf("el rango es inválido: %w", apperror.ErrInvalidInput)
	}
	return inicio, fin, nil
}
