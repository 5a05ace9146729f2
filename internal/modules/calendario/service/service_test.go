package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/calendario/dto"
	"github.com/andeshr/portalrh/pkg/apperror"
)

// fakeCalendarioRepo keeps blocked intervals in memory, overlap-matching the
// same closed-range predicate the SQL uses.
type fakeCalendarioRepo struct {
	intervalos []model.IntervaloDisponibilidad
}

func (f *fakeCalendarioRepo) FindBloqueados(_ context.Context, scopeID string) ([]model.IntervaloDisponibilidad, error) {
	var out []model.IntervaloDisponibilidad
	for _, iv := range f.intervalos {
		if iv.ScopeID == scopeID && !iv.Disponible {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeCalendarioRepo) FindBloqueadosSolapados(_ context.Context, scopeID string, inicio, fin string) ([]model.IntervaloDisponibilidad, error) {
	desde, err := time.Parse("2006-01-02", inicio)
	if err != nil {
		return nil, err
	}
	hasta, err := time.Parse("2006-01-02", fin)
	if err != nil {
		return nil, err
	}

	var out []model.IntervaloDisponibilidad
	for _, iv := range f.intervalos {
		if iv.ScopeID != scopeID || iv.Disponible {
			continue
		}
		if !iv.FechaInicio.After(hasta) && !iv.FechaFin.Before(desde) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeCalendarioRepo) Create(_ context.Context, intervalo *model.IntervaloDisponibilidad) error {
	if intervalo.ID == uuid.Nil {
		intervalo.ID = uuid.New()
	}
	f.intervalos = append(f.intervalos, *intervalo)
	return nil
}

func (f *fakeCalendarioRepo) ReemplazarIntervalos(_ context.Context, ids []uuid.UUID, reemplazos []model.IntervaloDisponibilidad) error {
	borrar := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		borrar[id] = true
	}
	var restantes []model.IntervaloDisponibilidad
	for _, iv := range f.intervalos {
		if !borrar[iv.ID] {
			restantes = append(restantes, iv)
		}
	}
	for i := range reemplazos {
		if reemplazos[i].ID == uuid.Nil {
			reemplazos[i].ID = uuid.New()
		}
		restantes = append(restantes, reemplazos[i])
	}
	f.intervalos = restantes
	return nil
}

func dia(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func bloqueado(scope, inicio, fin string) model.IntervaloDisponibilidad {
	return model.IntervaloDisponibilidad{
		ID:          uuid.New(),
		ScopeID:     scope,
		FechaInicio: dia(inicio),
		FechaFin:    dia(fin),
		Disponible:  false,
	}
}

func TestDeshabilitar_InsertaSinFusionar(t *testing.T) {
	repo := &fakeCalendarioRepo{intervalos: []model.IntervaloDisponibilidad{
		bloqueado(ScopeGeneral, "2026-12-20", "2026-12-31"),
	}}
	svc := NewCalendarioService(repo)

	err := svc.Deshabilitar(context.Background(), ScopeGeneral, dto.RangoRequest{
		FechaInicio: "2026-12-25",
		FechaFin:    "2027-01-05",
	})

	require.NoError(t, err)
	// Overlapping blocks coexist; no merge on insert.
	assert.Len(t, repo.intervalos, 2)
}

func TestDeshabilitar_RangoInvertidoRechazado(t *testing.T) {
	repo := &fakeCalendarioRepo{}
	svc := NewCalendarioService(repo)

	err := svc.Deshabilitar(context.Background(), ScopeGeneral, dto.RangoRequest{
		FechaInicio: "2026-06-10",
		FechaFin:    "2026-06-01",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Empty(t, repo.intervalos)
}

func TestHabilitar_RecortaAmbosLados(t *testing.T) {
	repo := &fakeCalendarioRepo{intervalos: []model.IntervaloDisponibilidad{
		bloqueado(ScopeGeneral, "2026-07-01", "2026-07-31"),
	}}
	svc := NewCalendarioService(repo)

	err := svc.Habilitar(context.Background(), ScopeGeneral, dto.RangoRequest{
		FechaInicio: "2026-07-10",
		FechaFin:    "2026-07-20",
	})

	require.NoError(t, err)
	require.Len(t, repo.intervalos, 2)

	assert.Equal(t, dia("2026-07-01"), repo.intervalos[0].FechaInicio)
	assert.Equal(t, dia("2026-07-09"), repo.intervalos[0].FechaFin)
	assert.Equal(t, dia("2026-07-21"), repo.intervalos[1].FechaInicio)
	assert.Equal(t, dia("2026-07-31"), repo.intervalos[1].FechaFin)

	ocupado, err := svc.RangoBloqueado(context.Background(), ScopeGeneral, dia("2026-07-10"), dia("2026-07-20"))
	require.NoError(t, err)
	assert.False(t, ocupado, "the enabled range must be fully clear afterwards")
}

func TestHabilitar_EliminaIntervalosContenidos(t *testing.T) {
	repo := &fakeCalendarioRepo{intervalos: []model.IntervaloDisponibilidad{
		bloqueado(ScopeGeneral, "2026-03-05", "2026-03-08"),
		bloqueado(ScopeGeneral, "2026-03-12", "2026-03-15"),
	}}
	svc := NewCalendarioService(repo)

	err := svc.Habilitar(context.Background(), ScopeGeneral, dto.RangoRequest{
		FechaInicio: "2026-03-01",
		FechaFin:    "2026-03-31",
	})

	require.NoError(t, err)
	assert.Empty(t, repo.intervalos, "fully covered blocks leave no remainder")
}

func TestHabilitar_RecortaVariosSolapados(t *testing.T) {
	repo := &fakeCalendarioRepo{intervalos: []model.IntervaloDisponibilidad{
		bloqueado(ScopeGeneral, "2026-01-01", "2026-01-10"),
		bloqueado(ScopeGeneral, "2026-01-08", "2026-01-20"),
	}}
	svc := NewCalendarioService(repo)

	err := svc.Habilitar(context.Background(), ScopeGeneral, dto.RangoRequest{
		FechaInicio: "2026-01-05",
		FechaFin:    "2026-01-15",
	})

	require.NoError(t, err)
	require.Len(t, repo.intervalos, 2)
	assert.Equal(t, dia("2026-01-01"), repo.intervalos[0].FechaInicio)
	assert.Equal(t, dia("2026-01-04"), repo.intervalos[0].FechaFin)
	assert.Equal(t, dia("2026-01-16"), repo.intervalos[1].FechaInicio)
	assert.Equal(t, dia("2026-01-20"), repo.intervalos[1].FechaFin)
}

func TestHabilitar_SinSolapeEsNoOp(t *testing.T) {
	original := bloqueado(ScopeGeneral, "2026-09-01", "2026-09-10")
	repo := &fakeCalendarioRepo{intervalos: []model.IntervaloDisponibilidad{original}}
	svc := NewCalendarioService(repo)

	err := svc.Habilitar(context.Background(), ScopeGeneral, dto.RangoRequest{
		FechaInicio: "2026-10-01",
		FechaFin:    "2026-10-05",
	})

	require.NoError(t, err)
	require.Len(t, repo.intervalos, 1)
	assert.Equal(t, original.ID, repo.intervalos[0].ID)
}

func TestRangoBloqueado_ScopesIndependientes(t *testing.T) {
	usuarioScope := uuid.New().String()
	repo := &fakeCalendarioRepo{intervalos: []model.IntervaloDisponibilidad{
		bloqueado(usuarioScope, "2026-05-01", "2026-05-15"),
	}}
	svc := NewCalendarioService(repo)

	ocupado, err := svc.RangoBloqueado(context.Background(), usuarioScope, dia("2026-05-10"), dia("2026-05-12"))
	require.NoError(t, err)
	assert.True(t, ocupado)

	ocupado, err = svc.RangoBloqueado(context.Background(), ScopeGeneral, dia("2026-05-10"), dia("2026-05-12"))
	require.NoError(t, err)
	assert.False(t, ocupado)
}
