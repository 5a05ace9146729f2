package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/model"
	calendarioDto "github.com/andeshr/portalrh/internal/modules/calendario/dto"
	calendario "github.com/andeshr/portalrh/internal/modules/calendario/service"
	vacacionesDto "github.com/andeshr/portalrh/internal/modules/vacaciones/dto"
	"github.com/andeshr/portalrh/pkg/apperror"
)

type fakeVacacionesRepo struct {
	mu          sync.Mutex
	solicitudes map[uuid.UUID]*model.SolicitudVacaciones
}

func newFakeVacacionesRepo() *fakeVacacionesRepo {
	return &fakeVacacionesRepo{solicitudes: make(map[uuid.UUID]*model.SolicitudVacaciones)}
}

func (f *fakeVacacionesRepo) Create(_ context.Context, solicitud *model.SolicitudVacaciones) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if solicitud.ID == uuid.Nil {
		solicitud.ID = uuid.New()
	}
	copia := *solicitud
	f.solicitudes[solicitud.ID] = &copia
	return nil
}

func (f *fakeVacacionesRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SolicitudVacaciones, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.solicitudes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copia := *s
	return &copia, nil
}

func (f *fakeVacacionesRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID, _, _ int) ([]*model.SolicitudVacaciones, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SolicitudVacaciones
	for _, s := range f.solicitudes {
		if s.UsuarioID == usuarioID {
			copia := *s
			out = append(out, &copia)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeVacacionesRepo) FindAll(_ context.Context, estado string, _, _ int) ([]*model.SolicitudVacaciones, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SolicitudVacaciones
	for _, s := range f.solicitudes {
		if estado == "" || s.Estado == estado {
			copia := *s
			out = append(out, &copia)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeVacacionesRepo) FindAprobadasSolapadas(_ context.Context, usuarioID uuid.UUID, inicio, fin time.Time) ([]*model.SolicitudVacaciones, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.SolicitudVacaciones
	for _, s := range f.solicitudes {
		if s.UsuarioID != usuarioID || s.Estado != model.EstadoAprobada {
			continue
		}
		if !s.FechaInicio.After(fin) && !s.FechaFin.Before(inicio) {
			copia := *s
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (f *fakeVacacionesRepo) Update(_ context.Context, solicitud *model.SolicitudVacaciones) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *solicitud
	f.solicitudes[solicitud.ID] = &copia
	return nil
}

// fakeCalendario records Deshabilitar calls and answers RangoBloqueado from
// a per-scope switch.
type fakeCalendario struct {
	mu            sync.Mutex
	bloqueados    map[string]bool
	deshabilitado []string
}

func newFakeCalendario() *fakeCalendario {
	return &fakeCalendario{bloqueados: make(map[string]bool)}
}

func (f *fakeCalendario) Listar(context.Context, string) ([]calendarioDto.IntervaloResponse, error) {
	return nil, nil
}

func (f *fakeCalendario) Deshabilitar(_ context.Context, scopeID string, _ calendarioDto.RangoRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deshabilitado = append(f.deshabilitado, scopeID)
	return nil
}

func (f *fakeCalendario) Habilitar(context.Context, string, calendarioDto.RangoRequest) error {
	return nil
}

func (f *fakeCalendario) RangoBloqueado(_ context.Context, scopeID string, _, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bloqueados[scopeID], nil
}

type fakeNotificaciones struct {
	mu      sync.Mutex
	creadas []model.Notificacion
}

func (f *fakeNotificaciones) CrearNotificacion(_ context.Context, n *model.Notificacion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creadas = append(f.creadas, *n)
	return nil
}

func (f *fakeNotificaciones) GetNotificaciones(uuid.UUID, int, int) ([]model.Notificacion, error) {
	return nil, nil
}
func (f *fakeNotificaciones) MarkAsRead(uuid.UUID) error       { return nil }
func (f *fakeNotificaciones) MarkAllAsRead(uuid.UUID) error    { return nil }
func (f *fakeNotificaciones) UnreadCount(uuid.UUID) (int64, error) { return 0, nil }

func (f *fakeNotificaciones) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creadas)
}

func TestCrearSolicitud_RangoInvertidoRechazado(t *testing.T) {
	svc := NewVacacionesService(newFakeVacacionesRepo(), newFakeCalendario(), &fakeNotificaciones{}, nil)

	_, err := svc.CrearSolicitud(context.Background(), uuid.New(), vacacionesDto.CrearSolicitudRequest{
		FechaInicio: "2026-09-15",
		FechaFin:    "2026-09-10",
		Motivo:      "viaje familiar",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
}

func TestCrearSolicitud_PeriodoCerradoRechazado(t *testing.T) {
	cal := newFakeCalendario()
	cal.bloqueados[calendario.ScopeGeneral] = true
	svc := NewVacacionesService(newFakeVacacionesRepo(), cal, &fakeNotificaciones{}, nil)

	_, err := svc.CrearSolicitud(context.Background(), uuid.New(), vacacionesDto.CrearSolicitudRequest{
		FechaInicio: "2026-12-20",
		FechaFin:    "2026-12-28",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestCrearSolicitud_AprobadaSolapadaRechazada(t *testing.T) {
	usuarioID := uuid.New()
	repo := newFakeVacacionesRepo()
	require.NoError(t, repo.Create(context.Background(), &model.SolicitudVacaciones{
		UsuarioID:   usuarioID,
		FechaInicio: mustDia("2026-08-01"),
		FechaFin:    mustDia("2026-08-15"),
		Estado:      model.EstadoAprobada,
	}))
	svc := NewVacacionesService(repo, newFakeCalendario(), &fakeNotificaciones{}, nil)

	_, err := svc.CrearSolicitud(context.Background(), usuarioID, vacacionesDto.CrearSolicitudRequest{
		FechaInicio: "2026-08-10",
		FechaFin:    "2026-08-20",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestCrearSolicitud_QuedaPendiente(t *testing.T) {
	repo := newFakeVacacionesRepo()
	svc := NewVacacionesService(repo, newFakeCalendario(), &fakeNotificaciones{}, nil)

	resp, err := svc.CrearSolicitud(context.Background(), uuid.New(), vacacionesDto.CrearSolicitudRequest{
		FechaInicio: "2026-11-02",
		FechaFin:    "2026-11-06",
		Motivo:      "diligencias personales",
	})

	require.NoError(t, err)
	assert.Equal(t, model.EstadoPendiente, resp.Estado)
	assert.Equal(t, "2026-11-02", resp.FechaInicio)
	assert.Equal(t, "2026-11-06", resp.FechaFin)
}

func TestRevisarSolicitud_AprobarBloqueaCalendarioPersonal(t *testing.T) {
	usuarioID := uuid.New()
	adminID := uuid.New()
	repo := newFakeVacacionesRepo()
	solicitud := &model.SolicitudVacaciones{
		UsuarioID:   usuarioID,
		FechaInicio: mustDia("2026-10-05"),
		FechaFin:    mustDia("2026-10-09"),
		Estado:      model.EstadoPendiente,
	}
	require.NoError(t, repo.Create(context.Background(), solicitud))

	cal := newFakeCalendario()
	notifs := &fakeNotificaciones{}
	svc := NewVacacionesService(repo, cal, notifs, nil)

	err := svc.RevisarSolicitud(context.Background(), adminID, solicitud.ID, vacacionesDto.RevisarSolicitudRequest{
		Estado:     model.EstadoAprobada,
		Comentario: "disfrute",
	})

	require.NoError(t, err)

	actualizada, err := repo.FindByID(context.Background(), solicitud.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAprobada, actualizada.Estado)
	require.NotNil(t, actualizada.RevisadaPorID)
	assert.Equal(t, adminID, *actualizada.RevisadaPorID)
	assert.NotNil(t, actualizada.RevisadaEn)

	require.Len(t, cal.deshabilitado, 1)
	assert.Equal(t, usuarioID.String(), cal.deshabilitado[0], "the requester's own scope gets blocked, not the general one")

	require.Eventually(t, func() bool { return notifs.total() == 1 },
		time.Second, 10*time.Millisecond, "the requester gets an in-app notification")
}

func TestRevisarSolicitud_RechazarNoTocaCalendario(t *testing.T) {
	repo := newFakeVacacionesRepo()
	solicitud := &model.SolicitudVacaciones{
		UsuarioID:   uuid.New(),
		FechaInicio: mustDia("2026-10-05"),
		FechaFin:    mustDia("2026-10-09"),
		Estado:      model.EstadoPendiente,
	}
	require.NoError(t, repo.Create(context.Background(), solicitud))

	cal := newFakeCalendario()
	svc := NewVacacionesService(repo, cal, &fakeNotificaciones{}, nil)

	err := svc.RevisarSolicitud(context.Background(), uuid.New(), solicitud.ID, vacacionesDto.RevisarSolicitudRequest{
		Estado: model.EstadoRechazada,
	})

	require.NoError(t, err)
	assert.Empty(t, cal.deshabilitado)
}

func TestRevisarSolicitud_YaRevisadaRechazada(t *testing.T) {
	repo := newFakeVacacionesRepo()
	solicitud := &model.SolicitudVacaciones{
		UsuarioID:   uuid.New(),
		FechaInicio: mustDia("2026-10-05"),
		FechaFin:    mustDia("2026-10-09"),
		Estado:      model.EstadoAprobada,
	}
	require.NoError(t, repo.Create(context.Background(), solicitud))
	svc := NewVacacionesService(repo, newFakeCalendario(), &fakeNotificaciones{}, nil)

	err := svc.RevisarSolicitud(context.Background(), uuid.New(), solicitud.ID, vacacionesDto.RevisarSolicitudRequest{
		Estado: model.EstadoRechazada,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestGetSolicitud_AjenaProhibida(t *testing.T) {
	repo := newFakeVacacionesRepo()
	solicitud := &model.SolicitudVacaciones{
		UsuarioID:   uuid.New(),
		FechaInicio: mustDia("2026-10-05"),
		FechaFin:    mustDia("2026-10-09"),
		Estado:      model.EstadoPendiente,
	}
	require.NoError(t, repo.Create(context.Background(), solicitud))
	svc := NewVacacionesService(repo, newFakeCalendario(), &fakeNotificaciones{}, nil)

	_, err := svc.GetSolicitud(context.Background(), solicitud.ID, uuid.New(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	_, err = svc.GetSolicitud(context.Background(), solicitud.ID, uuid.New(), true)
	assert.NoError(t, err)
}

func mustDia(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
