package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/comentario/dto"
	"github.com/andeshr/portalrh/internal/modules/comentario/repository"
	"github.com/andeshr/portalrh/pkg/ratelimiter"
)

type fakeComentarioRepo struct {
	comentarios []model.Comentario
	info        *repository.InfoHilo
	noVistos    int64

	resolverErr error
	marcarErr   error
	countErr    error

	llamadas []string
}

func (f *fakeComentarioRepo) Create(_ context.Context, comentario *model.Comentario) error {
	f.llamadas = append(f.llamadas, "Create")
	if comentario.ID == uuid.Nil {
		comentario.ID = uuid.New()
	}
	f.comentarios = append([]model.Comentario{*comentario}, f.comentarios...)
	return nil
}

func (f *fakeComentarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comentario, error) {
	f.llamadas = append(f.llamadas, "FindByID")
	for i := range f.comentarios {
		if f.comentarios[i].ID == id {
			return &f.comentarios[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeComentarioRepo) FindByHilo(_ context.Context, _ string, _ uuid.UUID) ([]model.Comentario, error) {
	f.llamadas = append(f.llamadas, "FindByHilo")
	return f.comentarios, nil
}

func (f *fakeComentarioRepo) CountNoVistos(_ context.Context, _ string, _ uuid.UUID, _ bool) (int64, error) {
	f.llamadas = append(f.llamadas, "CountNoVistos")
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.noVistos, nil
}

func (f *fakeComentarioRepo) MarcarVistos(_ context.Context, _ string, _ uuid.UUID, _ bool) error {
	f.llamadas = append(f.llamadas, "MarcarVistos")
	if f.marcarErr != nil {
		return f.marcarErr
	}
	f.noVistos = 0
	return nil
}

func (f *fakeComentarioRepo) ResolverHilo(_ context.Context, _ string, _ uuid.UUID) (*repository.InfoHilo, error) {
	f.llamadas = append(f.llamadas, "ResolverHilo")
	if f.resolverErr != nil {
		return nil, f.resolverErr
	}
	if f.info != nil {
		return f.info, nil
	}
	return &repository.InfoHilo{Titulo: "solicitud"}, nil
}

func TestObtenerHilo_MarcaVistosAntesDeResponder(t *testing.T) {
	hiloID := uuid.New()
	repo := &fakeComentarioRepo{
		comentarios: []model.Comentario{
			{ID: uuid.New(), TipoHilo: model.TipoHiloVacaciones, HiloID: hiloID, Contenido: "aprobada", EsDeAdmin: true},
		},
		noVistos: 1,
	}
	svc := NewComentarioService(repo, nil, nil)

	resp, err := svc.ObtenerHilo(context.Background(), model.TipoHiloVacaciones, hiloID, false, true)

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.NoVistos, "badge count must reflect the already-persisted reset")
	require.Len(t, resp.Comentarios, 1)

	// The seen flags hit storage before anything is read back.
	require.GreaterOrEqual(t, len(repo.llamadas), 3)
	assert.Equal(t, []string{"ResolverHilo", "MarcarVistos", "FindByHilo", "CountNoVistos"}, repo.llamadas)
}

func TestObtenerHilo_FallaSiNoPersisteVistos(t *testing.T) {
	hiloID := uuid.New()
	repo := &fakeComentarioRepo{
		comentarios: []model.Comentario{
			{ID: uuid.New(), TipoHilo: model.TipoHiloIncapacidad, HiloID: hiloID, EsDeAdmin: true},
		},
		noVistos:  2,
		marcarErr: errors.New("deadlock detected"),
	}
	svc := NewComentarioService(repo, nil, nil)

	_, err := svc.ObtenerHilo(context.Background(), model.TipoHiloIncapacidad, hiloID, false, true)

	require.Error(t, err, "a failed seen-write must fail the whole fetch")
	assert.NotContains(t, repo.llamadas, "FindByHilo", "thread must not be served after a failed seen-write")
	assert.Equal(t, int64(2), repo.noVistos, "badge source stays intact")
}

func TestObtenerHilo_SinMarcarNoTocaVistos(t *testing.T) {
	hiloID := uuid.New()
	repo := &fakeComentarioRepo{noVistos: 3}
	svc := NewComentarioService(repo, nil, nil)

	resp, err := svc.ObtenerHilo(context.Background(), model.TipoHiloComunicado, hiloID, true, false)

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.NoVistos)
	assert.NotContains(t, repo.llamadas, "MarcarVistos")
}

func TestObtenerHilo_HiloInexistente(t *testing.T) {
	repo := &fakeComentarioRepo{resolverErr: errors.New("record not found")}
	svc := NewComentarioService(repo, nil, nil)

	_, err := svc.ObtenerHilo(context.Background(), model.TipoHiloVacaciones, uuid.New(), false, true)

	require.Error(t, err)
	assert.NotContains(t, repo.llamadas, "MarcarVistos")
}

func TestCrear_SanitizaYMarcaLadoPropio(t *testing.T) {
	hiloID := uuid.New()
	repo := &fakeComentarioRepo{info: &repository.InfoHilo{PropietarioID: uuid.New(), Titulo: "solicitud de vacaciones"}}
	svc := NewComentarioService(repo, nil, nil)

	resp, err := svc.Crear(context.Background(), uuid.New(), false, dto.CrearComentarioRequest{
		TipoHilo:  model.TipoHiloVacaciones,
		HiloID:    hiloID.String(),
		Contenido: `hola <script>alert("x")</script> equipo`,
	})

	require.NoError(t, err)
	assert.NotContains(t, resp.Contenido, "<script>")
	assert.Contains(t, resp.Contenido, "hola")

	require.Len(t, repo.comentarios, 1)
	creado := repo.comentarios[0]
	assert.True(t, creado.VistoUsuario, "the author has seen their own comment")
	assert.False(t, creado.VistoAdmin, "the counterpart has not")
}

func TestCrear_RespuestaDeOtroHiloRechazada(t *testing.T) {
	hiloA := uuid.New()
	hiloB := uuid.New()
	padre := model.Comentario{ID: uuid.New(), TipoHilo: model.TipoHiloVacaciones, HiloID: hiloA, Contenido: "padre"}
	repo := &fakeComentarioRepo{comentarios: []model.Comentario{padre}}
	svc := NewComentarioService(repo, nil, nil)

	_, err := svc.Crear(context.Background(), uuid.New(), false, dto.CrearComentarioRequest{
		TipoHilo:   model.TipoHiloVacaciones,
		HiloID:     hiloB.String(),
		RespuestaA: padre.ID.String(),
		Contenido:  "respuesta cruzada",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "another thread")
}

// cooldownKey mirrors the rate-limit key the service claims per comment.
func cooldownKey(usuarioID uuid.UUID) string {
	return fmt.Sprintf("rate_limit:user:%s:comentario", usuarioID)
}

func TestCrear_RechazoLiberaElCooldown(t *testing.T) {
	limit := ratelimiter.GetDurationFromEnv("RATE_LIMIT_COMENTARIO", 15*time.Second)
	hiloID := uuid.New()
	padreAjeno := model.Comentario{ID: uuid.New(), TipoHilo: model.TipoHiloVacaciones, HiloID: uuid.New(), Contenido: "padre"}

	tests := []struct {
		name string
		req  dto.CrearComentarioRequest
	}{
		{
			name: "hilo id inválido",
			req:  dto.CrearComentarioRequest{TipoHilo: model.TipoHiloVacaciones, HiloID: "no-es-uuid", Contenido: "hola"},
		},
		{
			name: "respuesta_a inválido",
			req:  dto.CrearComentarioRequest{TipoHilo: model.TipoHiloVacaciones, HiloID: hiloID.String(), RespuestaA: "no-es-uuid", Contenido: "hola"},
		},
		{
			name: "padre inexistente",
			req:  dto.CrearComentarioRequest{TipoHilo: model.TipoHiloVacaciones, HiloID: hiloID.String(), RespuestaA: uuid.NewString(), Contenido: "hola"},
		},
		{
			name: "padre de otro hilo",
			req:  dto.CrearComentarioRequest{TipoHilo: model.TipoHiloVacaciones, HiloID: hiloID.String(), RespuestaA: padreAjeno.ID.String(), Contenido: "hola"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usuarioID := uuid.New()
			redisClient, redisMock := redismock.NewClientMock()
			redisMock.ExpectSetNX(cooldownKey(usuarioID), "locked", limit).SetVal(true)
			redisMock.ExpectDel(cooldownKey(usuarioID)).SetVal(1)

			repo := &fakeComentarioRepo{comentarios: []model.Comentario{padreAjeno}}
			svc := NewComentarioService(repo, redisClient, nil)

			_, err := svc.Crear(context.Background(), usuarioID, false, tt.req)

			require.Error(t, err)
			assert.NoError(t, redisMock.ExpectationsWereMet(), "the cooldown must be released on rejection")
		})
	}
}
