package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/modules/notificacion/dto"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/andeshr/portalrh/pkg/mailer"
)

// fakeMailer scripts per-recipient outcomes: failHasta[correo] send attempts
// fail before one succeeds. A negative value fails every attempt.
type fakeMailer struct {
	mu        sync.Mutex
	failHasta map[string]int
	intentos  map[string]int
	// demora blocks every send without honoring cancellation, so a short
	// global deadline is guaranteed to fire before any result lands.
	demora time.Duration
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failHasta: make(map[string]int), intentos: make(map[string]int)}
}

func (f *fakeMailer) Send(_ context.Context, to string, _ mailer.Message) error {
	if f.demora > 0 {
		time.Sleep(f.demora)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.intentos[to]++
	restantes := f.failHasta[to]
	if restantes < 0 {
		return errors.New("smtp 554 permanent failure")
	}
	if f.intentos[to] <= restantes {
		return errors.New("smtp 421 service unavailable")
	}
	return nil
}

func (f *fakeMailer) intentosDe(correo string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.intentos[correo]
}

func configRapida() DispatcherConfig {
	return DispatcherConfig{
		MaxIntentos:    3,
		BackoffBase:    5 * time.Millisecond,
		TimeoutMensaje: time.Second,
		TimeoutGlobal:  5 * time.Second,
	}
}

func destinatarios(correos ...string) []dto.Destinatario {
	out := make([]dto.Destinatario, 0, len(correos))
	for _, c := range correos {
		out = append(out, dto.Destinatario{Correo: c, Nombre: "Colaborador"})
	}
	return out
}

func TestDispatch_TodosExitosos(t *testing.T) {
	fm := newFakeMailer()
	d := NewDispatcher(fm, configRapida())

	resumen, err := d.Dispatch(context.Background(), destinatarios("ana@empresa.co", "luis@empresa.co"), mailer.Message{Subject: "Nuevo comunicado"})

	require.NoError(t, err)
	assert.Equal(t, 2, resumen.Successful)
	assert.Equal(t, 0, resumen.Failed)
	assert.Equal(t, 0, resumen.TotalRetries)
	assert.InDelta(t, 1.0, resumen.SuccessRate, 0.001)
	assert.Len(t, resumen.Results, 2)
}

func TestDispatch_ReintentaHastaLograrlo(t *testing.T) {
	fm := newFakeMailer()
	fm.failHasta["ana@empresa.co"] = 2
	d := NewDispatcher(fm, configRapida())

	resumen, err := d.Dispatch(context.Background(), destinatarios("ana@empresa.co"), mailer.Message{Subject: "x"})

	require.NoError(t, err)
	assert.Equal(t, 1, resumen.Successful)
	assert.Equal(t, 3, fm.intentosDe("ana@empresa.co"))
	assert.Equal(t, 2, resumen.TotalRetries)
	require.Len(t, resumen.Results, 1)
	assert.Equal(t, "success", resumen.Results[0].Status)
	assert.Equal(t, 3, resumen.Results[0].Intento)
}

func TestDispatch_AgotaIntentosYSigue(t *testing.T) {
	fm := newFakeMailer()
	fm.failHasta["rebota@empresa.co"] = -1
	d := NewDispatcher(fm, configRapida())

	resumen, err := d.Dispatch(context.Background(), destinatarios("rebota@empresa.co", "ana@empresa.co"), mailer.Message{Subject: "x"})

	require.NoError(t, err, "per-recipient failure never fails the batch")
	assert.Equal(t, 1, resumen.Successful)
	assert.Equal(t, 1, resumen.Failed)
	assert.Equal(t, 3, fm.intentosDe("rebota@empresa.co"))
	assert.InDelta(t, 0.5, resumen.SuccessRate, 0.001)

	for _, res := range resumen.Results {
		if res.Correo == "rebota@empresa.co" {
			assert.Equal(t, "failed", res.Status)
			assert.Contains(t, res.Error, "554")
		}
	}
}

func TestDispatch_BackoffExponencial(t *testing.T) {
	fm := newFakeMailer()
	fm.failHasta["lenta@empresa.co"] = 2
	cfg := configRapida()
	cfg.BackoffBase = 30 * time.Millisecond
	d := NewDispatcher(fm, cfg)

	inicio := time.Now()
	_, err := d.Dispatch(context.Background(), destinatarios("lenta@empresa.co"), mailer.Message{Subject: "x"})
	transcurrido := time.Since(inicio)

	require.NoError(t, err)
	// Two waits: base then 2*base.
	assert.GreaterOrEqual(t, transcurrido, 90*time.Millisecond)
}

func TestDispatch_DescartaCorreosInvalidos(t *testing.T) {
	fm := newFakeMailer()
	d := NewDispatcher(fm, configRapida())

	resumen, err := d.Dispatch(context.Background(), destinatarios("sin-arroba", "ana@empresa.co", "a@b", ""), mailer.Message{Subject: "x"})

	require.NoError(t, err)
	assert.Len(t, resumen.Results, 1)
	assert.Equal(t, 1, resumen.Successful)
	assert.Equal(t, 0, fm.intentosDe("sin-arroba"))
	assert.Equal(t, 0, fm.intentosDe("a@b"))
}

func TestDispatch_TimeoutGlobalDevuelveParcial(t *testing.T) {
	fm := newFakeMailer()
	fm.demora = 200 * time.Millisecond
	cfg := configRapida()
	cfg.TimeoutGlobal = 50 * time.Millisecond
	d := NewDispatcher(fm, cfg)

	resumen, err := d.Dispatch(context.Background(), destinatarios("ana@empresa.co", "luis@empresa.co"), mailer.Message{Subject: "x"})

	require.ErrorIs(t, err, apperror.ErrDispatchTimeout)
	require.NotNil(t, resumen, "summary with the completed part is still returned")
	assert.Equal(t, 0, resumen.Successful)
}

func TestDispatch_CancelacionDelLlamadorNoEsTimeout(t *testing.T) {
	fm := newFakeMailer()
	fm.demora = 200 * time.Millisecond
	d := NewDispatcher(fm, configRapida())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	resumen, err := d.Dispatch(ctx, destinatarios("ana@empresa.co"), mailer.Message{Subject: "x"})

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, apperror.ErrDispatchTimeout)
	require.NotNil(t, resumen)
}

func TestDispatch_SinDestinatarios(t *testing.T) {
	d := NewDispatcher(newFakeMailer(), configRapida())

	resumen, err := d.Dispatch(context.Background(), nil, mailer.Message{Subject: "x"})

	require.NoError(t, err)
	assert.Equal(t, 0, resumen.Successful)
	assert.Equal(t, 0, resumen.Failed)
	assert.Zero(t, resumen.SuccessRate)
}
