package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"github.com/andeshr/portalrh/internal/modules/notificacion/dto"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/andeshr/portalrh/pkg/mailer"
)

// correoValido is the syntactic local@domain.tld gate applied before dispatch.
var correoValido = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type DispatcherConfig struct {
	MaxIntentos    int
	BackoffBase    time.Duration
	TimeoutMensaje time.Duration
	TimeoutGlobal  time.Duration
}

func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		MaxIntentos:    3,
		BackoffBase:    time.Second,
		TimeoutMensaje: 45 * time.Second,
		TimeoutGlobal:  300 * time.Second,
	}
}

// Dispatcher delivers one message per recipient, all recipients in parallel,
// each send bounded by a retry policy plus a per-message timeout, the whole
// batch bounded by a global deadline.
type Dispatcher struct {
	mailer mailer.Mailer
	cfg    DispatcherConfig
}

func NewDispatcher(m mailer.Mailer, cfg DispatcherConfig) *Dispatcher {
	if cfg.MaxIntentos <= 0 {
		cfg.MaxIntentos = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.TimeoutMensaje <= 0 {
		cfg.TimeoutMensaje = 45 * time.Second
	}
	if cfg.TimeoutGlobal <= 0 {
		cfg.TimeoutGlobal = 300 * time.Second
	}
	return &Dispatcher{mailer: m, cfg: cfg}
}

// Dispatch sends msg to every syntactically valid recipient. It always
// returns a summary; the error is apperror.ErrDispatchTimeout when the global
// deadline cut the batch short (the summary then holds the completed part).
// Recipient order in Results reflects completion order, not submission order.
func (d *Dispatcher) Dispatch(ctx context.Context, destinatarios []dto.Destinatario, msg mailer.Message) (*dto.ResumenEnvio, error) {
	inicio := time.Now()

	validos := make([]dto.Destinatario, 0, len(destinatarios))
	for _, dest := range destinatarios {
		if correoValido.MatchString(dest.Correo) {
			validos = append(validos, dest)
		} else {
			log.Printf("[dispatcher] descartando correo inválido: %q", dest.Correo)
		}
	}

	gctx, cancel := context.WithTimeout(ctx, d.cfg.TimeoutGlobal)
	defer cancel()

	resultados := make(chan dto.ResultadoEnvio, len(validos))
	for _, dest := range validos {
		go func(dest dto.Destinatario) {
			resultados <- d.enviarUno(gctx, dest, msg)
		}(dest)
	}

	resumen := &dto.ResumenEnvio{Results: make([]dto.ResultadoEnvio, 0, len(validos))}
	expirado := false

recoger:
	for i := 0; i < len(validos); i++ {
		select {
		case res := <-resultados:
			resumen.Results = append(resumen.Results, res)
		case <-gctx.Done():
			expirado = true
			// Drain whatever already finished; in-flight sends are abandoned.
			for {
				select {
				case res := <-resultados:
					resumen.Results = append(resumen.Results, res)
				default:
					break recoger
				}
			}
		}
	}

	d.agregar(resumen, len(validos), inicio)

	if expirado {
		// A canceled caller is not a dispatch timeout.
		if err := context.Cause(ctx); err != nil {
			resumen.Message = "envío interrumpido por el llamador"
			return resumen, err
		}
		resumen.Message = "envío interrumpido por límite de tiempo global"
		return resumen, apperror.ErrDispatchTimeout
	}

	resumen.Message = "envío completado"
	return resumen, nil
}

// enviarUno runs one recipient's send loop: up to MaxIntentos attempts with
// exponential backoff (base, 2*base, ...) between them, all racing one
// per-message timeout.
func (d *Dispatcher) enviarUno(ctx context.Context, dest dto.Destinatario, msg mailer.Message) dto.ResultadoEnvio {
	mctx, cancel := context.WithTimeout(ctx, d.cfg.TimeoutMensaje)
	defer cancel()

	inicio := time.Now()
	res := dto.ResultadoEnvio{Correo: dest.Correo}

	var lastErr error
	for intento := 1; intento <= d.cfg.MaxIntentos; intento++ {
		res.Intento = intento

		lastErr = d.mailer.Send(mctx, dest.Correo, msg)
		if lastErr == nil {
			res.Status = "success"
			res.DuracionMs = time.Since(inicio).Milliseconds()
			return res
		}

		if mctx.Err() != nil || errors.Is(lastErr, context.DeadlineExceeded) || errors.Is(lastErr, context.Canceled) {
			res.Status = "failed"
			res.Error = "timeout"
			res.DuracionMs = time.Since(inicio).Milliseconds()
			return res
		}

		if intento < d.cfg.MaxIntentos {
			espera := d.cfg.BackoffBase << (intento - 1)
			select {
			case <-time.After(espera):
			case <-mctx.Done():
				res.Status = "failed"
				res.Error = "timeout"
				res.DuracionMs = time.Since(inicio).Milliseconds()
				return res
			}
		}
	}

	res.Status = "failed"
	res.Error = lastErr.Error()
	res.DuracionMs = time.Since(inicio).Milliseconds()
	return res
}

func (d *Dispatcher) agregar(resumen *dto.ResumenEnvio, total int, inicio time.Time) {
	var sumaDuracion int64
	for _, res := range resumen.Results {
		if res.Status == "success" {
			resumen.Successful++
		} else {
			resumen.Failed++
		}
		resumen.TotalRetries += res.Intento - 1
		sumaDuracion += res.DuracionMs
	}

	if total > 0 {
		resumen.SuccessRate = float64(resumen.Successful) / float64(total)
	}
	if len(resumen.Results) > 0 {
		resumen.AvgResponseTime = float64(sumaDuracion) / float64(len(resumen.Results))
	}
	resumen.TotalTime = time.Since(inicio).Milliseconds()
}
