package dto

import (
	"github.com/google/uuid"

	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CrearComentarioRequest struct {
	TipoHilo   string `json:"tipo_hilo" binding:"required,oneof=comunicado vacaciones incapacidad certificacion"`
	HiloID     string `json:"hilo_id" binding:"required,uuid"`
	RespuestaA string `json:"respuesta_a" binding:"omitempty,uuid"`
	Contenido  string `json:"comentario" binding:"required,max=5000"`
}

type ComentarioResponse struct {
	ID            uuid.UUID               `json:"id"`
	RespuestaA    *uuid.UUID              `json:"respuesta_a,omitempty"`
	Contenido     string                  `json:"comentario"`
	Autor         commonDto.AutorResponse `json:"autor"`
	EsDeAdmin     bool                    `json:"es_de_admin"`
	FechaCreacion string                  `json:"fecha_creacion"`
	Respuestas    []*ComentarioResponse   `json:"respuestas"`
}

type HiloResponse struct {
	TipoHilo    string                `json:"tipo_hilo"`
	HiloID      uuid.UUID             `json:"hilo_id"`
	Comentarios []*ComentarioResponse `json:"comentarios"`
	NoVistos    int64                 `json:"no_vistos"`
}

// EventoComentario is the realtime payload published when a comment lands.
// Consumers must treat it as an invalidation signal and refetch the thread,
// not patch local state with it.
type EventoComentario struct {
	TipoHilo     string    `json:"tipo_hilo"`
	HiloID       uuid.UUID `json:"hilo_id"`
	ComentarioID uuid.UUID `json:"comentario_id"`
	EsDeAdmin    bool      `json:"es_de_admin"`
}
