package dto

import (
	"time"

	"github.com/andeshr/portalrh/internal/model"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CrearIncapacidadRequest struct {
	FechaInicio string `json:"fecha_inicio" binding:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin" binding:"required,datetime=2006-01-02"`
	Diagnostico string `json:"diagnostico" binding:"required,max=2000"`
	AdjuntoIDs  []uint `json:"adjunto_ids" binding:"required,min=1"`
}

type RevisarIncapacidadRequest struct {
	Estado     string `json:"estado" binding:"required,oneof=en_revision aprobada rechazada"`
	Comentario string `json:"comentario" binding:"max=1000"`
}

type IncapacidadResponse struct {
	ID          string                      `json:"id"`
	Solicitante commonDto.AutorResponse     `json:"solicitante"`
	FechaInicio string                      `json:"fecha_inicio"`
	FechaFin    string                      `json:"fecha_fin"`
	Diagnostico string                      `json:"diagnostico"`
	Estado      string                      `json:"estado"`
	Adjuntos    []commonDto.AdjuntoResponse `json:"adjuntos,omitempty"`
	CreatedAt   time.Time                   `json:"fecha_creacion"`
}

type PaginatedIncapacidadesResponse struct {
	Data []IncapacidadResponse `json:"data"`
	Meta commonDto.PageMeta    `json:"meta"`
}

const formatoFecha = "2006-01-02"

func MapIncapacidadResponse(i *model.Incapacidad) IncapacidadResponse {
	adjuntos := make([]commonDto.AdjuntoResponse, 0, len(i.Adjuntos))
	for _, a := range i.Adjuntos {
		adjuntos = append(adjuntos, commonDto.AdjuntoResponse{
			ID:       a.ID,
			FileURL:  a.FileURL,
			FileType: a.FileType,
		})
	}

	return IncapacidadResponse{
		ID: i.ID.String(),
		Solicitante: commonDto.AutorResponse{
			ID:        i.Usuario.ID.String(),
			Nombre:    i.Usuario.Nombre,
			AvatarURL: i.Usuario.AvatarURL,
		},
		FechaInicio: i.FechaInicio.Format(formatoFecha),
		FechaFin:    i.FechaFin.Format(formatoFecha),
		Diagnostico: i.Diagnostico,
		Estado:      i.Estado,
		Adjuntos:    adjuntos,
		CreatedAt:   i.CreatedAt,
	}
}
