package dto

import (
	"time"

	"github.com/andeshr/portalrh/internal/model"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CrearSolicitudRequest struct {
	FechaInicio string `json:"fecha_inicio" binding:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin" binding:"required,datetime=2006-01-02"`
	Motivo      string `json:"motivo" binding:"max=1000"`
}

type RevisarSolicitudRequest struct {
	Estado     string `json:"estado" binding:"required,oneof=aprobada rechazada"`
	Comentario string `json:"comentario" binding:"max=1000"`
}

type SolicitudResponse struct {
	ID          string                  `json:"id"`
	Solicitante commonDto.AutorResponse `json:"solicitante"`
	FechaInicio string                  `json:"fecha_inicio"`
	FechaFin    string                  `json:"fecha_fin"`
	Motivo      string                  `json:"motivo,omitempty"`
	Estado      string                  `json:"estado"`
	RevisadaEn  *time.Time              `json:"revisada_en,omitempty"`
	CreatedAt   time.Time               `json:"fecha_creacion"`
}

type PaginatedSolicitudesResponse struct {
	Data []SolicitudResponse `json:"data"`
	Meta commonDto.PageMeta  `json:"meta"`
}

const formatoFecha = "2006-01-02"

func MapSolicitudResponse(s *model.SolicitudVacaciones) SolicitudResponse {
	return SolicitudResponse{
		ID: s.ID.String(),
		Solicitante: commonDto.AutorResponse{
			ID:        s.Usuario.ID.String(),
			Nombre:    s.Usuario.Nombre,
			AvatarURL: s.Usuario.AvatarURL,
		},
		FechaInicio: s.FechaInicio.Format(formatoFecha),
		FechaFin:    s.FechaFin.Format(formatoFecha),
		Motivo:      s.Motivo,
		Estado:      s.Estado,
		RevisadaEn:  s.RevisadaEn,
		CreatedAt:   s.CreatedAt,
	}
}
