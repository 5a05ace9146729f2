package dto

import (
	"time"

	"github.com/andeshr/portalrh/internal/model"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CrearComunicadoRequest struct {
	Titulo     string  `json:"titulo" binding:"required,min=3,max=255"`
	Contenido  string  `json:"contenido" binding:"required"`
	Audiencia  string  `json:"audiencia" binding:"required,oneof=todos administrativo operativo"`
	PortadaURL *string `json:"portada_url,omitempty"`
	AdjuntoIDs []uint  `json:"adjunto_ids,omitempty"`
	Publicar   bool    `json:"publicar"`
}

type ActualizarComunicadoRequest struct {
	Titulo     *string `json:"titulo,omitempty" binding:"omitempty,min=3,max=255"`
	Contenido  *string `json:"contenido,omitempty"`
	Audiencia  *string `json:"audiencia,omitempty" binding:"omitempty,oneof=todos administrativo operativo"`
	PortadaURL *string `json:"portada_url,omitempty"`
	AdjuntoIDs []uint  `json:"adjunto_ids,omitempty"`
}

type ComunicadoResponse struct {
	ID          string                     `json:"comunicadoId"`
	Titulo      string                     `json:"titulo"`
	Slug        string                     `json:"slug"`
	Contenido   string                     `json:"contenido"`
	Audiencia   string                     `json:"audiencia"`
	PortadaURL  *string                    `json:"portada_url,omitempty"`
	Publicado   bool                       `json:"publicado"`
	PublicadoEn *time.Time                 `json:"publicado_en,omitempty"`
	Autor       commonDto.AutorResponse    `json:"autor"`
	Adjuntos    []commonDto.AdjuntoResponse `json:"adjuntos,omitempty"`
	CreatedAt   time.Time                  `json:"fecha_creacion"`
}

type PaginatedComunicadosResponse struct {
	Data []ComunicadoResponse `json:"data"`
	Meta commonDto.PageMeta   `json:"meta"`
}

func MapComunicadoResponse(comunicado *model.Comunicado) ComunicadoResponse {
	adjuntos := make([]commonDto.AdjuntoResponse, 0, len(comunicado.Adjuntos))
	for _, a := range comunicado.Adjuntos {
		adjuntos = append(adjuntos, commonDto.AdjuntoResponse{
			ID:       a.ID,
			FileURL:  a.FileURL,
			FileType: a.FileType,
		})
	}

	return ComunicadoResponse{
		ID:          comunicado.ID.String(),
		Titulo:      comunicado.Titulo,
		Slug:        comunicado.Slug,
		Contenido:   comunicado.Contenido,
		Audiencia:   comunicado.Audiencia,
		PortadaURL:  comunicado.PortadaURL,
		Publicado:   comunicado.Publicado,
		PublicadoEn: comunicado.PublicadoEn,
		Autor: commonDto.AutorResponse{
			ID:        comunicado.Usuario.ID.String(),
			Nombre:    comunicado.Usuario.Nombre,
			AvatarURL: comunicado.Usuario.AvatarURL,
		},
		Adjuntos:  adjuntos,
		CreatedAt: comunicado.CreatedAt,
	}
}
