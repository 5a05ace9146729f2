package dto

import (
	"time"

	"github.com/andeshr/portalrh/internal/model"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CrearVacanteRequest struct {
	PuestoID    string `json:"puesto_id" binding:"required,uuid"`
	Titulo      string `json:"titulo" binding:"required,min=3,max=255"`
	Descripcion string `json:"descripcion" binding:"required"`
}

type ActualizarVacanteRequest struct {
	Titulo      *string `json:"titulo,omitempty" binding:"omitempty,min=3,max=255"`
	Descripcion *string `json:"descripcion,omitempty"`
	Abierta     *bool   `json:"abierta,omitempty"`
}

type VacanteResponse struct {
	ID          string    `json:"id"`
	PuestoID    string    `json:"puesto_id"`
	Puesto      string    `json:"puesto,omitempty"`
	Titulo      string    `json:"titulo"`
	Slug        string    `json:"slug"`
	Descripcion string    `json:"descripcion"`
	Abierta     bool      `json:"abierta"`
	CreatedAt   time.Time `json:"fecha_creacion"`
}

type CrearPostulacionRequest struct {
	NombreCompleto string `json:"colaborador" binding:"required,min=3,max=150"`
	Correo         string `json:"correo_electronico" binding:"required,email"`
	Telefono       string `json:"telefono" binding:"max=30"`
	CVURL          string `json:"cv_url" binding:"required,url"`
	AdjuntoIDs     []uint `json:"adjunto_ids,omitempty"`
}

type PostulacionResponse struct {
	ID             string                      `json:"id"`
	VacanteID      string                      `json:"vacante_id"`
	NombreCompleto string                      `json:"colaborador"`
	Correo         string                      `json:"correo_electronico"`
	Telefono       string                      `json:"telefono,omitempty"`
	CVURL          string                      `json:"cv_url"`
	Adjuntos       []commonDto.AdjuntoResponse `json:"adjuntos,omitempty"`
	CreatedAt      time.Time                   `json:"fecha_creacion"`
}

type PaginatedPostulacionesResponse struct {
	Data []PostulacionResponse `json:"data"`
	Meta commonDto.PageMeta    `json:"meta"`
}

func MapVacanteResponse(v *model.Vacante) VacanteResponse {
	return VacanteResponse{
		ID:          v.ID.String(),
		PuestoID:    v.PuestoID.String(),
		Puesto:      v.Puesto.Nombre,
		Titulo:      v.Titulo,
		Slug:        v.Slug,
		Descripcion: v.Descripcion,
		Abierta:     v.Abierta,
		CreatedAt:   v.CreatedAt,
	}
}

func MapPostulacionResponse(p *model.Postulacion) PostulacionResponse {
	adjuntos := make([]commonDto.AdjuntoResponse, 0, len(p.Adjuntos))
	for _, a := range p.Adjuntos {
		adjuntos = append(adjuntos, commonDto.AdjuntoResponse{
			ID:       a.ID,
			FileURL:  a.FileURL,
			FileType: a.FileType,
		})
	}

	return PostulacionResponse{
		ID:             p.ID.String(),
		VacanteID:      p.VacanteID.String(),
		NombreCompleto: p.NombreCompleto,
		Correo:         p.Correo,
		Telefono:       p.Telefono,
		CVURL:          p.CVURL,
		Adjuntos:       adjuntos,
		CreatedAt:      p.CreatedAt,
	}
}
