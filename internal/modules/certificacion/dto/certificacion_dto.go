package dto

import (
	"time"

	"github.com/andeshr/portalrh/internal/model"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
)

type CrearCertificacionRequest struct {
	TipoCertificacion string `json:"tipo_certificacion" binding:"required,oneof=laboral ingresos laboral_con_funciones"`
	DirigidoA         string `json:"dirigido_a" binding:"required,max=255"`
}

type CompletarCertificacionRequest struct {
	DocumentoURL string `json:"documento_url" binding:"required,url"`
}

type CertificacionResponse struct {
	ID                string                  `json:"id"`
	Solicitante       commonDto.AutorResponse `json:"solicitante"`
	TipoCertificacion string                  `json:"tipo_certificacion"`
	DirigidoA         string                  `json:"dirigido_a"`
	Estado            string                  `json:"estado"`
	DocumentoURL      *string                 `json:"documento_url,omitempty"`
	EntregadaEn       *time.Time              `json:"entregada_en,omitempty"`
	CreatedAt         time.Time               `json:"fecha_creacion"`
}

type PaginatedCertificacionesResponse struct {
	Data []CertificacionResponse `json:"data"`
	Meta commonDto.PageMeta      `json:"meta"`
}

func MapCertificacionResponse(s *model.SolicitudCertificacion) CertificacionResponse {
	return CertificacionResponse{
		ID: s.ID.String(),
		Solicitante: commonDto.AutorResponse{
			ID:        s.Usuario.ID.String(),
			Nombre:    s.Usuario.Nombre,
			AvatarURL: s.Usuario.AvatarURL,
		},
		TipoCertificacion: s.TipoCertificacion,
		DirigidoA:         s.DirigidoA,
		Estado:            s.Estado,
		DocumentoURL:      s.DocumentoURL,
		EntregadaEn:       s.EntregadaEn,
		CreatedAt:         s.CreatedAt,
	}
}
