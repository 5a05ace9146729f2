package model

import (
	"time"

	"github.com/google/uuid"
)

type Adjunto struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UsuarioID     *uuid.UUID `gorm:"type:uuid" json:"usuario_id,omitempty"`
	ComunicadoID  *uuid.UUID `gorm:"type:uuid" json:"comunicado_id,omitempty"`
	IncapacidadID *uuid.UUID `gorm:"type:uuid" json:"incapacidad_id,omitempty"`
	PostulacionID *uuid.UUID `gorm:"type:uuid" json:"postulacion_id,omitempty"`
	FileURL       string     `gorm:"type:text;not null" json:"file_url"`
	FileType      string     `gorm:"size:50" json:"file_type"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
