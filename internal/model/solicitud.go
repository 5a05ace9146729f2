package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EstadoPendiente = "pendiente"
	EstadoAprobada  = "aprobada"
	EstadoRechazada = "rechazada"

	EstadoRadicada   = "radicada"
	EstadoEnRevision = "en_revision"

	EstadoEntregada = "entregada"
)

type SolicitudVacaciones struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID     uuid.UUID  `gorm:"type:uuid;not null" json:"usuario_id"`
	Usuario       Usuario    `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	FechaInicio   time.Time  `gorm:"type:date;not null" json:"fecha_inicio"`
	FechaFin      time.Time  `gorm:"type:date;not null" json:"fecha_fin"`
	Motivo        string     `gorm:"type:text" json:"motivo"`
	Estado        string     `gorm:"size:20;not null;default:pendiente" json:"estado"`
	RevisadaPorID *uuid.UUID `gorm:"type:uuid" json:"revisada_por_id,omitempty"`
	RevisadaPor   *Usuario   `gorm:"foreignKey:RevisadaPorID" json:"revisada_por,omitempty"`
	RevisadaEn    *time.Time `json:"revisada_en,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *SolicitudVacaciones) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

type Incapacidad struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null" json:"usuario_id"`
	Usuario     Usuario   `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	FechaInicio time.Time `gorm:"type:date;not null" json:"fecha_inicio"`
	FechaFin    time.Time `gorm:"type:date;not null" json:"fecha_fin"`
	Diagnostico string    `gorm:"type:text;not null" json:"diagnostico"`
	Estado      string    `gorm:"size:20;not null;default:radicada" json:"estado"`
	Adjuntos    []Adjunto `gorm:"foreignKey:IncapacidadID" json:"adjuntos,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Incapacidad) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID, err = uuid.NewV7()
	}
	return
}

type SolicitudCertificacion struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID         uuid.UUID  `gorm:"type:uuid;not null" json:"usuario_id"`
	Usuario           Usuario    `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	TipoCertificacion string     `gorm:"size:50;not null" json:"tipo_certificacion"` // 'laboral', 'ingresos', 'laboral_con_funciones'
	DirigidoA         string     `gorm:"size:255;not null" json:"dirigido_a"`
	Estado            string     `gorm:"size:20;not null;default:pendiente" json:"estado"`
	DocumentoURL      *string    `gorm:"type:text" json:"documento_url,omitempty"`
	EntregadaEn       *time.Time `json:"entregada_en,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *SolicitudCertificacion) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
