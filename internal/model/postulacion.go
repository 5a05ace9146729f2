package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vacante struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PuestoID    uuid.UUID `gorm:"type:uuid;not null" json:"puesto_id"`
	Puesto      Puesto    `gorm:"constraint:OnDelete:CASCADE" json:"puesto,omitempty"`
	Titulo      string    `gorm:"size:255;not null" json:"titulo"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Descripcion string    `gorm:"type:text;not null" json:"descripcion"`
	Abierta     bool      `gorm:"default:true" json:"abierta"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (v *Vacante) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}

type Postulacion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VacanteID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_postulacion_vacante_correo" json:"vacante_id"`
	Vacante        Vacante   `gorm:"constraint:OnDelete:CASCADE" json:"vacante,omitempty"`
	NombreCompleto string    `gorm:"size:150;not null" json:"nombre_completo"`
	Correo         string    `gorm:"size:100;not null;uniqueIndex:idx_postulacion_vacante_correo" json:"correo_electronico"`
	Telefono       string    `gorm:"size:30" json:"telefono"`
	CVURL          string    `gorm:"type:text;not null" json:"cv_url"`
	Adjuntos       []Adjunto `gorm:"foreignKey:PostulacionID" json:"adjuntos,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Postulacion) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
