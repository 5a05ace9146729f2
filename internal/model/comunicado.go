package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AudienciaTodos          = "todos"
	AudienciaAdministrativo = "administrativo"
	AudienciaOperativo      = "operativo"
)

type Comunicado struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID   uuid.UUID  `gorm:"type:uuid;not null" json:"usuario_id"`
	Usuario     Usuario    `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	Titulo      string     `gorm:"size:255;not null" json:"titulo"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Contenido   string     `gorm:"type:text;not null" json:"contenido"`
	Audiencia   string     `gorm:"size:50;not null" json:"audiencia"` // 'todos', 'administrativo', 'operativo'
	PortadaURL  *string    `gorm:"type:text" json:"portada_url,omitempty"`
	Publicado   bool       `gorm:"default:false" json:"publicado"`
	PublicadoEn *time.Time `json:"publicado_en,omitempty"`
	Adjuntos    []Adjunto  `gorm:"foreignKey:ComunicadoID" json:"adjuntos,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comunicado) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
