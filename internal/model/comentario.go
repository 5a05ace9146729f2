package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Thread types a comment can attach to. The comment machinery is the same
// for all of them; the pair (tipo_hilo, hilo_id) identifies the thread.
const (
	TipoHiloComunicado    = "comunicado"
	TipoHiloVacaciones    = "vacaciones"
	TipoHiloIncapacidad   = "incapacidad"
	TipoHiloCertificacion = "certificacion"
)

type Comentario struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TipoHilo   string     `gorm:"size:30;not null;index:idx_comentario_hilo" json:"tipo_hilo"`
	HiloID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_comentario_hilo" json:"hilo_id"`
	UsuarioID  uuid.UUID  `gorm:"type:uuid;not null" json:"usuario_id"`
	Usuario    Usuario    `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	RespuestaA *uuid.UUID `gorm:"type:uuid" json:"respuesta_a,omitempty"`
	Contenido  string     `gorm:"type:text;not null" json:"contenido"`
	// Seen flags are the only mutable fields; each side flips the other's.
	VistoAdmin   bool      `gorm:"default:false" json:"visto_admin"`
	VistoUsuario bool      `gorm:"default:false" json:"visto_usuario"`
	EsDeAdmin    bool      `gorm:"default:false" json:"es_de_admin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`
}

func (c *Comentario) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
