package model

import (
	"time"

	"github.com/google/uuid"
)

type Notificacion struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null" json:"usuario_id"` // receiver
	ActorID     uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`   // who triggered it
	EntidadID   uuid.UUID `gorm:"type:uuid;not null" json:"entidad_id"`
	TipoEntidad string    `gorm:"size:50;not null" json:"tipo_entidad"` // 'comunicado', 'vacaciones', 'incapacidad', 'certificacion', 'comentario'
	Tipo        string    `gorm:"size:50;not null" json:"tipo"`         // 'nuevo_comunicado', 'respuesta_comentario', 'cambio_estado'
	Mensaje     string    `gorm:"type:text" json:"mensaje"`
	Leida       bool      `gorm:"default:false" json:"leida"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations - pointers to avoid recursion
	Usuario *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Actor   *Usuario `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
