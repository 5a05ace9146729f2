package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RolAdmin       = "admin"
	RolColaborador = "colaborador"
)

const (
	EstadoUsuarioActivo   = "activo"
	EstadoUsuarioInactivo = "inactivo"
)

type Rol struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nombre      string    `gorm:"size:50;uniqueIndex;not null" json:"nombre"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Usuario struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre       string     `gorm:"size:100;not null" json:"nombre"`
	Correo       string     `gorm:"size:100;uniqueIndex;not null" json:"correo_electronico"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	RolID        *uint      `json:"rol_id"`
	Rol          Rol        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"rol"`
	PuestoID     *uuid.UUID `gorm:"type:uuid" json:"puesto_id,omitempty"`
	Puesto       *Puesto    `gorm:"constraint:OnDelete:SET NULL" json:"puesto,omitempty"`
	Estado       string     `gorm:"size:20;not null;default:activo" json:"estado"`
	AvatarURL    *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Puesto is the job-position catalog entry. It doubles as the audience
// dimension for targeted notifications and as the reference for vacantes.
type Puesto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre      string    `gorm:"size:100;not null" json:"nombre"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Area        string    `gorm:"size:50" json:"area"` // 'administrativo' o 'operativo'
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Puesto) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
