package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntervaloDisponibilidad is one closed date range [FechaInicio, FechaFin]
// on a shared vacation calendar. Rows with Disponible=false block new
// vacation requests; the calendario service keeps blocked rows of one scope
// disjoint after every enable edit.
type IntervaloDisponibilidad struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ScopeID     string    `gorm:"size:100;not null;index" json:"scope_id"`
	FechaInicio time.Time `gorm:"type:date;not null;column:fecha_inicio" json:"fecha_inicio"`
	FechaFin    time.Time `gorm:"type:date;not null;column:fecha_fin" json:"fecha_fin"`
	Disponible  bool      `gorm:"not null;default:false" json:"disponible"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (i *IntervaloDisponibilidad) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID, err = uuid.NewV7()
	}
	return
}
