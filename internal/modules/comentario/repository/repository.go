package repository

import (
	"context"
	"errors"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InfoHilo is what the comment machinery needs to know about the business
// item a thread hangs off: that it exists, who requested/authored it, and a
// short title for notification messages.
type InfoHilo struct {
	PropietarioID uuid.UUID
	Titulo        string
}

type ComentarioRepository interface {
	Create(ctx context.Context, comentario *model.Comentario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comentario, error)
	// FindByHilo returns the whole thread, newest first.
	FindByHilo(ctx context.Context, tipoHilo string, hiloID uuid.UUID) ([]model.Comentario, error)
	// CountNoVistos counts comments from the opposite side not yet seen by
	// the given viewer side.
	CountNoVistos(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin bool) (int64, error)
	// MarcarVistos flips the viewer side's seen flag on every opposite-side
	// comment of the thread. Idempotent.
	MarcarVistos(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin bool) error
	// ResolverHilo looks up the business item behind (tipoHilo, hiloID).
	ResolverHilo(ctx context.Context, tipoHilo string, hiloID uuid.UUID) (*InfoHilo, error)
}

type comentarioRepository struct {
	db *gorm.DB
}

func NewComentarioRepository(db *gorm.DB) ComentarioRepository {
	return &comentarioRepository{db: db}
}

func (r *comentarioRepository) Create(ctx context.Context, comentario *model.Comentario) error {
	return r.db.WithContext(ctx).Create(comentario).Error
}

func (r *comentarioRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comentario, error) {
	var comentario model.Comentario
	if err := r.db.WithContext(ctx).First(&comentario, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comentario, nil
}

func (r *comentarioRepository) FindByHilo(ctx context.Context, tipoHilo string, hiloID uuid.UUID) ([]model.Comentario, error) {
	var comentarios []model.Comentario
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("tipo_hilo = ? AND hilo_id = ?", tipoHilo, hiloID).
		Order("created_at desc").
		Find(&comentarios).Error; err != nil {
		return nil, err
	}
	return comentarios, nil
}

func (r *comentarioRepository) CountNoVistos(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comentario{}).
		Where("tipo_hilo = ? AND hilo_id = ?", tipoHilo, hiloID)

	if visorAdmin {
		query = query.Where("es_de_admin = ? AND visto_admin = ?", false, false)
	} else {
		query = query.Where("es_de_admin = ? AND visto_usuario = ?", true, false)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *comentarioRepository) MarcarVistos(ctx context.Context, tipoHilo string, hiloID uuid.UUID, visorAdmin bool) error {
	query := r.db.WithContext(ctx).Model(&model.Comentario{}).
		Where("tipo_hilo = ? AND hilo_id = ?", tipoHilo, hiloID)

	if visorAdmin {
		return query.
			Where("es_de_admin = ? AND visto_admin = ?", false, false).
			Update("visto_admin", true).Error
	}
	return query.
		Where("es_de_admin = ? AND visto_usuario = ?", true, false).
		Update("visto_usuario", true).Error
}

func (r *comentarioRepository) ResolverHilo(ctx context.Context, tipoHilo string, hiloID uuid.UUID) (*InfoHilo, error) {
	db := r.db.WithContext(ctx)

	switch tipoHilo {
	case model.TipoHiloComunicado:
		var c model.Comunicado
		if err := db.First(&c, "id = ?", hiloID).Error; err != nil {
			return nil, err
		}
		return &InfoHilo{PropietarioID: c.UsuarioID, Titulo: c.Titulo}, nil
	case model.TipoHiloVacaciones:
		var s model.SolicitudVacaciones
		if err := db.First(&s, "id = ?", hiloID).Error; err != nil {
			return nil, err
		}
		return &InfoHilo{PropietarioID: s.UsuarioID, Titulo: "solicitud de vacaciones"}, nil
	case model.TipoHiloIncapacidad:
		var i model.Incapacidad
		if err := db.First(&i, "id = ?", hiloID).Error; err != nil {
			return nil, err
		}
		return &InfoHilo{PropietarioID: i.UsuarioID, Titulo: "incapacidad"}, nil
	case model.TipoHiloCertificacion:
		var s model.SolicitudCertificacion
		if err := db.First(&s, "id = ?", hiloID).Error; err != nil {
			return nil, err
		}
		return &InfoHilo{PropietarioID: s.UsuarioID, Titulo: "solicitud de certificación"}, nil
	}

	return nil, errors.New("tipo de hilo desconocido: " + tipoHilo)
}
