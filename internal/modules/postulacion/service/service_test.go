package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
	postulacionDto "github.com/andeshr/portalrh/internal/modules/postulacion/dto"
	"github.com/andeshr/portalrh/pkg/apperror"
)

type fakeVacanteRepo struct {
	vacantes map[uuid.UUID]*model.Vacante
}

func newFakeVacanteRepo() *fakeVacanteRepo {
	return &fakeVacanteRepo{vacantes: make(map[uuid.UUID]*model.Vacante)}
}

func (f *fakeVacanteRepo) Create(_ context.Context, vacante *model.Vacante) error {
	if vacante.ID == uuid.Nil {
		vacante.ID = uuid.New()
	}
	copia := *vacante
	f.vacantes[vacante.ID] = &copia
	return nil
}

func (f *fakeVacanteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vacante, error) {
	v, ok := f.vacantes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *v
	return &copia, nil
}

func (f *fakeVacanteRepo) FindBySlug(_ context.Context, slug string) (*model.Vacante, error) {
	for _, v := range f.vacantes {
		if v.Slug == slug {
			copia := *v
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVacanteRepo) FindAll(_ context.Context, soloAbiertas bool) ([]*model.Vacante, error) {
	var out []*model.Vacante
	for _, v := range f.vacantes {
		if soloAbiertas && !v.Abierta {
			continue
		}
		copia := *v
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeVacanteRepo) Update(_ context.Context, vacante *model.Vacante) error {
	copia := *vacante
	f.vacantes[vacante.ID] = &copia
	return nil
}

// fakePostulacionRepo enforces the (vacante, correo) unique index the way
// postgres would, including the duplicated-key error on a race.
type fakePostulacionRepo struct {
	postulaciones []model.Postulacion
}

func (f *fakePostulacionRepo) Create(_ context.Context, postulacion *model.Postulacion) error {
	for _, p := range f.postulaciones {
		if p.VacanteID == postulacion.VacanteID && p.Correo == postulacion.Correo {
			return gorm.ErrDuplicatedKey
		}
	}
	if postulacion.ID == uuid.Nil {
		postulacion.ID = uuid.New()
	}
	f.postulaciones = append(f.postulaciones, *postulacion)
	return nil
}

func (f *fakePostulacionRepo) FindByVacanteYCorreo(_ context.Context, vacanteID uuid.UUID, correo string) (*model.Postulacion, error) {
	for i := range f.postulaciones {
		if f.postulaciones[i].VacanteID == vacanteID && f.postulaciones[i].Correo == correo {
			return &f.postulaciones[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostulacionRepo) FindByVacante(_ context.Context, vacanteID uuid.UUID, _, _ int) ([]*model.Postulacion, int64, error) {
	var out []*model.Postulacion
	for i := range f.postulaciones {
		if f.postulaciones[i].VacanteID == vacanteID {
			out = append(out, &f.postulaciones[i])
		}
	}
	return out, int64(len(out)), nil
}

type fakeAdjuntoRepo struct {
	reclamados map[uuid.UUID][]uint
}

func newFakeAdjuntoRepo() *fakeAdjuntoRepo {
	return &fakeAdjuntoRepo{reclamados: make(map[uuid.UUID][]uint)}
}

func (f *fakeAdjuntoRepo) Create(context.Context, *model.Adjunto) error { return nil }
func (f *fakeAdjuntoRepo) UpdateComunicadoID(context.Context, []uint, uuid.UUID, uuid.UUID) error {
	return nil
}
func (f *fakeAdjuntoRepo) UpdateIncapacidadID(context.Context, []uint, uuid.UUID, uuid.UUID) error {
	return nil
}

func (f *fakeAdjuntoRepo) UpdatePostulacionID(_ context.Context, adjuntoIDs []uint, postulacionID uuid.UUID) error {
	f.reclamados[postulacionID] = append(f.reclamados[postulacionID], adjuntoIDs...)
	return nil
}

func (f *fakeAdjuntoRepo) FindOrphans(context.Context, time.Time) ([]model.Adjunto, error) {
	return nil, nil
}
func (f *fakeAdjuntoRepo) Delete(context.Context, uint) error { return nil }

func vacanteAbierta(t *testing.T, repo *fakeVacanteRepo) *model.Vacante {
	t.Helper()
	vacante := &model.Vacante{
		PuestoID:    uuid.New(),
		Titulo:      "Analista de nómina",
		Slug:        "analista-de-nomina",
		Descripcion: "Procesos de nómina y seguridad social",
		Abierta:     true,
	}
	require.NoError(t, repo.Create(context.Background(), vacante))
	return vacante
}

func TestPostularse_Registrada(t *testing.T) {
	vacanteRepo := newFakeVacanteRepo()
	vacante := vacanteAbierta(t, vacanteRepo)
	adjuntos := newFakeAdjuntoRepo()
	svc := NewPostulacionService(vacanteRepo, &fakePostulacionRepo{}, adjuntos, nil)

	resp, err := svc.Postularse(context.Background(), vacante.ID, postulacionDto.CrearPostulacionRequest{
		NombreCompleto: "María Torres",
		Correo:         "  Maria.Torres@Gmail.com ",
		Telefono:       "3001234567",
		CVURL:          "https://cdn.example.com/cv/maria.pdf",
		AdjuntoIDs:     []uint{7, 9},
	})

	require.NoError(t, err)
	assert.Equal(t, "maria.torres@gmail.com", resp.Correo, "email is normalized before storing")

	postulacionID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 9}, adjuntos.reclamados[postulacionID])
}

func TestPostularse_CorreoDuplicadoRechazado(t *testing.T) {
	vacanteRepo := newFakeVacanteRepo()
	vacante := vacanteAbierta(t, vacanteRepo)
	svc := NewPostulacionService(vacanteRepo, &fakePostulacionRepo{}, newFakeAdjuntoRepo(), nil)

	_, err := svc.Postularse(context.Background(), vacante.ID, postulacionDto.CrearPostulacionRequest{
		NombreCompleto: "María Torres",
		Correo:         "maria@gmail.com",
		CVURL:          "https://cdn.example.com/cv/maria.pdf",
	})
	require.NoError(t, err)

	// Same address with different casing is still the same applicant.
	_, err = svc.Postularse(context.Background(), vacante.ID, postulacionDto.CrearPostulacionRequest{
		NombreCompleto: "María T.",
		Correo:         "MARIA@gmail.com",
		CVURL:          "https://cdn.example.com/cv/maria-v2.pdf",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestPostularse_MismoCorreoEnOtraVacante(t *testing.T) {
	vacanteRepo := newFakeVacanteRepo()
	primera := vacanteAbierta(t, vacanteRepo)
	segunda := &model.Vacante{PuestoID: uuid.New(), Titulo: "Auxiliar contable", Slug: "auxiliar-contable", Descripcion: "x", Abierta: true}
	require.NoError(t, vacanteRepo.Create(context.Background(), segunda))
	svc := NewPostulacionService(vacanteRepo, &fakePostulacionRepo{}, newFakeAdjuntoRepo(), nil)

	req := postulacionDto.CrearPostulacionRequest{
		NombreCompleto: "María Torres",
		Correo:         "maria@gmail.com",
		CVURL:          "https://cdn.example.com/cv/maria.pdf",
	}

	_, err := svc.Postularse(context.Background(), primera.ID, req)
	require.NoError(t, err)

	_, err = svc.Postularse(context.Background(), segunda.ID, req)
	assert.NoError(t, err, "the uniqueness is per vacante, not global")
}

func TestPostularse_VacanteCerradaRechazada(t *testing.T) {
	vacanteRepo := newFakeVacanteRepo()
	vacante := vacanteAbierta(t, vacanteRepo)
	vacante.Abierta = false
	require.NoError(t, vacanteRepo.Update(context.Background(), vacante))
	svc := NewPostulacionService(vacanteRepo, &fakePostulacionRepo{}, newFakeAdjuntoRepo(), nil)

	_, err := svc.Postularse(context.Background(), vacante.ID, postulacionDto.CrearPostulacionRequest{
		NombreCompleto: "María Torres",
		Correo:         "maria@gmail.com",
		CVURL:          "https://cdn.example.com/cv/maria.pdf",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestPostularse_VacanteInexistente(t *testing.T) {
	svc := NewPostulacionService(newFakeVacanteRepo(), &fakePostulacionRepo{}, newFakeAdjuntoRepo(), nil)

	_, err := svc.Postularse(context.Background(), uuid.New(), postulacionDto.CrearPostulacionRequest{
		NombreCompleto: "María Torres",
		Correo:         "maria@gmail.com",
		CVURL:          "https://cdn.example.com/cv/maria.pdf",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestActualizarVacante_CerrarLaOcultaDelListadoPublico(t *testing.T) {
	vacanteRepo := newFakeVacanteRepo()
	vacante := vacanteAbierta(t, vacanteRepo)
	svc := NewPostulacionService(vacanteRepo, &fakePostulacionRepo{}, newFakeAdjuntoRepo(), nil)

	cerrada := false
	err := svc.ActualizarVacante(context.Background(), vacante.ID, postulacionDto.ActualizarVacanteRequest{Abierta: &cerrada})
	require.NoError(t, err)

	publicas, err := svc.GetVacantes(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, publicas)

	todas, err := svc.GetVacantes(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todas, 1)
}
