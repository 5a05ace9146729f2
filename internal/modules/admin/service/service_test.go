package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andeshr/portalrh/internal/model"
	adminDto "github.com/andeshr/portalrh/internal/modules/admin/dto"
	usuarioDto "github.com/andeshr/portalrh/internal/modules/usuario/dto"
)

type fakeUsuarioRepo struct {
	usuarios []*model.Usuario
}

func (f *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	copia := *u
	f.usuarios = append(f.usuarios, &copia)
	return nil
}

func (f *fakeUsuarioRepo) FindByID(_ context.Context, id string) (*model.Usuario, error) {
	for _, u := range f.usuarios {
		if u.ID.String() == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUsuarioRepo) FindByCorreo(_ context.Context, correo string) (*model.Usuario, error) {
	for _, u := range f.usuarios {
		if u.Correo == correo {
			copia := *u
			return &copia, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUsuarioRepo) FindRolByNombre(_ context.Context, nombre string) (*model.Rol, error) {
	return &model.Rol{ID: 1, Nombre: nombre}, nil
}

func (f *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error { return nil }

func (f *fakeUsuarioRepo) FindAll(_ context.Context) ([]*model.Usuario, error) {
	out := make([]*model.Usuario, 0, len(f.usuarios))
	for _, u := range f.usuarios {
		copia := *u
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeUsuarioRepo) FindActivos(_ context.Context, _ string) ([]*model.Usuario, error) {
	return nil, nil
}
func (f *fakeUsuarioRepo) Delete(_ context.Context, _ string) error { return nil }
func (f *fakeUsuarioRepo) Count(_ context.Context) (int64, error)   { return int64(len(f.usuarios)), nil }

func plantilla(nombre, correo, rol, estado string) *model.Usuario {
	return &model.Usuario{
		ID:     uuid.New(),
		Nombre: nombre,
		Correo: correo,
		Rol:    model.Rol{Nombre: rol},
		Estado: estado,
	}
}

func repoConUsuarios() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: []*model.Usuario{
		plantilla("Carlos Pérez", "carlos.perez@empresa.co", "colaborador", model.EstadoUsuarioActivo),
		plantilla("Ana Gómez", "ana.gomez@empresa.co", "admin", model.EstadoUsuarioActivo),
		plantilla("Beatriz Ruiz", "beatriz.ruiz@empresa.co", "colaborador", model.EstadoUsuarioInactivo),
	}}
}

func nombres(data []usuarioDto.UsuarioResponse) []string {
	out := make([]string, 0, len(data))
	for _, u := range data {
		out = append(out, u.Nombre)
	}
	return out
}

func TestGetUsuarios_SinFiltroConservaOrdenDeOrigen(t *testing.T) {
	svc := NewAdminService(repoConUsuarios())

	resp, err := svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Carlos Pérez", "Ana Gómez", "Beatriz Ruiz"}, nombres(resp.Data))
	assert.Empty(t, resp.Orden)
}

func TestGetUsuarios_BusquedaLibre(t *testing.T) {
	svc := NewAdminService(repoConUsuarios())

	tests := []struct {
		name     string
		buscar   string
		expected []string
	}{
		{name: "por nombre, sin distinguir mayúsculas", buscar: "gómez", expected: []string{"Ana Gómez"}},
		{name: "por correo", buscar: "BEATRIZ.RUIZ", expected: []string{"Beatriz Ruiz"}},
		{name: "por rol", buscar: "admin", expected: []string{"Ana Gómez"}},
		{name: "sin coincidencias", buscar: "zzz", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{Buscar: tt.buscar})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, nombres(resp.Data))
		})
	}
}

func TestGetUsuarios_FiltrosDeColumna(t *testing.T) {
	svc := NewAdminService(repoConUsuarios())

	resp, err := svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{
		Estado: model.EstadoUsuarioActivo,
		Rol:    "colaborador",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Carlos Pérez"}, nombres(resp.Data))
}

func TestGetUsuarios_OrdenAlterna(t *testing.T) {
	svc := NewAdminService(repoConUsuarios())

	// First click on a column sorts ascending.
	resp, err := svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{Orden: "nombre"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Gómez", "Beatriz Ruiz", "Carlos Pérez"}, nombres(resp.Data))
	assert.Equal(t, "nombre", resp.Orden)
	assert.Equal(t, "asc", resp.Dir)

	// Same column again flips to descending.
	resp, err = svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{
		Orden: "nombre", OrdenPrevio: "nombre", DirPrevia: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carlos Pérez", "Beatriz Ruiz", "Ana Gómez"}, nombres(resp.Data))
	assert.Equal(t, "desc", resp.Dir)

	// And a third click returns to ascending.
	resp, err = svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{
		Orden: "nombre", OrdenPrevio: "nombre", DirPrevia: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Gómez", "Beatriz Ruiz", "Carlos Pérez"}, nombres(resp.Data))
	assert.Equal(t, "asc", resp.Dir)

	// A different column always starts ascending.
	resp, err = svc.GetUsuarios(context.Background(), adminDto.FiltroUsuariosRequest{
		Orden: "correo_electronico", OrdenPrevio: "nombre", DirPrevia: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, "correo_electronico", resp.Orden)
	assert.Equal(t, "asc", resp.Dir)
	assert.Equal(t, []string{"Ana Gómez", "Beatriz Ruiz", "Carlos Pérez"}, nombres(resp.Data))
}

func TestCrearUsuario_CorreoDuplicadoRechazado(t *testing.T) {
	repo := repoConUsuarios()
	svc := NewAdminService(repo)

	_, err := svc.CrearUsuario(context.Background(), adminDto.CrearUsuarioRequest{
		Nombre:   "Otro Carlos",
		Correo:   "carlos.perez@empresa.co",
		Password: "secreto123",
		Rol:      "colaborador",
	})

	require.Error(t, err)
}
