package dto

import (
	usuarioDto "github.com/andeshr/portalrh/internal/modules/usuario/dto"
)

type CrearUsuarioRequest struct {
	Nombre   string  `json:"nombre" binding:"required,min=3,max=100"`
	Correo   string  `json:"correo_electronico" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Rol      string  `json:"rol" binding:"required,oneof=admin colaborador"`
	PuestoID *string `json:"puesto_id,omitempty" binding:"omitempty,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre,omitempty" binding:"omitempty,min=3,max=100"`
	Rol      *string `json:"rol,omitempty" binding:"omitempty,oneof=admin colaborador"`
	Estado   *string `json:"estado,omitempty" binding:"omitempty,oneof=activo inactivo"`
	PuestoID *string `json:"puesto_id,omitempty" binding:"omitempty,uuid"`
}

// FiltroUsuariosRequest narrows and orders the user listing. The list is
// post-processed in memory over the already-joined rows (rol and puesto come
// preloaded): buscar is a free-text match over the visible text columns,
// estado/rol are exact column filters. orden is the column whose header was
// clicked; orden_previo/dir_previa carry the sort the client last had
// applied, so clicking the same column again flips the direction.
type FiltroUsuariosRequest struct {
	Buscar      string `form:"buscar"`
	Estado      string `form:"estado" binding:"omitempty,oneof=activo inactivo"`
	Rol         string `form:"rol" binding:"omitempty,oneof=admin colaborador"`
	Orden       string `form:"orden" binding:"omitempty,oneof=nombre correo_electronico estado"`
	OrdenPrevio string `form:"orden_previo" binding:"omitempty,oneof=nombre correo_electronico estado"`
	DirPrevia   string `form:"dir_previa" binding:"omitempty,oneof=asc desc"`
}

// ListaUsuariosResponse echoes the applied sort so the client can send it
// back as orden_previo/dir_previa on the next header click.
type ListaUsuariosResponse struct {
	Data  []usuarioDto.UsuarioResponse `json:"data"`
	Orden string                       `json:"orden,omitempty"`
	Dir   string                       `json:"dir,omitempty"`
}
