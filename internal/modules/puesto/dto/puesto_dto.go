package dto

type CrearPuestoRequest struct {
	Nombre      string `json:"nombre" binding:"required,min=3,max=100"`
	Descripcion string `json:"descripcion" binding:"max=1000"`
	Area        string `json:"area" binding:"required,oneof=administrativo operativo"`
}

type PuestoResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Slug        string `json:"slug"`
	Descripcion string `json:"descripcion,omitempty"`
	Area        string `json:"area"`
}
