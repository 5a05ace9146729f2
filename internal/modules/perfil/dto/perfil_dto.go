package dto

type ActualizarPerfilRequest struct {
	Nombre *string `json:"nombre,omitempty" binding:"omitempty,min=3,max=100"`
}

type CambiarPasswordRequest struct {
	PasswordActual string `json:"password_actual" binding:"required"`
	PasswordNueva  string `json:"password_nueva" binding:"required,min=8"`
}
