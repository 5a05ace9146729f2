package dto

type LoginInput struct {
	Correo   string `json:"correo_electronico" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

type UsuarioResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Correo    string  `json:"correo_electronico"`
	Rol       string  `json:"rol"`
	Puesto    *string `json:"puesto,omitempty"`
	Estado    string  `json:"estado"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
