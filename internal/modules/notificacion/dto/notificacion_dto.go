package dto

// Destinatario is one resolved recipient of a bulk dispatch. Ephemeral:
// derived from the active-user query, never persisted.
type Destinatario struct {
	Correo string `json:"correo_electronico"`
	Nombre string `json:"colaborador"`
}

// ResultadoEnvio is the per-recipient outcome of one dispatch.
type ResultadoEnvio struct {
	Correo     string `json:"email"`
	Status     string `json:"status"` // "success" | "failed"
	Intento    int    `json:"attempt"`
	Error      string `json:"error,omitempty"`
	DuracionMs int64  `json:"duration_ms"`
}

// ResumenEnvio aggregates a whole dispatch. Returned to the caller as
// metadata; delivery failure is never fatal to the triggering action.
type ResumenEnvio struct {
	Message         string           `json:"message"`
	Successful      int              `json:"successful"`
	Failed          int              `json:"failed"`
	SuccessRate     float64          `json:"successRate"`
	AvgResponseTime float64          `json:"avgResponseTime"`
	TotalTime       int64            `json:"totalTime"`
	TotalRetries    int              `json:"totalRetries"`
	Results         []ResultadoEnvio `json:"results"`
}

type NotificarComunicadoRequest struct {
	ComunicadoID string `json:"comunicadoId" binding:"required,uuid"`
	Titulo       string `json:"titulo" binding:"required"`
	Contenido    string `json:"contenido" binding:"required"`
}

type NotificarSolicitudRequest struct {
	SolicitudID string `json:"solicitudId" binding:"required,uuid"`
	UsuarioID   string `json:"usuarioId" binding:"required,uuid"`
	Tipo        string `json:"tipo" binding:"required,oneof=vacaciones incapacidad certificacion"`
}
