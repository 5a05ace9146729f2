package dto

type RangoRequest struct {
	FechaInicio string `json:"fecha_inicio" binding:"required,datetime=2006-01-02"`
	FechaFin    string `json:"fecha_fin" binding:"required,datetime=2006-01-02"`
}

type IntervaloResponse struct {
	ID          string `json:"id"`
	ScopeID     string `json:"scope_id"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Disponible  bool   `json:"disponible"`
}
