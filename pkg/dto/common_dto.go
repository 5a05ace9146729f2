package dto

// Pagination is the shared page/limit query binding for list endpoints.
type Pagination struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (p *Pagination) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta accompanies every paginated list response.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPageMeta(p Pagination, total int64) PageMeta {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return PageMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// AdjuntoResponse is the shared attachment shape embedded in detail responses.
type AdjuntoResponse struct {
	ID       uint   `json:"id"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

// AutorResponse identifies the author of a comment or request.
type AutorResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
