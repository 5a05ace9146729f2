package service

import (
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"github.com/andeshr/portalrh/internal/model"
)

// BusquedaService mantiene los indices de Meilisearch sincronizados con la
// base de datos. Todas las operaciones son best-effort: un fallo del indice
// nunca debe tumbar la operacion de negocio que lo disparo.
type BusquedaService interface {
	IndexarComunicado(comunicado *model.Comunicado) error
	EliminarComunicado(id string) error
	IndexarVacante(vacante *model.Vacante) error
	EliminarVacante(id string) error
}

type busquedaService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewBusquedaService(client meilisearch.ServiceManager) BusquedaService {
	s := &busquedaService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *busquedaService) initIndexes() {
	_, err := s.client.Index("comunicados").UpdateFilterableAttributes(&[]interface{}{
		"audiencia",
		"publicado",
	})
	if err != nil {
		log.Printf("Failed to update comunicados filterable attributes: %v", err)
	}

	_, err = s.client.Index("comunicados").UpdateSortableAttributes(&[]string{
		"publicado_en",
	})
	if err != nil {
		log.Printf("Failed to update comunicados sortable attributes: %v", err)
	}

	_, err = s.client.Index("vacantes").UpdateFilterableAttributes(&[]interface{}{
		"abierta",
	})
	if err != nil {
		log.Printf("Failed to update vacantes filterable attributes: %v", err)
	}

	_, err = s.client.Index("vacantes").UpdateSortableAttributes(&[]string{
		"created_at",
	})
	if err != nil {
		log.Printf("Failed to update vacantes sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliComunicadoDoc struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Contenido   string `json:"contenido"`
	Slug        string `json:"slug"`
	Audiencia   string `json:"audiencia"`
	Publicado   bool   `json:"publicado"`
	PublicadoEn int64  `json:"publicado_en"`
}

type meiliVacanteDoc struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Abierta     bool   `json:"abierta"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *busquedaService) limpiarContenido(contenido string) string {
	contenido = strings.ReplaceAll(contenido, "</p>", " ")
	contenido = strings.ReplaceAll(contenido, "<br>", " ")
	contenido = strings.ReplaceAll(contenido, "</div>", " ")

	limpio := html.UnescapeString(s.sanitizer.Sanitize(contenido))
	return strings.Join(strings.Fields(limpio), " ")
}

func (s *busquedaService) IndexarComunicado(comunicado *model.Comunicado) error {
	if s.client == nil {
		return nil
	}

	doc := meiliComunicadoDoc{
		ID:        comunicado.ID.String(),
		Titulo:    comunicado.Titulo,
		Contenido: s.limpiarContenido(comunicado.Contenido),
		Slug:      comunicado.Slug,
		Audiencia: comunicado.Audiencia,
		Publicado: comunicado.Publicado,
	}
	if comunicado.PublicadoEn != nil {
		doc.PublicadoEn = comunicado.PublicadoEn.Unix()
	}

	task, err := s.client.Index("comunicados").AddDocuments([]meiliComunicadoDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed comunicado %s, task id: %d", comunicado.ID, task.TaskUID)
	return nil
}

func (s *busquedaService) EliminarComunicado(id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index("comunicados").DeleteDocument(id)
	return err
}

func (s *busquedaService) IndexarVacante(vacante *model.Vacante) error {
	if s.client == nil {
		return nil
	}

	doc := meiliVacanteDoc{
		ID:          vacante.ID.String(),
		Titulo:      vacante.Titulo,
		Descripcion: s.limpiarContenido(vacante.Descripcion),
		Abierta:     vacante.Abierta,
		CreatedAt:   vacante.CreatedAt.Unix(),
	}

	task, err := s.client.Index("vacantes").AddDocuments([]meiliVacanteDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed vacante %s, task id: %d", vacante.ID, task.TaskUID)
	return nil
}

func (s *busquedaService) EliminarVacante(id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index("vacantes").DeleteDocument(id)
	return err
}

func strPtr(s string) *string { return &s }
