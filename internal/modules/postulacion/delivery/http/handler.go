package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/modules/postulacion/dto"
	postulacion "github.com/andeshr/portalrh/internal/modules/postulacion/service"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type PostulacionHandler struct {
	service postulacion.PostulacionService
}

func NewPostulacionHandler(service postulacion.PostulacionService) *PostulacionHandler {
	return &PostulacionHandler{service: service}
}

func (h *PostulacionHandler) CrearVacante(c *gin.Context) {
	var req dto.CrearVacanteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CrearVacante(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostulacionHandler) GetVacantes(c *gin.Context) {
	incluirCerradas := c.Query("incluir_cerradas") == "1"

	resp, err := h.service.GetVacantes(c.Request.Context(), incluirCerradas)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PostulacionHandler) GetVacanteBySlug(c *gin.Context) {
	resp, err := h.service.GetVacanteBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostulacionHandler) ActualizarVacante(c *gin.Context) {
	vacanteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vacante id"})
		return
	}

	var req dto.ActualizarVacanteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.ActualizarVacante(c.Request.Context(), vacanteID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vacante actualizada"})
}

func (h *PostulacionHandler) Postularse(c *gin.Context) {
	vacanteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vacante id"})
		return
	}

	var req dto.CrearPostulacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Postularse(c.Request.Context(), vacanteID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostulacionHandler) GetPostulaciones(c *gin.Context) {
	vacanteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vacante id"})
		return
	}

	var pag commonDto.Pagination
	if err := c.ShouldBindQuery(&pag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
		return
	}

	resp, err := h.service.GetPostulaciones(c.Request.Context(), vacanteID, pag)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
