package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/modules/comunicado/dto"
	comunicado "github.com/andeshr/portalrh/internal/modules/comunicado/service"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type ComunicadoHandler struct {
	service comunicado.ComunicadoService
}

func NewComunicadoHandler(service comunicado.ComunicadoService) *ComunicadoHandler {
	return &ComunicadoHandler{service: service}
}

func (h *ComunicadoHandler) CrearComunicado(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CrearComunicadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CrearComunicado(c.Request.Context(), usuarioID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ComunicadoHandler) GetComunicados(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var pag commonDto.Pagination
	if err := c.ShouldBindQuery(&pag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
		return
	}

	resp, err := h.service.GetComunicados(c.Request.Context(), usuarioID, pag)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComunicadoHandler) GetComunicadoBySlug(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetComunicadoBySlug(c.Request.Context(), usuarioID, c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComunicadoHandler) ActualizarComunicado(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comunicadoID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comunicado id"})
		return
	}

	var req dto.ActualizarComunicadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.ActualizarComunicado(c.Request.Context(), usuarioID, comunicadoID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comunicado actualizado"})
}

func (h *ComunicadoHandler) PublicarComunicado(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comunicadoID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comunicado id"})
		return
	}

	if err := h.service.PublicarComunicado(c.Request.Context(), usuarioID, comunicadoID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comunicado publicado"})
}

func (h *ComunicadoHandler) EliminarComunicado(c *gin.Context) {
	comunicadoID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comunicado id"})
		return
	}

	if err := h.service.EliminarComunicado(c.Request.Context(), comunicadoID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comunicado eliminado"})
}
