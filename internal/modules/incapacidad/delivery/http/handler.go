package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/incapacidad/dto"
	incapacidad "github.com/andeshr/portalrh/internal/modules/incapacidad/service"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type IncapacidadHandler struct {
	service incapacidad.IncapacidadService
}

func NewIncapacidadHandler(service incapacidad.IncapacidadService) *IncapacidadHandler {
	return &IncapacidadHandler{service: service}
}

func (h *IncapacidadHandler) CrearIncapacidad(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CrearIncapacidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CrearIncapacidad(c.Request.Context(), usuarioID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *IncapacidadHandler) GetMisIncapacidades(c *gin.Context) {
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

	resp, err := h.service.GetMisIncapacidades(c.Request.Context(), usuarioID, pag)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IncapacidadHandler) GetIncapacidades(c *gin.Context) {
	var pag commonDto.Pagination
	if err := c.ShouldBindQuery(&pag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
		return
	}

	resp, err := h.service.GetIncapacidades(c.Request.Context(), c.Query("estado"), pag)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IncapacidadHandler) GetIncapacidad(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	incapacidadID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incapacidad id"})
		return
	}

	esAdmin := response.GetUserRole(c) == model.RolAdmin
	resp, err := h.service.GetIncapacidad(c.Request.Context(), incapacidadID, usuarioID, esAdmin)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IncapacidadHandler) RevisarIncapacidad(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	incapacidadID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incapacidad id"})
		return
	}

	var req dto.RevisarIncapacidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.RevisarIncapacidad(c.Request.Context(), adminID, incapacidadID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "incapacidad revisada"})
}
