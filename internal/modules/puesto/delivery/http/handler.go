package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/modules/puesto/dto"
	puesto "github.com/andeshr/portalrh/internal/modules/puesto/service"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type PuestoHandler struct {
	service puesto.PuestoService
}

func NewPuestoHandler(service puesto.PuestoService) *PuestoHandler {
	return &PuestoHandler{service: service}
}

func (h *PuestoHandler) CrearPuesto(c *gin.Context) {
	var req dto.CrearPuestoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CrearPuesto(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PuestoHandler) GetPuestos(c *gin.Context) {
	resp, err := h.service.GetPuestos(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PuestoHandler) EliminarPuesto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid puesto id"})
		return
	}

	if err := h.service.EliminarPuesto(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "puesto eliminado"})
}
