package handler

import (
	"net/http"

	"github.com/andeshr/portalrh/internal/modules/calendario/dto"
	calendario "github.com/andeshr/portalrh/internal/modules/calendario/service"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CalendarioHandler struct {
	service calendario.CalendarioService
}

func NewCalendarioHandler(service calendario.CalendarioService) *CalendarioHandler {
	return &CalendarioHandler{service: service}
}

func scopeID(c *gin.Context) string {
	if scope := c.Query("scope"); scope != "" {
		return scope
	}
	return calendario.ScopeGeneral
}

func (h *CalendarioHandler) Listar(c *gin.Context) {
	intervalos, err := h.service.Listar(c.Request.Context(), scopeID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": intervalos})
}

func (h *CalendarioHandler) Deshabilitar(c *gin.Context) {
	var rango dto.RangoRequest
	if err := c.ShouldBindJSON(&rango); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.Deshabilitar(c.Request.Context(), scopeID(c), rango); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "rango deshabilitado"})
}

func (h *CalendarioHandler) Habilitar(c *gin.Context) {
	var rango dto.RangoRequest
	if err := c.ShouldBindJSON(&rango); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.Habilitar(c.Request.Context(), scopeID(c), rango); err != nil {
		// State may be partially applied: the client must re-fetch before
		// attempting another edit.
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rango habilitado"})
}
