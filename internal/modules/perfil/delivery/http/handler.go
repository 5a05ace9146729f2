package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andeshr/portalrh/internal/modules/perfil/dto"
	perfil "github.com/andeshr/portalrh/internal/modules/perfil/service"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type PerfilHandler struct {
	service perfil.PerfilService
}

func NewPerfilHandler(service perfil.PerfilService) *PerfilHandler {
	return &PerfilHandler{service: service}
}

func (h *PerfilHandler) GetMiPerfil(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetMiPerfil(c.Request.Context(), usuarioID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PerfilHandler) ActualizarPerfil(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.ActualizarPerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.ActualizarPerfil(c.Request.Context(), usuarioID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "perfil actualizado"})
}

func (h *PerfilHandler) CambiarPassword(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CambiarPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.CambiarPassword(c.Request.Context(), usuarioID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contraseña actualizada"})
}

func (h *PerfilHandler) SubirAvatar(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, fileErr := c.FormFile("file")
	if fileErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "el archivo es obligatorio"})
		return
	}

	url, err := h.service.SubirAvatar(c.Request.Context(), usuarioID, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
