package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/modules/admin/dto"
	admin "github.com/andeshr/portalrh/internal/modules/admin/service"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type AdminHandler struct {
	service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) CrearUsuario(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AdminHandler) GetUsuarios(c *gin.Context) {
	var filtro dto.FiltroUsuariosRequest
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.GetUsuarios(c.Request.Context(), filtro)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ActualizarUsuario(c *gin.Context) {
	usuarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid usuario id"})
		return
	}

	var req dto.ActualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.ActualizarUsuario(c.Request.Context(), usuarioID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "usuario actualizado"})
}

func (h *AdminHandler) EliminarUsuario(c *gin.Context) {
	usuarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid usuario id"})
		return
	}

	if err := h.service.EliminarUsuario(c.Request.Context(), usuarioID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "usuario eliminado"})
}
