package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/vacaciones/dto"
	vacaciones "github.com/andeshr/portalrh/internal/modules/vacaciones/service"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type VacacionesHandler struct {
	service vacaciones.VacacionesService
}

func NewVacacionesHandler(service vacaciones.VacacionesService) *VacacionesHandler {
	return &VacacionesHandler{service: service}
}

func (h *VacacionesHandler) CrearSolicitud(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CrearSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CrearSolicitud(c.Request.Context(), usuarioID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *VacacionesHandler) GetMisSolicitudes(c *gin.Context) {
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

	resp, err := h.service.GetMisSolicitudes(c.Request.Context(), usuarioID, pag)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VacacionesHandler) GetSolicitudes(c *gin.Context) {
	var pag commonDto.Pagination
	if err := c.ShouldBindQuery(&pag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
		return
	}

	resp, err := h.service.GetSolicitudes(c.Request.Context(), c.Query("estado"), pag)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VacacionesHandler) GetSolicitud(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	solicitudID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solicitud id"})
		return
	}

	esAdmin := response.GetUserRole(c) == model.RolAdmin
	resp, err := h.service.GetSolicitud(c.Request.Context(), solicitudID, usuarioID, esAdmin)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VacacionesHandler) RevisarSolicitud(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	solicitudID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid solicitud id"})
		return
	}

	var req dto.RevisarSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.RevisarSolicitud(c.Request.Context(), adminID, solicitudID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "solicitud revisada"})
}
