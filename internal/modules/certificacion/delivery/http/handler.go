package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andeshr/portalrh/internal/modules/certificacion/dto"
	certificacion "github.com/andeshr/portalrh/internal/modules/certificacion/service"
	commonDto "github.com/andeshr/portalrh/pkg/dto"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
)

type CertificacionHandler struct {
	service certificacion.CertificacionService
}

func NewCertificacionHandler(service certificacion.CertificacionService) *CertificacionHandler {
	return &CertificacionHandler{service: service}
}

func (h *CertificacionHandler) CrearSolicitud(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CrearCertificacionRequest
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

func (h *CertificacionHandler) GetMisSolicitudes(c *gin.Context) {
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

func (h *CertificacionHandler) GetSolicitudes(c *gin.Context) {
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

func (h *CertificacionHandler) CompletarSolicitud(c *gin.Context) {
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

	var req dto.CompletarCertificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.CompletarSolicitud(c.Request.Context(), adminID, solicitudID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "certificación entregada"})
}
