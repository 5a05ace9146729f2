package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adjunto "github.com/andeshr/portalrh/internal/modules/adjunto/service"
)

type AdjuntoHandler struct {
	service adjunto.AdjuntoService
}

func NewAdjuntoHandler(service adjunto.AdjuntoService) *AdjuntoHandler {
	return &AdjuntoHandler{service: service}
}

func (h *AdjuntoHandler) SubirAdjunto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "el archivo es obligatorio"})
		return
	}

	// usuario_id is absent on the public application-form upload route.
	var usuarioID *uuid.UUID
	if idStr, exists := c.Get("user_id"); exists {
		id, err := uuid.Parse(idStr.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}
		usuarioID = &id
	}

	resp, err := h.service.SubirAdjunto(c.Request.Context(), usuarioID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}
