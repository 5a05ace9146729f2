package handler

import (
	"net/http"

	"github.com/andeshr/portalrh/internal/modules/usuario/dto"
	usuario "github.com/andeshr/portalrh/internal/modules/usuario/service"
	"github.com/andeshr/portalrh/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service usuario.AuthService
}

func NewAuthHandler(service usuario.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
