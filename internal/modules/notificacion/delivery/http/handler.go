package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/andeshr/portalrh/internal/modules/notificacion/dto"
	notifService "github.com/andeshr/portalrh/internal/modules/notificacion/service"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type NotificacionHandler struct {
	service     notifService.NotificacionService
	envio       notifService.EnvioService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewNotificacionHandler(service notifService.NotificacionService, envio notifService.EnvioService, redisClient *redis.Client) *NotificacionHandler {
	return &NotificacionHandler{
		service:     service,
		envio:       envio,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is handled at the router level
			},
		},
	}
}

// REST Endpoints

func (h *NotificacionHandler) GetNotificaciones(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit := 20
	if v, convErr := strconv.Atoi(c.Query("limit")); convErr == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, convErr := strconv.Atoi(c.Query("offset")); convErr == nil && v > 0 {
		offset = v
	}

	notificaciones, err := h.service.GetNotificaciones(usuarioID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notificaciones})
}

func (h *NotificacionHandler) MarkAsRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	if err := h.service.MarkAsRead(id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

func (h *NotificacionHandler) MarkAllAsRead(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.MarkAllAsRead(usuarioID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificacionHandler) UnreadCount(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	count, err := h.service.UnreadCount(usuarioID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Bulk dispatch entry points

func (h *NotificacionHandler) NotificarComunicado(c *gin.Context) {
	var req dto.NotificarComunicadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	comunicadoID, err := uuid.Parse(req.ComunicadoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comunicadoId inválido"})
		return
	}

	resumen, err := h.envio.NotificarComunicadoPorID(c.Request.Context(), comunicadoID, req.Titulo, req.Contenido)
	h.responderEnvio(c, resumen, err)
}

func (h *NotificacionHandler) NotificarSolicitud(c *gin.Context) {
	var req dto.NotificarSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	solicitudID, err := uuid.Parse(req.SolicitudID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitudId inválido"})
		return
	}

	resumen, err := h.envio.NotificarSolicitud(c.Request.Context(), req.Tipo, solicitudID,
		"Su solicitud tiene una actualización. Ingrese al portal para revisarla.")
	h.responderEnvio(c, resumen, err)
}

// responderEnvio maps a dispatch outcome: 200 with metrics even when every
// individual send failed; 408 with partial metrics when the global deadline
// fired; 500 only when recipient resolution failed before dispatch began.
func (h *NotificacionHandler) responderEnvio(c *gin.Context, resumen *dto.ResumenEnvio, err error) {
	if err != nil {
		if errors.Is(err, apperror.ErrDispatchTimeout) {
			c.JSON(http.StatusRequestTimeout, resumen)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resumen)
}

// WebSocket Endpoint

func (h *NotificacionHandler) HandleWebSocket(c *gin.Context) {
	usuarioID := c.GetString("user_id")
	if usuarioID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if h.redisClient == nil {
		log.Println("Redis client is nil, cannot subscribe")
		return
	}

	pubsub := h.redisClient.Subscribe(c.Request.Context(), notifService.CanalUsuario(usuarioID))
	defer pubsub.Close()

	// Wait for confirmation that subscription is created
	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("Failed to subscribe to redis channel: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			// Payload is already the notification JSON; forward as-is.
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("Failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
