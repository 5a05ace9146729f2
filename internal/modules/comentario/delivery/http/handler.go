package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/comentario/dto"
	comentario "github.com/andeshr/portalrh/internal/modules/comentario/service"
	"github.com/andeshr/portalrh/pkg/ratelimiter"
	"github.com/andeshr/portalrh/pkg/response"
	"github.com/andeshr/portalrh/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type ComentarioHandler struct {
	service     comentario.ComentarioService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewComentarioHandler(service comentario.ComentarioService, redisClient *redis.Client) *ComentarioHandler {
	return &ComentarioHandler{
		service:     service,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func esVisorAdmin(c *gin.Context) bool {
	return response.GetUserRole(c) == model.RolAdmin
}

func parseHiloParams(c *gin.Context) (string, uuid.UUID, error) {
	tipoHilo := c.Param("tipo")
	switch tipoHilo {
	case model.TipoHiloComunicado, model.TipoHiloVacaciones, model.TipoHiloIncapacidad, model.TipoHiloCertificacion:
	default:
		return "", uuid.Nil, fmt.Errorf("tipo de hilo inválido")
	}

	hiloID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("id de hilo inválido")
	}

	return tipoHilo, hiloID, nil
}

func (h *ComentarioHandler) Crear(c *gin.Context) {
	var req dto.CrearComentarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.Crear(c.Request.Context(), usuarioID, esVisorAdmin(c), req)
	if err != nil {
		if rateLimitErr, ok := err.(*ratelimiter.RateLimitError); ok {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ComentarioHandler) ObtenerHilo(c *gin.Context) {
	tipoHilo, hiloID, err := parseHiloParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marcarVisto := c.Query("marcar_visto") == "1" || c.Query("marcar_visto") == "true"

	resp, err := h.service.ObtenerHilo(c.Request.Context(), tipoHilo, hiloID, esVisorAdmin(c), marcarVisto)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ComentarioHandler) NoVistos(c *gin.Context) {
	tipoHilo, hiloID, err := parseHiloParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.service.ContarNoVistos(c.Request.Context(), tipoHilo, hiloID, esVisorAdmin(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// HandleWebSocket streams new-comment events of one thread. Payloads are
// invalidation signals; the client refetches the thread on each one.
func (h *ComentarioHandler) HandleWebSocket(c *gin.Context) {
	tipoHilo, hiloID, err := parseHiloParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.GetString("user_id") == "" {
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

	pubsub := h.redisClient.Subscribe(c.Request.Context(), comentario.CanalHilo(tipoHilo, hiloID))
	defer pubsub.Close()

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
