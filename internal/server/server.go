package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/andeshr/portalrh/internal/config"
	"github.com/andeshr/portalrh/internal/middleware"
	"github.com/andeshr/portalrh/pkg/mailer"
	"github.com/andeshr/portalrh/pkg/storage"

	adminHttp "github.com/andeshr/portalrh/internal/modules/admin/delivery/http"
	adminService "github.com/andeshr/portalrh/internal/modules/admin/service"

	adjuntoHttp "github.com/andeshr/portalrh/internal/modules/adjunto/delivery/http"
	adjuntoRepo "github.com/andeshr/portalrh/internal/modules/adjunto/repository"
	adjuntoService "github.com/andeshr/portalrh/internal/modules/adjunto/service"

	busquedaService "github.com/andeshr/portalrh/internal/modules/busqueda/service"

	calendarioHttp "github.com/andeshr/portalrh/internal/modules/calendario/delivery/http"
	calendarioRepo "github.com/andeshr/portalrh/internal/modules/calendario/repository"
	calendarioService "github.com/andeshr/portalrh/internal/modules/calendario/service"

	certificacionHttp "github.com/andeshr/portalrh/internal/modules/certificacion/delivery/http"
	certificacionRepo "github.com/andeshr/portalrh/internal/modules/certificacion/repository"
	certificacionService "github.com/andeshr/portalrh/internal/modules/certificacion/service"

	comentarioHttp "github.com/andeshr/portalrh/internal/modules/comentario/delivery/http"
	comentarioRepo "github.com/andeshr/portalrh/internal/modules/comentario/repository"
	comentarioService "github.com/andeshr/portalrh/internal/modules/comentario/service"

	comunicadoHttp "github.com/andeshr/portalrh/internal/modules/comunicado/delivery/http"
	comunicadoRepo "github.com/andeshr/portalrh/internal/modules/comunicado/repository"
	comunicadoService "github.com/andeshr/portalrh/internal/modules/comunicado/service"

	incapacidadHttp "github.com/andeshr/portalrh/internal/modules/incapacidad/delivery/http"
	incapacidadRepo "github.com/andeshr/portalrh/internal/modules/incapacidad/repository"
	incapacidadService "github.com/andeshr/portalrh/internal/modules/incapacidad/service"

	notifHttp "github.com/andeshr/portalrh/internal/modules/notificacion/delivery/http"
	notifRepo "github.com/andeshr/portalrh/internal/modules/notificacion/repository"
	notifService "github.com/andeshr/portalrh/internal/modules/notificacion/service"

	perfilHttp "github.com/andeshr/portalrh/internal/modules/perfil/delivery/http"
	perfilService "github.com/andeshr/portalrh/internal/modules/perfil/service"

	postulacionHttp "github.com/andeshr/portalrh/internal/modules/postulacion/delivery/http"
	postulacionRepo "github.com/andeshr/portalrh/internal/modules/postulacion/repository"
	postulacionService "github.com/andeshr/portalrh/internal/modules/postulacion/service"

	puestoHttp "github.com/andeshr/portalrh/internal/modules/puesto/delivery/http"
	puestoRepo "github.com/andeshr/portalrh/internal/modules/puesto/repository"
	puestoService "github.com/andeshr/portalrh/internal/modules/puesto/service"

	usuarioHttp "github.com/andeshr/portalrh/internal/modules/usuario/delivery/http"
	usuarioRepo "github.com/andeshr/portalrh/internal/modules/usuario/repository"
	usuarioService "github.com/andeshr/portalrh/internal/modules/usuario/service"

	vacacionesHttp "github.com/andeshr/portalrh/internal/modules/vacaciones/delivery/http"
	vacacionesRepo "github.com/andeshr/portalrh/internal/modules/vacaciones/repository"
	vacacionesService "github.com/andeshr/portalrh/internal/modules/vacaciones/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	usuarioRepository := usuarioRepo.NewUsuarioRepository(db)

	fileStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryBaseFolder)
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	busquedaSvc := busquedaService.NewBusquedaService(meiliClient)

	sesMailer, err := mailer.NewSESMailer(context.Background(), cfg.AWSRegion, cfg.EmailSender)
	if err != nil {
		log.Fatalf("failed to initialize SES mailer: %v", err)
	}

	authSvc := usuarioService.NewAuthService(usuarioRepository)
	authHandler := usuarioHttp.NewAuthHandler(authSvc)

	adminSvc := adminService.NewAdminService(usuarioRepository)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	perfilSvc := perfilService.NewPerfilService(usuarioRepository, fileStorage)
	perfilHandler := perfilHttp.NewPerfilHandler(perfilSvc)

	puestoRepository := puestoRepo.NewPuestoRepository(db)
	puestoSvc := puestoService.NewPuestoService(puestoRepository)
	puestoHandler := puestoHttp.NewPuestoHandler(puestoSvc)

	adjuntoRepository := adjuntoRepo.NewAdjuntoRepository(db)
	adjuntoSvc := adjuntoService.NewAdjuntoService(adjuntoRepository, fileStorage)
	adjuntoHandler := adjuntoHttp.NewAdjuntoHandler(adjuntoSvc)

	// Notificaciones: in-app feed plus the bulk email dispatcher.
	notificacionRepository := notifRepo.NewNotificacionRepository(db)
	notificacionSvc := notifService.NewNotificacionService(notificacionRepository, redisClient)

	comentarioRepository := comentarioRepo.NewComentarioRepository(db)
	comentarioSvc := comentarioService.NewComentarioService(comentarioRepository, redisClient, notificacionSvc)
	comentarioHandler := comentarioHttp.NewComentarioHandler(comentarioSvc, redisClient)

	comunicadoRepository := comunicadoRepo.NewComunicadoRepository(db)

	dispatcher := notifService.NewDispatcher(sesMailer, notifService.DispatcherConfig{
		MaxIntentos:    3,
		BackoffBase:    time.Second,
		TimeoutMensaje: cfg.DispatchPerMessageTimeout,
		TimeoutGlobal:  cfg.DispatchGlobalTimeout,
	})
	envioSvc := notifService.NewEnvioService(dispatcher, usuarioRepository, comentarioRepository, comunicadoRepository)
	notificacionHandler := notifHttp.NewNotificacionHandler(notificacionSvc, envioSvc, redisClient)

	comunicadoSvc := comunicadoService.NewComunicadoService(comunicadoRepository, adjuntoRepository, usuarioRepository, notificacionSvc, envioSvc, busquedaSvc)
	comunicadoHandler := comunicadoHttp.NewComunicadoHandler(comunicadoSvc)

	calendarioRepository := calendarioRepo.NewCalendarioRepository(db)
	calendarioSvc := calendarioService.NewCalendarioService(calendarioRepository)
	calendarioHandler := calendarioHttp.NewCalendarioHandler(calendarioSvc)

	vacacionesRepository := vacacionesRepo.NewVacacionesRepository(db)
	vacacionesSvc := vacacionesService.NewVacacionesService(vacacionesRepository, calendarioSvc, notificacionSvc, envioSvc)
	vacacionesHandler := vacacionesHttp.NewVacacionesHandler(vacacionesSvc)

	incapacidadRepository := incapacidadRepo.NewIncapacidadRepository(db)
	incapacidadSvc := incapacidadService.NewIncapacidadService(incapacidadRepository, adjuntoRepository, notificacionSvc, envioSvc)
	incapacidadHandler := incapacidadHttp.NewIncapacidadHandler(incapacidadSvc)

	certificacionRepository := certificacionRepo.NewCertificacionRepository(db)
	certificacionSvc := certificacionService.NewCertificacionService(certificacionRepository, notificacionSvc, envioSvc)
	certificacionHandler := certificacionHttp.NewCertificacionHandler(certificacionSvc)

	vacanteRepository := postulacionRepo.NewVacanteRepository(db)
	postulacionRepository := postulacionRepo.NewPostulacionRepository(db)
	postulacionSvc := postulacionService.NewPostulacionService(vacanteRepository, postulacionRepository, adjuntoRepository, busquedaSvc)
	postulacionHandler := postulacionHttp.NewPostulacionHandler(postulacionSvc)

	// Orphan upload cleanup, every 12 hours.
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("🧹 Running orphan adjunto cleanup...")
			if err := adjuntoSvc.LimpiarHuerfanos(context.Background()); err != nil {
				log.Printf("❌ Error cleaning up orphan adjuntos: %v", err)
			} else {
				log.Println("✅ Orphan adjunto cleanup completed.")
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(usuarioRepository)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Job board is public: candidates apply without an account.
	api.GET("/vacantes", postulacionHandler.GetVacantes)
	api.GET("/vacantes/slug/:slug", postulacionHandler.GetVacanteBySlug)
	api.POST("/vacantes/:id/postulaciones", postulacionHandler.Postularse)
	api.POST("/postulaciones/upload", adjuntoHandler.SubirAdjunto)

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth(), authMiddleware.ResolveRole())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/usuarios", adminHandler.CrearUsuario)
			adminGroup.GET("/usuarios", adminHandler.GetUsuarios)
			adminGroup.PUT("/usuarios/:id", adminHandler.ActualizarUsuario)
			adminGroup.DELETE("/usuarios/:id", adminHandler.EliminarUsuario)

			adminGroup.POST("/puestos", puestoHandler.CrearPuesto)
			adminGroup.DELETE("/puestos/:id", puestoHandler.EliminarPuesto)

			adminGroup.POST("/comunicados", comunicadoHandler.CrearComunicado)
			adminGroup.PUT("/comunicados/:id", comunicadoHandler.ActualizarComunicado)
			adminGroup.POST("/comunicados/:id/publicar", comunicadoHandler.PublicarComunicado)
			adminGroup.DELETE("/comunicados/:id", comunicadoHandler.EliminarComunicado)

			adminGroup.GET("/vacaciones", vacacionesHandler.GetSolicitudes)
			adminGroup.PUT("/vacaciones/:id/revision", vacacionesHandler.RevisarSolicitud)

			adminGroup.GET("/incapacidades", incapacidadHandler.GetIncapacidades)
			adminGroup.PUT("/incapacidades/:id/revision", incapacidadHandler.RevisarIncapacidad)

			adminGroup.GET("/certificaciones", certificacionHandler.GetSolicitudes)
			adminGroup.PUT("/certificaciones/:id/entrega", certificacionHandler.CompletarSolicitud)

			adminGroup.POST("/vacantes", postulacionHandler.CrearVacante)
			adminGroup.PUT("/vacantes/:id", postulacionHandler.ActualizarVacante)
			adminGroup.GET("/vacantes/:id/postulaciones", postulacionHandler.GetPostulaciones)

			adminGroup.POST("/calendario/deshabilitar", calendarioHandler.Deshabilitar)
			adminGroup.POST("/calendario/habilitar", calendarioHandler.Habilitar)

			adminGroup.POST("/notificar/comunicado", notificacionHandler.NotificarComunicado)
			adminGroup.POST("/notificar/solicitud", notificacionHandler.NotificarSolicitud)
		}

		protected.GET("/puestos", puestoHandler.GetPuestos)

		// Comunicados
		protected.GET("/comunicados", comunicadoHandler.GetComunicados)
		protected.GET("/comunicados/slug/:slug", comunicadoHandler.GetComunicadoBySlug)

		// Solicitudes del colaborador
		protected.POST("/vacaciones", vacacionesHandler.CrearSolicitud)
		protected.GET("/vacaciones/me", vacacionesHandler.GetMisSolicitudes)
		protected.GET("/vacaciones/:id", vacacionesHandler.GetSolicitud)

		protected.POST("/incapacidades", incapacidadHandler.CrearIncapacidad)
		protected.GET("/incapacidades/me", incapacidadHandler.GetMisIncapacidades)
		protected.GET("/incapacidades/:id", incapacidadHandler.GetIncapacidad)

		protected.POST("/certificaciones", certificacionHandler.CrearSolicitud)
		protected.GET("/certificaciones/me", certificacionHandler.GetMisSolicitudes)

		// Calendario de disponibilidad
		protected.GET("/calendario", calendarioHandler.Listar)

		// Hilos de comentarios
		protected.POST("/comentarios", comentarioHandler.Crear)
		protected.GET("/hilos/:tipo/:id", comentarioHandler.ObtenerHilo)
		protected.GET("/hilos/:tipo/:id/no-vistos", comentarioHandler.NoVistos)
		protected.GET("/hilos/:tipo/:id/ws", comentarioHandler.HandleWebSocket)

		// Perfil
		protected.GET("/perfil/me", perfilHandler.GetMiPerfil)
		protected.PUT("/perfil", perfilHandler.ActualizarPerfil)
		protected.PUT("/perfil/password", perfilHandler.CambiarPassword)
		protected.POST("/perfil/avatar", perfilHandler.SubirAvatar)

		// Notificaciones
		protected.GET("/notificaciones", notificacionHandler.GetNotificaciones)
		protected.GET("/notificaciones/unread-count", notificacionHandler.UnreadCount)
		protected.PUT("/notificaciones/:id/read", notificacionHandler.MarkAsRead)
		protected.PUT("/notificaciones/read-all", notificacionHandler.MarkAllAsRead)
		protected.GET("/notificaciones/ws", notificacionHandler.HandleWebSocket)

		protected.POST("/upload", adjuntoHandler.SubirAdjunto)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
