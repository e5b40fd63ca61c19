package server

import (
	"strings"

	"anoa.com/tccscheduler/internal/config"
	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/middleware"

	eventHttp "anoa.com/tccscheduler/internal/modules/event/delivery/http"
	eventRepo "anoa.com/tccscheduler/internal/modules/event/repository"
	eventService "anoa.com/tccscheduler/internal/modules/event/service"

	localHttp "anoa.com/tccscheduler/internal/modules/local/delivery/http"
	localRepo "anoa.com/tccscheduler/internal/modules/local/repository"
	localService "anoa.com/tccscheduler/internal/modules/local/service"

	presentationHttp "anoa.com/tccscheduler/internal/modules/presentation/delivery/http"
	presentationRepo "anoa.com/tccscheduler/internal/modules/presentation/repository"
	presentationService "anoa.com/tccscheduler/internal/modules/presentation/service"

	userHttp "anoa.com/tccscheduler/internal/modules/user/delivery/http"
	userRepo "anoa.com/tccscheduler/internal/modules/user/repository"
	userService "anoa.com/tccscheduler/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(db *gorm.DB, cfg *config.Config) *Server {
	users := userRepo.NewUserRepository(db)
	locals := localRepo.NewLocalRepository(db)
	presentations := presentationRepo.NewPresentationRepository(db)
	events := eventRepo.NewEventRepository(db)

	userSvc := userService.NewUserService(users)
	userHandler := userHttp.NewUserHandler(userSvc)

	authSvc := userService.NewAuthService(users, userSvc, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	localSvc := localService.NewLocalService(locals)
	localHandler := localHttp.NewLocalHandler(localSvc)

	presentationSvc := presentationService.NewPresentationService(presentations, users)
	presentationHandler := presentationHttp.NewPresentationHandler(presentationSvc)

	eventSvc := eventService.NewEventService(events, locals, presentations)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	authMiddleware := middleware.NewAuthMiddleware(users, cfg.JWTSecret)

	router := gin.Default()
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	secretariat := authMiddleware.RequireRoles(entity.RoleSecretariat)
	schedulers := authMiddleware.RequireRoles(entity.RoleAdvisor, entity.RoleSecretariat)

	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/auth/me", authHandler.Me)

		usersGroup := api.Group("/users")
		usersGroup.Use(secretariat)
		{
			usersGroup.POST("", userHandler.CreateUser)
			usersGroup.GET("", userHandler.GetAllUsers)
			usersGroup.GET("/:id", userHandler.GetUser)
			usersGroup.PATCH("/:id", userHandler.UpdateUser)
			usersGroup.DELETE("/:id", userHandler.DeleteUser)
		}

		localsGroup := api.Group("/locals")
		{
			localsGroup.GET("", localHandler.GetAllLocals)
			localsGroup.GET("/active", localHandler.GetActiveLocals)
			localsGroup.GET("/:id", localHandler.GetLocal)
			localsGroup.POST("", secretariat, localHandler.CreateLocal)
			localsGroup.PATCH("/:id", secretariat, localHandler.UpdateLocal)
			localsGroup.DELETE("/:id", secretariat, localHandler.DeleteLocal)
		}

		presentationsGroup := api.Group("/presentations")
		{
			presentationsGroup.GET("", presentationHandler.GetAllPresentations)
			presentationsGroup.GET("/my-orientations", authMiddleware.RequireRoles(entity.RoleAdvisor), presentationHandler.GetMyOrientations)
			presentationsGroup.GET("/my-presentations", authMiddleware.RequireRoles(entity.RoleStudent), presentationHandler.GetMyPresentations)
			presentationsGroup.GET("/:id", presentationHandler.GetPresentation)
			presentationsGroup.POST("", schedulers, presentationHandler.CreatePresentation)
			presentationsGroup.PATCH("/:id", schedulers, presentationHandler.UpdatePresentation)
			presentationsGroup.DELETE("/:id", secretariat, presentationHandler.DeletePresentation)
		}

		eventsGroup := api.Group("/events")
		{
			eventsGroup.GET("", eventHandler.GetAllEvents)
			eventsGroup.GET("/meetings", eventHandler.GetMeetings)
			eventsGroup.GET("/presentations", eventHandler.GetPresentationSessions)
			eventsGroup.GET("/range", eventHandler.GetEventsInRange)
			eventsGroup.GET("/upcoming", eventHandler.GetUpcomingEvents)
			eventsGroup.GET("/my-events", eventHandler.GetMyEvents)
			eventsGroup.GET("/:id", eventHandler.GetEvent)
			eventsGroup.POST("", schedulers, eventHandler.CreateEvent)
			eventsGroup.PATCH("/:id", schedulers, eventHandler.UpdateEvent)
			eventsGroup.DELETE("/:id", secretariat, eventHandler.DeleteEvent)
		}
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(port string) error {
	return s.engine.Run(":" + port)
}

// Engine exposes the underlying router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
