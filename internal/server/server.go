package server

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/config"
	"github.com/atulpawar07/sp-cricket-hub/internal/jobs"
	"github.com/atulpawar07/sp-cricket-hub/internal/middleware"
	"github.com/atulpawar07/sp-cricket-hub/internal/ratelimit"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/storage"

	adminHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/admin/delivery/http"
	adminService "github.com/atulpawar07/sp-cricket-hub/internal/modules/admin/service"

	authHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/delivery/http"
	authRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/repository"
	authService "github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/service"

	dashboardHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/dashboard/delivery/http"
	dashboardService "github.com/atulpawar07/sp-cricket-hub/internal/modules/dashboard/service"

	eventHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/delivery/http"
	eventRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/repository"
	eventService "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/service"

	feedHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/feed/delivery/http"
	feedService "github.com/atulpawar07/sp-cricket-hub/internal/modules/feed/service"

	photoHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/delivery/http"
	photoRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/repository"
	photoService "github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/service"

	playerHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/delivery/http"
	playerRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/repository"
	playerService "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/service"

	playerStatHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/delivery/http"
	playerStatRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/repository"
	playerStatService "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/service"

	profileHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/delivery/http"
	profileRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/repository"
	profileService "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/service"

	roleRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/role/repository"
	roleService "github.com/atulpawar07/sp-cricket-hub/internal/modules/role/service"

	searchHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/delivery/http"
	searchService "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"

	statHttp "github.com/atulpawar07/sp-cricket-hub/internal/modules/stat/delivery/http"
	statService "github.com/atulpawar07/sp-cricket-hub/internal/modules/stat/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	roles       roleService.RoleService
	scheduler   *jobs.Scheduler
}

// NewServer wires every module. redisClient and meiliClient may be nil; the
// deny-list, sign-in throttle and feed then run in process and search is off.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStorage storage.ImageStorage, meiliClient meilisearch.ServiceManager) *Server {
	roleSvc := roleService.NewRoleService(roleRepo.NewRoleRepository(db))

	denylist := session.NewMemoryDenylist()
	limiter := ratelimit.NewMemory()
	if redisClient != nil {
		denylist = session.NewDenylist(redisClient)
		limiter = ratelimit.New(redisClient)
	}
	sessions := session.NewManager(cfg.JWTSecret, cfg.JWTTTL, roleSvc, denylist)

	searchSvc := searchService.NewMeiliSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	feedSvc := feedService.NewFeedService(redisClient)
	feedHandler := feedHttp.NewFeedHandler(feedSvc, cfg.AllowedOrigins)

	accountRepo := authRepo.NewAccountRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	photoRepository := photoRepo.NewPhotoRepository(db)
	playerRepository := playerRepo.NewPlayerRepository(db)
	playerStatRepository := playerStatRepo.NewPlayerStatRepository(db)

	authSvc := authService.NewAuthService(accountRepo, profileRepository, roleSvc, sessions, limiter, authService.Options{
		SignInWindow:       cfg.SignInRateLimit,
		AdminEmail:         cfg.AdminEmail,
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GoogleRedirectURL:  cfg.GoogleRedirectURL,
	})
	authHandler := authHttp.NewAuthHandler(authSvc, cfg.FrontendURL, cfg.IsProduction())

	profileSvc := profileService.NewProfileService(profileRepository, imageStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	eventSvc := eventService.NewEventService(eventRepository, profileRepository, imageStorage, searchSvc, feedSvc)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	photoSvc := photoService.NewPhotoService(photoRepository, imageStorage, searchSvc, feedSvc)
	photoHandler := photoHttp.NewPhotoHandler(photoSvc)

	playerSvc := playerService.NewPlayerService(playerRepository, playerStatRepository, searchSvc)
	playerHandler := playerHttp.NewPlayerHandler(playerSvc)

	playerStatSvc := playerStatService.NewPlayerStatService(playerStatRepository, playerRepository)
	playerStatHandler := playerStatHttp.NewPlayerStatHandler(playerStatSvc)

	dashboardSvc := dashboardService.NewDashboardService(eventSvc, photoSvc, playerSvc)
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	adminSvc := adminService.NewAdminService(accountRepo, profileRepository, roleSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	statSvc := statService.NewStatService(profileRepository, playerRepository, eventRepository, photoRepository)
	statHandler := statHttp.NewStatHandler(statSvc)

	// Background jobs
	scheduler := jobs.NewScheduler()
	if meiliClient != nil {
		reindex := jobs.NewSearchReindex(eventRepository, playerRepository, photoRepository, searchSvc)
		if err := scheduler.Register(cfg.SearchReindexSchedule, reindex); err != nil {
			log.Printf("Failed to schedule search reindex: %v", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/feed/ws"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(sessions)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/sign-up", authHandler.SignUp)
		auth.POST("/sign-in", authHandler.SignIn)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/sign-out", authHandler.SignOut)
		protected.GET("/auth/session", authHandler.Session)

		protected.GET("/dashboard", dashboardHandler.GetDashboard)
		protected.GET("/stats/summary", statHandler.GetSummary)
		protected.GET("/search", searchHandler.Search)
		protected.GET("/feed/ws", feedHandler.HandleWebSocket)

		protected.GET("/events", eventHandler.ListEvents)
		protected.GET("/events/:id", eventHandler.GetEvent)

		protected.GET("/photos", photoHandler.ListPhotos)
		protected.GET("/photos/:id", photoHandler.GetPhoto)

		protected.GET("/players", playerHandler.ListPlayers)
		protected.GET("/players/:id", playerHandler.GetPlayer)
		protected.GET("/players/:id/stats", playerHandler.GetPlayerStats)

		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.GET("/profiles/:id", profileHandler.GetProfileByID)

		// Admin routes
		admin := protected.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/events", eventHandler.CreateEvent)
			admin.PUT("/events/:id", eventHandler.UpdateEvent)
			admin.DELETE("/events/:id", eventHandler.DeleteEvent)
			admin.POST("/events/:id/image", eventHandler.UploadEventImage)

			admin.POST("/photos", photoHandler.CreatePhoto)
			admin.PUT("/photos/:id", photoHandler.UpdatePhoto)
			admin.DELETE("/photos/:id", photoHandler.DeletePhoto)

			admin.POST("/players", playerHandler.CreatePlayer)
			admin.PUT("/players/:id", playerHandler.UpdatePlayer)
			admin.DELETE("/players/:id", playerHandler.DeletePlayer)

			admin.POST("/player-stats", playerStatHandler.CreateStat)
			admin.POST("/player-stats/import", playerStatHandler.ImportCSV)
			admin.PUT("/player-stats/:id", playerStatHandler.UpdateStat)
			admin.DELETE("/player-stats/:id", playerStatHandler.DeleteStat)

			admin.GET("/admin/members", adminHandler.ListMembers)
			admin.PUT("/admin/members/:id/role", adminHandler.UpdateMemberRole)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		roles:       roleSvc,
		scheduler:   scheduler,
	}
}

// Roles exposes the role gate for startup tasks such as admin promotion.
func (s *Server) Roles() roleService.RoleService {
	return s.roles
}

// Run starts the background jobs and serves HTTP until the listener fails.
func (s *Server) Run(addr string) error {
	s.scheduler.Start()
	defer s.scheduler.Stop()

	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
