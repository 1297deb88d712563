package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/modurim/homepick-api/internal/ai"
	"github.com/modurim/homepick-api/internal/audio"
	"github.com/modurim/homepick-api/internal/config"
	"github.com/modurim/homepick-api/internal/handlers"
	"github.com/modurim/homepick-api/internal/logger"
	"github.com/modurim/homepick-api/internal/middleware"
	"github.com/modurim/homepick-api/internal/recommend"
	"github.com/modurim/homepick-api/internal/repository"
	"github.com/modurim/homepick-api/internal/service"
	"github.com/modurim/homepick-api/internal/ws"
	"gorm.io/gorm"
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, database *gorm.DB) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Health route
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "homepick api"})
	})

	// Repositories
	userRepo := repository.NewUserRepository(database)
	applianceRepo := repository.NewApplianceRepository(database)
	historyRepo := repository.NewRoutineHistoryRepository(database)
	speakerRepo := repository.NewSpeakerRepository(database)

	// Appliance state feed setup
	hub := ws.NewHub()
	go hub.Run()
	feedHandler := ws.NewFeedHandler(hub, speakerRepo)

	// Analysis provider setup
	provider := ai.NewAnalysisClient(cfg.EnvVars.AnalysisAPIURL, time.Duration(cfg.EnvVars.AnalysisTimeoutSec)*time.Second)

	// Account routes setup
	userService := service.NewUserService(cfg, userRepo)
	userHandler := handlers.NewUserHandler(userService)

	// Recommendation negotiation routes setup
	slots := recommend.NewStore()
	recommendService := service.NewRecommendService(cfg, provider, slots, historyRepo, applianceRepo, hub)
	aiPickHandler := handlers.NewAiPickHandler(recommendService)

	// Appliance routes setup
	applianceService := service.NewApplianceService(cfg, applianceRepo, hub)
	applianceHandler := handlers.NewApplianceHandler(applianceService)

	// Routine history routes setup
	historyService := service.NewHistoryService(historyRepo, applianceRepo, hub)
	mypageHandler := handlers.NewMypageHandler(historyService)

	// Voice pipeline routes setup
	transcoder := audio.NewFFmpegTranscoder(cfg.EnvVars.FFmpegPath)
	voiceService := service.NewVoiceService(cfg, transcoder, provider, historyRepo, applianceRepo, hub)
	voiceHandler := handlers.NewVoiceHandler(voiceService)

	// The analysis-backed routes share one per-IP limiter so a single client
	// cannot saturate the model service.
	analysisLimiter := middleware.RateLimitByIP(5, 10*time.Minute, 30*time.Minute)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
	}

	aiPick := r.Group("/ai-pick")
	{
		aiPick.POST("/recommend", analysisLimiter, aiPickHandler.Recommend)
		aiPick.GET("/recommend", aiPickHandler.Current)
		aiPick.POST("/recommend/accept", aiPickHandler.Accept)
		aiPick.POST("/recommend/reject", aiPickHandler.Reject)
		aiPick.POST("/recommend/refresh", analysisLimiter, aiPickHandler.Refresh)
	}

	appliances := r.Group("/appliances")
	{
		appliances.GET("", applianceHandler.GetAll)
		appliances.GET("/:applianceId", applianceHandler.GetByID)
		appliances.PATCH("", applianceHandler.Update)
		appliances.PATCH("/:applianceId/power", applianceHandler.ControlPower)
		appliances.PUT("/:applianceId/image", applianceHandler.UploadImage)
	}

	mypage := r.Group("/mypage")
	{
		mypage.GET("/histories", mypageHandler.List)
		mypage.GET("/histories/:historyId", mypageHandler.GetByID)
		mypage.POST("/histories/:historyId/execute", mypageHandler.Execute)
		mypage.DELETE("/histories/:historyId", mypageHandler.Delete)
	}

	voice := r.Group("/voice")
	{
		voice.POST("/process", analysisLimiter, voiceHandler.ProcessVoice)
		voice.POST("/scenario/:name", analysisLimiter, voiceHandler.ProcessScenario)
	}

	// Appliance state feed
	r.GET("/ws/appliances", feedHandler.HandleFeed)

	return r
}
