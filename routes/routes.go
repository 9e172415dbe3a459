package routes

import (
	"net/http"

	"backend/client"
	"backend/config"
	"backend/controller"
	"backend/middleware"
	"backend/repository"
	"backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
)

const sessionCookieName = "sessionid"

func SetupRouter(db *mongo.Database, cfg *config.SystemConfigs) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ZerologMiddleware())
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.CORS(cfg))

	store := cookie.NewStore([]byte(cfg.Config.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.Config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	// --- 1. Clients ---
	worldBankClient := client.NewWorldBankClient(cfg.Config.WorldBankUrl)

	// --- 2. Repositories ---
	userRepo := repository.NewUserRepository(db)

	// --- 3. Services (Dependency Injection) ---
	userSvc := service.NewUserService(userRepo)
	indicatorSvc := service.NewIndicatorService(worldBankClient)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- 4. Routes & Controllers ---
	api := r.Group("")
	api.Use(middleware.VerifyCSRF())
	{
		// Health Check
		controller.NewHealthController().RegisterRoutes(api)

		// Auth Endpoints
		controller.NewAuthController(userSvc).RegisterRoutes(api)

		// Indicator Endpoints (session required)
		protected := api.Group("")
		protected.Use(middleware.RequireLogin())
		controller.NewIndicatorController(indicatorSvc).RegisterRoutes(protected)
	}

	return r
}
