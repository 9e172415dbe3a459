package middleware

import (
	"backend/config"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(cfg *config.SystemConfigs) gin.HandlerFunc {
	origins := cfg.Config.FrontendUrls
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			CsrfHeader,
		},
		ExposeHeaders: []string{"Content-Length"},

		// Required so the browser sends the session cookie
		AllowCredentials: true,

		MaxAge: 12 * time.Hour,
	})
}
