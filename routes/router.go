package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gianghaison/gianghaison.me/config"
	"github.com/gianghaison/gianghaison.me/controllers"
	"github.com/gianghaison/gianghaison.me/media"
	"github.com/gianghaison/gianghaison.me/middleware"
	"github.com/gianghaison/gianghaison.me/utils"
)

// SetupRouter builds the full HTTP surface: public read endpoints, the
// auth flow, and the admin CRUD surface behind session auth plus rate
// limiting.
func SetupRouter(db *gorm.DB, pipeline *media.Pipeline) *gin.Engine {
	cfg := config.Get()
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(utils.AccessLog(), utils.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	posts := controllers.NewPostController(db)
	art := controllers.NewArtController(db)
	mediaCtl := controllers.NewMediaController(pipeline)
	settings := controllers.NewSettingsController(db)
	analytics := controllers.NewAnalyticsController(db)
	auth := controllers.NewAuthController()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/posts", posts.ListPosts)
		api.GET("/posts/tags", posts.ListTags)
		api.GET("/posts/:slug", posts.GetPostBySlug)

		api.GET("/art", art.ListArtworks)
		api.GET("/art/categories", art.ListCategories)
		api.GET("/art/:slug", art.GetArtworkBySlug)

		api.GET("/settings", settings.GetSettings)
		api.POST("/analytics/track", analytics.Track)

		api.POST("/auth/login", auth.Login)
		api.GET("/auth/github", auth.GitHubRedirect)
		api.GET("/auth/github/callback", auth.GitHubCallback)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RateLimit())
	{
		admin.GET("/auth/check", auth.Check)
		admin.POST("/auth/logout", auth.Logout)

		admin.GET("/posts", posts.ListAllPosts)
		admin.GET("/posts/:id", posts.GetPost)
		admin.POST("/posts", posts.CreatePost)
		admin.PUT("/posts/:id", posts.UpdatePost)
		admin.DELETE("/posts/:id", posts.DeletePost)

		admin.POST("/art", art.CreateArtwork)
		admin.PUT("/art/:id", art.UpdateArtwork)
		admin.DELETE("/art/:id", art.DeleteArtwork)

		admin.POST("/media", mediaCtl.Upload)
		admin.GET("/media", mediaCtl.List)
		admin.DELETE("/media", mediaCtl.Delete)

		admin.PUT("/settings", settings.UpdateSettings)
		admin.GET("/analytics", analytics.GetAnalytics)
	}

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
