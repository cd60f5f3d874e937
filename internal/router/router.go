package router

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/internal/handlers"
	"github.com/lodestone-dev/lodestone/internal/middleware"
	"github.com/lodestone-dev/lodestone/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Org-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authLimiter := mustRateLimiter(envOr("SIGNUP_RATE", "3-M"))
	contactLimiter := mustRateLimiter(envOr("CONTACT_RATE", "10-M"))
	apiLimiter := mustRateLimiter(envOr("API_RATE", "100-M"))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authLimiter, handlers.Signup)
			auth.POST("/login", authLimiter, handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", handlers.Logout)
		}

		api.POST("/contact", contactLimiter, handlers.CreateContact)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			orgs := authed.Group("/orgs")
			{
				orgs.GET("", handlers.ListOrgs)
				orgs.POST("", handlers.CreateOrg)

				orgs.GET("/members", handlers.ListMembers)
				orgs.POST("/members/invite", handlers.InviteMember)
				orgs.PATCH("/members/:user_id/role", handlers.UpdateMemberRole)
				orgs.DELETE("/members/:user_id", handlers.RemoveMember)
			}

			session := authed.Group("/session")
			{
				session.GET("/org", handlers.GetSessionOrg)
				session.PATCH("/org", handlers.SwitchOrg)
			}

			authed.GET("/audit", handlers.ListAuditLog)

			users := authed.Group("/users")
			{
				users.GET("", apiLimiter, handlers.ListUsers)
				users.GET("/:id", handlers.GetUser)
				users.PATCH("/:id", handlers.UpdateUser)
				users.DELETE("/:id", handlers.DeleteUser)
			}

			authed.GET("/contact", handlers.ListContacts)
			authed.PUT("/contact", handlers.UpdateContact)
			authed.DELETE("/contact", handlers.DeleteContact)

			content := authed.Group("/content")
			{
				content.GET("", handlers.GetContent)
				content.POST("", handlers.CreateContent)
				content.PUT("", handlers.UpdateContent)
				content.DELETE("", handlers.DeleteContent)
			}

			media := authed.Group("/media")
			{
				media.GET("", handlers.ListMedia)
				media.POST("", handlers.UploadMedia)
				media.DELETE("", handlers.DeleteMedia)
			}

			admin := authed.Group("/admin")
			{
				admin.GET("", handlers.AdminDashboard)
				admin.POST("", handlers.CreateSystemLog)
			}
		}
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "public/uploads"
	}
	r.Static("/uploads", uploadDir)

	return r
}

func mustRateLimiter(rate string) gin.HandlerFunc {
	limiter, err := middleware.NewRateLimiter(rate)

	if err != nil {
		log.Fatalf("Invalid rate limit %q: %v", rate, err)
	}

	return limiter
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
