package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swagmedia/swagmedia-golang/internal/handlers"
	"github.com/swagmedia/swagmedia-golang/internal/middleware"
)

// CORSMiddleware tells the browser the local frontend may talk to us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			// --- Media Access ---
			auth.GET("/media-list", h.GetMediaList)
			auth.POST("/media/:id/access", h.AccessMedia)
			auth.GET("/user/previews", h.GetMyPreviews)

			// --- Notifications ---
			auth.GET("/notifications", h.GetMyNotifications)
			auth.PATCH("/notifications/:id/read", h.MarkNotificationAsRead)
		}

		// --- Admin-Only Routes ---
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.GET("/applications", h.GetApplications)
			admin.POST("/applications/:id/approve", h.ApproveApplication)
			admin.POST("/applications/:id/reject", h.RejectApplication)

			admin.POST("/users/:id/warning", h.GiveWarning)
			admin.POST("/users/:id/emergency-state", h.SetEmergencyState)
			admin.POST("/users/:id/reset-previews", h.ResetPreviews)
			admin.POST("/users/:id/unblacklist", h.UnblacklistMember)

			admin.GET("/blacklist", h.GetBlacklist)
			admin.DELETE("/blacklist/ips/:address", h.UnblacklistAddress)
		}
	}

	return router
}
