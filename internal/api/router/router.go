package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/config"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/api/handler"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/api/middleware"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/jwt"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1MB

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── FAQ chatbot (public, plain response shape, rate limited) ──
	r.POST("/api/chat", middleware.RateLimit(rdb, 20, time.Minute), h.Chat.Chat)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// everything below requires a valid access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// service requests
			requests := authorized.Group("/requests")
			{
				requests.POST("", middleware.RoleAuth(model.RoleGuardian), h.Request.Create)
				requests.GET("", middleware.RoleAuth(model.RoleGuardian), h.Request.ListMine)
				requests.GET("/open", middleware.RoleAuth(model.RoleVolunteer), h.Request.ListOpen)
				requests.GET("/:id", h.Request.Get)
				requests.POST("/:id/cancel", middleware.RoleAuth(model.RoleGuardian), h.Request.Cancel)
			}

			// assignments
			assignments := authorized.Group("/assignments")
			{
				assignments.POST("/accept", middleware.RoleAuth(model.RoleVolunteer), h.Assignment.Accept)
				assignments.GET("", h.Assignment.ListMine)
				assignments.GET("/:id", h.Assignment.Get)
				assignments.POST("/:id/complete", middleware.RoleAuth(model.RoleVolunteer), h.Assignment.Complete)
				assignments.POST("/:id/confirm", middleware.RoleAuth(model.RoleGuardian), h.Assignment.Confirm)
			}

			// volunteers
			volunteers := authorized.Group("/volunteers")
			{
				volunteers.GET("", middleware.RoleAuth(model.RoleAdmin), h.Volunteer.List)
				volunteers.GET("/:id/performance", h.Volunteer.Performance)
				volunteers.PUT("/:id/status", middleware.RoleAuth(model.RoleAdmin), h.Volunteer.UpdateStatus)
			}

			// volunteer availability
			availability := authorized.Group("/availability")
			availability.Use(middleware.RoleAuth(model.RoleVolunteer))
			{
				availability.POST("", h.Availability.Create)
				availability.GET("", h.Availability.List)
				availability.DELETE("/:id", h.Availability.Delete)
				availability.POST("/import", h.Availability.ImportICS)
			}

			// admin export
			export := authorized.Group("/export")
			{
				export.GET("/assignments", middleware.RoleAuth(model.RoleAdmin), h.Export.ExportAssignments)
			}
		}
	}

	return r
}
