package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/api/handlers"
	"github.com/unedp/careers/internal/api/middleware"
	"github.com/unedp/careers/internal/services"
)

type Deps struct {
	Admins services.AdminService

	Applications *handlers.ApplicationHandler
	Uploads      *handlers.UploadHandler
	Jobs         *handlers.JobHandler
	Auth         *handlers.AuthHandler
	Newsletter   *handlers.NewsletterHandler
	Events       *handlers.EventHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public site API
	r.GET("/api/jobs", d.Jobs.ListPublic)
	r.GET("/api/jobs/:slug", d.Jobs.GetBySlug)
	r.POST("/api/applications", d.Applications.Submit)
	r.POST("/api/uploads/resume", d.Uploads.IssueToken)
	r.POST("/api/uploads/resume/file", d.Uploads.Upload)
	r.POST("/api/newsletter", d.Newsletter.Subscribe)

	// Back-office account actions
	r.POST("/setup/register", d.Auth.Register)
	r.POST("/setup/login", d.Auth.Login)

	// Authenticated but not yet gated: the sync action must be reachable
	// from a session the gate currently rejects
	authed := r.Group("/setup/api")
	authed.Use(middleware.JWTAuth())
	authed.POST("/verify", d.Auth.Verify)
	authed.GET("/me", d.Auth.Me)

	// Protected admin routes (JWT + authorization gate)
	admin := r.Group("/setup/api")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin(d.Admins))

	admin.GET("/jobs", d.Jobs.ListAdmin)
	admin.POST("/jobs", d.Jobs.Create)
	admin.GET("/jobs/:id", d.Jobs.Get)
	admin.PUT("/jobs/:id", d.Jobs.Update)
	admin.DELETE("/jobs/:id", d.Jobs.Delete)

	admin.GET("/applications", d.Applications.List)
	admin.GET("/applications/:id", d.Applications.Get)
	admin.PUT("/applications/:id/status", d.Applications.UpdateStatus)

	admin.GET("/events", d.Events.ListRecent)
}
