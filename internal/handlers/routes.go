package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/middleware"
)

// Routes bundles the handlers mounted by RegisterRoutes
type Routes struct {
	Auth    *AuthHandlers
	Reports *ReportHandlers
	Admin   *AdminHandlers
	Health  *HealthHandlers
	Tokens  middleware.TokenValidator
}

// RegisterRoutes mounts the API on router
func RegisterRoutes(router gin.IRouter, r Routes) {
	router.GET("/health", r.Health.HealthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/request-otp", r.Auth.RequestOtp)
		auth.POST("/verify-otp", r.Auth.VerifyOtp)
	}

	router.GET("/feed", r.Reports.ListFeed)
	router.GET("/reports/:id", r.Reports.GetReport)

	authenticated := router.Group("/", middleware.AuthMiddleware(r.Tokens))
	{
		authenticated.POST("/reports/request-upload", r.Reports.RequestUpload)
		authenticated.POST("/reports", r.Reports.CreateReport)
	}

	admin := router.Group("/admin", middleware.AuthMiddleware(r.Tokens), middleware.RequireAdmin())
	{
		admin.GET("/reports/review", r.Admin.ListForReview)
		admin.GET("/reports", r.Admin.ListReports)
		admin.GET("/reports/export.csv", r.Admin.ExportCSV)
		admin.POST("/reports/:id/approve", r.Admin.ApproveReport)
		admin.POST("/reports/:id/reject", r.Admin.RejectReport)
		admin.GET("/reports/:id/audit", r.Admin.AuditTrail)
	}
}
