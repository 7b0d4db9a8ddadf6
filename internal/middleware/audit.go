package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/observability"
	"go.uber.org/zap"
)

// Request-level audit actions
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditMiddleware logs every successful write request with its actor.
// Request bodies are never logged; they carry phones and OTP codes.
func AuditMiddleware() gin.HandlerFunc {
	logger := observability.Logger().Named("audit")

	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch && method != http.MethodDelete {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		path := c.Request.URL.Path
		logger.Info("write request",
			zap.String("action", mapHTTPMethodToAction(method)),
			zap.String("resource", extractResourceFromPath(path)),
			zap.String("resource_id", c.Param("id")),
			zap.String("actor_user_id", GetUserID(c)),
			zap.String("endpoint", path),
			zap.Int("status", status),
			zap.String("ip_address", c.ClientIP()),
			zap.String("request_id", c.GetString("RequestID")),
			zap.Any("query", observability.MaskSensitiveData(queryValues(c))),
		)
	}
}

// queryValues flattens the query string to its first value per key
func queryValues(c *gin.Context) map[string]interface{} {
	values := make(map[string]interface{})
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	return values
}

// mapHTTPMethodToAction maps HTTP methods to audit actions
func mapHTTPMethodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return AuditActionCreate
	case http.MethodDelete:
		return AuditActionDelete
	default:
		return AuditActionUpdate
	}
}

// extractResourceFromPath names the resource a request path targets
func extractResourceFromPath(path string) string {
	path = strings.Trim(path, "/")
	switch {
	case strings.HasPrefix(path, "auth/"):
		return "auth"
	case path == "reports/request-upload":
		return "upload"
	case strings.HasPrefix(path, "admin/reports"), strings.HasPrefix(path, "reports"):
		return "report"
	case path == "":
		return "unknown"
	}
	resource, _, _ := strings.Cut(path, "/")
	return resource
}
