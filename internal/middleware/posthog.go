package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/simple_invoice_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the product events for routes the dashboard cares about.
// Other authenticated routes fall back to a name derived from the route path.
var routeEvents = map[string]string{
	"POST /api/v1/invoices":                         "invoice_created",
	"PATCH /api/v1/invoices/:invoiceID/status":      "invoice_status_updated",
	"POST /api/v1/invoices/:invoiceID/status/cycle": "invoice_status_cycled",
	"GET /api/v1/invoices/:invoiceID/pdf":           "invoice_pdf_downloaded",
	"GET /api/v1/invoices/stats":                    "dashboard_stats_viewed",
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful
// authenticated API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by the auth middleware; public routes are not tracked
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if invoiceID := c.Param("invoiceID"); invoiceID != "" {
			props["invoice_id"] = invoiceID
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName maps a route to its analytics event name. Unmatched routes
// (fullPath == "") yield an empty name.
func EventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	if name, ok := routeEvents[method+" "+fullPath]; ok {
		return name
	}
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, ":", "")
	return strings.ToLower(method) + "_" + name
}
