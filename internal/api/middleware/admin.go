package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/services"
	"github.com/unedp/careers/internal/utils"
)

// RequireAdmin runs the authorization gate on every protected request. The
// session fast path keeps the common case free of directory traffic; misses
// fall through to the authoritative directory inside the service.
func RequireAdmin(admins services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)

		res, err := admins.Authorize(c.Request.Context(), sess)
		if err != nil {
			status := utils.HTTPStatus(err)
			var ae *utils.AppError
			if errors.As(err, &ae) {
				c.AbortWithStatusJSON(status, apiError{Code: ae.Code, Message: ae.Message})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}

		if res.RepairWarning != "" {
			// verified admin; surface the sync failure without blocking
			c.Header("X-Admin-Sync-Warning", res.RepairWarning)
		}
		c.Set("admin_status", res.Status)
		c.Next()
	}
}
