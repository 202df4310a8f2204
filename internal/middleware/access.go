package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
)

const LoginPath = "/login"

// Require applies the access policy for capability. Anonymous callers are
// redirected to the login entry point; authenticated callers lacking the
// capability get 403.
func Require(capability laundry.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := laundry.Authorize(laundry.RoleOf(CurrentUser(c)), capability)
		if decision.Allowed {
			c.Next()
			return
		}

		if decision.Reason == laundry.DenyUnauthenticated {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}

		httperr.FromError(c, laundry.ErrForbidden)
		c.Abort()
	}
}
