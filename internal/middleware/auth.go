package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/auth"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/models"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/session"
)

const (
	ContextUserID = "userID"
	ContextUser   = "user"
	ContextClaims = "tokenClaims"

	SessionCookie = "session"
)

type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware identifies the caller from a Bearer token or the session
// cookie. It never rejects: anonymous requests continue without a user and
// Require decides what they may reach.
func AuthMiddleware(
	issuer *auth.TokenIssuer,
	revoker session.Revoker,
	users UserLoader,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			c.Next()
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Printf("revocation check failed: %v", err)
				c.Next()
				return
			}
			if revoked {
				c.Next()
				return
			}
		}

		// o papel vem sempre do banco, nunca do token
		user, err := users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func CurrentClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
