package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/audit"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/auth"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/middleware"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/session"
)

type AuthHandler struct {
	repo    laundry.Repository
	issuer  *auth.TokenIssuer
	revoker session.Revoker
	audit   *audit.Dispatcher

	// SecureCookie marks the session cookie HTTPS-only.
	SecureCookie bool
}

func NewAuthHandler(
	repo laundry.Repository,
	issuer *auth.TokenIssuer,
	revoker session.Revoker,
	audit *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		repo:    repo,
		issuer:  issuer,
		revoker: revoker,
		audit:   audit,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// LoginPage is where anonymous callers are redirected; it describes how to
// authenticate and echoes the page they asked for.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Autenticação necessária.",
		"login":   "/api/auth/login",
		"next":    c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Usuário e senha são obrigatórios.")
		return
	}

	user, err := h.repo.GetUserByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.Unauthorized(c, "invalid_credentials", "Usuário ou senha inválidos.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Usuário ou senha inválidos.")
		return
	}

	token, claims, err := h.issuer.Issue(user, time.Now())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.issuer.TTL().Seconds()), "/", "", h.SecureCookie, true)

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: audit.ActionLogin, Entity: "user", EntityID: &user.ID})

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": claims.ExpiresAt.Time,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.CurrentClaims(c); claims != nil && h.revoker != nil {
		if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.Remaining(time.Now())); err != nil {
			httperr.FromError(c, err)
			return
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookie, true)

	userID := actorID(c)
	h.audit.Dispatch(audit.Event{UserID: &userID, Action: audit.ActionLogout, Entity: "user", EntityID: &userID})

	httpresp.NoContent(c)
}
