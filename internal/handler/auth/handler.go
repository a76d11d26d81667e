package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/user"
	"github.com/clinicore/clinic-api/pkg/idtoken"
	"github.com/clinicore/clinic-api/pkg/session"
)

type Config struct {
	CookieName     string
	CookieSecure   bool
	SessionTTL     int // seconds
	IdentitySecret string
}

type Handler struct {
	users *user.Service
	store session.Store
	cfg   Config
}

func NewHandler(users *user.Service, store session.Store, cfg Config) *Handler {
	return &Handler{users: users, store: store, cfg: cfg}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/session", h.CreateSession)
		auth.GET("/me", h.Me)
		auth.POST("/logout", h.Logout)
	}
}

type createSessionRequest struct {
	Token string `json:"token" binding:"required"`
}

// CreateSession exchanges a signed identity-provider token for a
// session cookie, upserting the user row on the way.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	claims, err := idtoken.Verify(req.Token, h.cfg.IdentitySecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid identity token"))
		return
	}

	u, err := h.users.SignIn(c.Request.Context(), &model.UpsertUser{
		OpenID:      claims.OpenID,
		Name:        claims.Name,
		Email:       claims.Email,
		Phone:       claims.Phone,
		LoginMethod: claims.LoginMethod,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := &session.Session{
		UserID: u.ID,
		OpenID: u.OpenID,
		Role:   string(u.Role),
	}
	ttl := time.Duration(h.cfg.SessionTTL) * time.Second
	if err := h.store.Create(c.Request.Context(), sess, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create session"))
		return
	}

	c.SetCookie(h.cfg.CookieName, sess.ID, h.cfg.SessionTTL, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(u))
}

// Me returns the session user, or null when unauthenticated. Public by
// contract so clients can probe their sign-in state.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(middleware.CurrentUser(c)))
}

// Logout clears the cookie and acknowledges success regardless of prior
// session state, so repeated calls are harmless.
func (h *Handler) Logout(c *gin.Context) {
	if id := c.GetString(middleware.ContextSessionID); id != "" {
		if err := h.store.Delete(c.Request.Context(), id); err != nil {
			log.Warn().Err(err).Msg("failed to delete session on logout")
		}
	}

	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"success": true}))
}
