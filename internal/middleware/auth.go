package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-api/internal/handler"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/pkg/session"
)

const (
	// ContextUser is the gin context key holding the resolved *model.User.
	ContextUser = "current_user"
	// ContextSessionID holds the raw session id for logout.
	ContextSessionID = "session_id"
)

type AuthMiddleware struct {
	store      session.Store
	userRepo   repository.UserRepository
	cookieName string
}

func NewAuthMiddleware(store session.Store, userRepo repository.UserRepository, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{store: store, userRepo: userRepo, cookieName: cookieName}
}

// Resolve loads the session user into the context when a valid cookie
// is present. It never aborts; public procedures like auth.me read a
// possibly-absent user.
func (m *AuthMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.cookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		sess, err := m.store.Get(c.Request.Context(), id)
		if err != nil || sess == nil {
			c.Next()
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), sess.UserID)
		if err != nil || user == nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}

// RequireSession aborts with 401 unless Resolve found a user.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUser); !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the session user holds one of the
// given roles. Role checks always happen server-side; client gating is
// never trusted.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient role"))
		c.Abort()
	}
}

// CurrentUser returns the session user from the context, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
