package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/linkshort/internal/interface/http"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
)

// AuthModule wires account endpoints.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Handler.Register)
	auth.POST("/login", m.Handler.Login)

	protected := auth.Group("/")
	protected.Use(middleware.RequireIdentity())
	{
		protected.GET("/me", m.Handler.Me)
		protected.POST("/logout", m.Handler.Logout)
	}
}
