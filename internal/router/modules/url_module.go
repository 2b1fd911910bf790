package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/linkshort/internal/interface/http"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
)

// URLModule wires link management endpoints. All of them need an identity.
type URLModule struct {
	Handler *handlers.URLHandler
}

func NewURLModule(h *handlers.URLHandler) *URLModule {
	return &URLModule{Handler: h}
}

func (m *URLModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireIdentity())
	{
		auth.POST("/create", m.Handler.Create)
		auth.GET("/user/urls", m.Handler.List)
		auth.GET("/user/urls/search", m.Handler.Search)
		auth.POST("/user/urls/export", m.Handler.Export)
	}
}

// RedirectModule serves GET /:alias. It must be mounted on the root group.
type RedirectModule struct {
	Handler *handlers.URLHandler
}

func NewRedirectModule(h *handlers.URLHandler) *RedirectModule {
	return &RedirectModule{Handler: h}
}

func (m *RedirectModule) Register(rg *gin.RouterGroup) {
	rg.GET("/:alias", m.Handler.Redirect)
	rg.HEAD("/:alias", m.Handler.Redirect)
}
