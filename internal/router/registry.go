package router

import "github.com/gin-gonic/gin"

// Registry collects global middleware and feature modules, then mounts them in one pass.
// API modules live under /api; root modules (redirects, health, metrics) under /.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	rootModules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine}
}

// Use adds middleware that runs in front of every module, root modules included.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) AddRoot(mod Module) {
	r.rootModules = append(r.rootModules, mod)
}

// RegisterAll must run once, after every Use/Add call. Groups copy the engine's handler
// chain when created, so /api is built only after the middleware is installed.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.Engine.Use(r.middlewares...)
	}
	r.API = r.Engine.Group("/api")
	for _, m := range r.modules {
		m.Register(r.API)
	}
	for _, m := range r.rootModules {
		m.Register(&r.Engine.RouterGroup)
	}
}
