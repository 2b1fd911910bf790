package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/linkshort/internal/interface/http"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
)

// OpsModule exposes /healthz and, when Metrics is set, /metrics.
type OpsModule struct {
	Health      *handlers.HealthHandler
	Metrics     http.Handler
	PrivateOnly bool
}

func NewOpsModule(health *handlers.HealthHandler, metrics http.Handler, privateOnly bool) *OpsModule {
	return &OpsModule{Health: health, Metrics: metrics, PrivateOnly: privateOnly}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if m.Metrics == nil {
		return
	}
	chain := []gin.HandlerFunc{}
	if m.PrivateOnly {
		chain = append(chain, middleware.PrivateNetworkOnly())
	}
	chain = append(chain, gin.WrapH(m.Metrics))
	rg.GET("/metrics", chain...)
}
