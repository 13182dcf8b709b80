package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/student-portal/internal/interface/middleware"
)

// DebugModule exposes expvar and Prometheus metrics.
// GET /api/debug/vars, GET /api/metrics
type DebugModule struct {
	Redis    redis.Cmdable
	Gatherer prometheus.Gatherer
}

func NewDebugModule(rdb redis.Cmdable, g prometheus.Gatherer) *DebugModule {
	return &DebugModule{Redis: rdb, Gatherer: g}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
}
