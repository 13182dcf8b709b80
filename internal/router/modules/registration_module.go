package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/student-portal/internal/interface/http"
	"github.com/oksasatya/student-portal/internal/interface/middleware"
)

// RegistrationModule serves the public self registration form.
// GET /api/register/streams, POST /api/register
type RegistrationModule struct {
	Handler   *handlers.RegistrationHandler
	Redis     redis.Cmdable
	PerMinute int
}

func NewRegistrationModule(h *handlers.RegistrationHandler, rdb redis.Cmdable, perMinute int) *RegistrationModule {
	return &RegistrationModule{Handler: h, Redis: rdb, PerMinute: perMinute}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/register/streams", m.Handler.Streams)
	rg.POST("/register", submitLimiter, m.Handler.Register)
}
