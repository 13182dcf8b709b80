package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	handlers "github.com/oksasatya/student-portal/internal/interface/http"
	"github.com/oksasatya/student-portal/internal/interface/middleware"
	"github.com/oksasatya/student-portal/pkg/helpers"
)

// StreamModule redirects signed-in students to their stream page.
// GET /api/stream
type StreamModule struct {
	Handler *handlers.StreamHandler
	JWT     *helpers.JWTManager
	Redis   redis.Cmdable
}

func NewStreamModule(h *handlers.StreamHandler, jwt *helpers.JWTManager, rdb redis.Cmdable) *StreamModule {
	return &StreamModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *StreamModule) Register(rg *gin.RouterGroup) {
	rg.GET("/stream",
		middleware.Auth(m.Redis, m.JWT),
		middleware.RequireRole(entity.RoleStudent),
		middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.Redirect,
	)
}
