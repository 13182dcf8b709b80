package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/student-portal/internal/interface/http"
	"github.com/oksasatya/student-portal/internal/interface/middleware"
)

// StudentModule serves the public directory listing.
// GET /api/students
type StudentModule struct {
	Handler *handlers.StudentHandler
	Redis   redis.Cmdable
}

func NewStudentModule(h *handlers.StudentHandler, rdb redis.Cmdable) *StudentModule {
	return &StudentModule{Handler: h, Redis: rdb}
}

func (m *StudentModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/students", rl, m.Handler.List)
}
