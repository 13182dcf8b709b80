package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/student-portal/config"
	"github.com/oksasatya/student-portal/internal/container"
	"github.com/oksasatya/student-portal/pkg/helpers"
)

func TestInitModulesRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	container.SetConfig(&config.Config{
		StreamVocabulary:    "stream",
		StreamFallbackPath:  "/",
		RegisterRateLimit:   5,
		DebugMetricsEnabled: true,
	})
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager("secret"))

	engine := gin.New()
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()

	var got []string
	for _, r := range engine.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	assert.ElementsMatch(t, []string{
		"GET /api/healthz",
		"GET /api/students",
		"GET /api/stream",
		"GET /api/register/streams",
		"POST /api/register",
		"GET /api/debug/vars",
		"GET /api/metrics",
	}, got)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stream", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
