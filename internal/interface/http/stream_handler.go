package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/internal/application"
	"github.com/oksasatya/student-portal/pkg/response"
)

type StreamResolver interface {
	Resolve(ctx context.Context, userID int64) (application.Resolution, error)
}

type StreamHandler struct {
	Svc          StreamResolver
	FallbackPath string
	Logger       logrus.FieldLogger
}

func NewStreamHandler(svc StreamResolver, fallbackPath string, logger logrus.FieldLogger) *StreamHandler {
	if fallbackPath == "" {
		fallbackPath = "/"
	}
	return &StreamHandler{Svc: svc, FallbackPath: fallbackPath, Logger: logger}
}

// Redirect sends the signed-in student to their stream page, or to the
// fallback path when the stream cannot be resolved.
func (h *StreamHandler) Redirect(c *gin.Context) {
	res, err := h.Svc.Resolve(c.Request.Context(), c.GetInt64("userID"))
	if err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("stream resolution failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to resolve stream", nil)
		return
	}
	target := h.FallbackPath
	if res.Found() {
		target = res.Path
	}
	c.Redirect(http.StatusFound, target)
}
