package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/internal/application"
	"github.com/oksasatya/student-portal/pkg/response"
)

type StudentLister interface {
	List(ctx context.Context, params map[string]string) ([]application.StudentView, error)
}

type StudentHandler struct {
	Svc    StudentLister
	Logger logrus.FieldLogger
}

func NewStudentHandler(svc StudentLister, logger logrus.FieldLogger) *StudentHandler {
	return &StudentHandler{Svc: svc, Logger: logger}
}

// List serves GET /students. Only the first value of a repeated parameter counts.
func (h *StudentHandler) List(c *gin.Context) {
	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	views, err := h.Svc.List(c.Request.Context(), params)
	if errors.Is(err, application.ErrInvalidFilter) {
		response.Error[any](c, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}
	if err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("student listing failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list students", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "students retrieved", gin.H{"count": len(views)})
}
