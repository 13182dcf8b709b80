package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/internal/application"
	"github.com/oksasatya/student-portal/internal/domain/entity"
	"github.com/oksasatya/student-portal/pkg/response"
	"github.com/oksasatya/student-portal/pkg/validation"
)

type Registrar interface {
	Submit(ctx context.Context, sub application.Submission) (application.Receipt, error)
	StreamOptions(ctx context.Context) ([]entity.Stream, error)
}

type RegistrationHandler struct {
	Svc    Registrar
	Logger logrus.FieldLogger
}

func NewRegistrationHandler(svc Registrar, logger logrus.FieldLogger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

type streamOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type registrationResult struct {
	StudentID           int64 `json:"student_id"`
	PendingVerification bool  `json:"pending_verification"`
}

// Streams lists the stream choices of the registration form.
func (h *RegistrationHandler) Streams(c *gin.Context) {
	streams, err := h.Svc.StreamOptions(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("loading stream options failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load streams", nil)
		return
	}
	out := make([]streamOption, 0, len(streams))
	for _, s := range streams {
		out = append(out, streamOption{ID: s.ID, Name: s.Name})
	}
	response.Success(c, http.StatusOK, out, "streams retrieved", nil)
}

// Register accepts JSON or form-encoded submissions.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var sub application.Submission
	if err := c.ShouldBind(&sub); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	receipt, err := h.Svc.Submit(c.Request.Context(), sub)
	var fe application.FieldErrors
	switch {
	case errors.As(err, &fe):
		response.Error[any](c, http.StatusUnprocessableEntity, "validation failed", fe)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("registration failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, registrationResult{StudentID: receipt.StudentID, PendingVerification: true}, receipt.Message, nil)
}
