package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	repo "github.com/oksasatya/student-portal/internal/domain/repository"
	"github.com/oksasatya/student-portal/internal/metrics"
	"github.com/oksasatya/student-portal/pkg/helpers"
	"github.com/oksasatya/student-portal/pkg/mailer"
	"github.com/oksasatya/student-portal/pkg/mailer/templates"
)

// PendingVerificationMessage is shown after a successful registration.
const PendingVerificationMessage = "Thank you! Please check your mail for further instructions. Your account will be verified shortly."

// NotificationSender delivers one templated notification.
type NotificationSender interface {
	Send(ctx context.Context, n mailer.Notification) error
}

// StudentIndexer mirrors newly created accounts into a search index.
type StudentIndexer interface {
	IndexStudent(ctx context.Context, s *entity.Student) error
}

type RegistrationConfig struct {
	AdminEmail string
	Langcode   string
	Vocabulary string
	Site       templates.Site
}

// Receipt acknowledges a registration.
type Receipt struct {
	StudentID int64
	Message   string
}

// RegistrationService creates disabled student accounts and notifies the
// registrant and the site administrator.
type RegistrationService struct {
	Students  repo.StudentRepository
	Streams   repo.StreamRepository
	Validator *RegistrationValidator
	Mail      NotificationSender
	Indexer   StudentIndexer // optional
	Hash      func(plain string) (string, error)
	Now       func() time.Time
	Config    RegistrationConfig
	Logger    logrus.FieldLogger
}

func NewRegistrationService(
	students repo.StudentRepository,
	streams repo.StreamRepository,
	mail NotificationSender,
	cfg RegistrationConfig,
	logger logrus.FieldLogger,
) *RegistrationService {
	return &RegistrationService{
		Students:  students,
		Streams:   streams,
		Validator: NewRegistrationValidator(streams, cfg.Vocabulary),
		Mail:      mail,
		Hash:      helpers.HashPassword,
		Now:       time.Now,
		Config:    cfg,
		Logger:    logger,
	}
}

// StreamOptions lists the choices offered by the registration form.
func (s *RegistrationService) StreamOptions(ctx context.Context) ([]entity.Stream, error) {
	streams, err := s.Streams.LoadTree(ctx, s.Config.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("load stream options: %w", err)
	}
	return streams, nil
}

// Submit validates and then registers. Validation failures come back as FieldErrors.
func (s *RegistrationService) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	fe, err := s.Validator.Validate(ctx, sub)
	if err != nil {
		return Receipt{}, err
	}
	if fe != nil {
		return Receipt{}, fe
	}
	return s.Register(ctx, sub)
}

// Register expects a validated submission. Once the account is stored the
// call succeeds; notification and indexing failures are logged only.
func (s *RegistrationService) Register(ctx context.Context, sub Submission) (Receipt, error) {
	hash, err := s.Hash(sub.Password)
	if err != nil {
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return Receipt{}, FieldErrors{"password": "must be at most 72 bytes long"}
		}
		return Receipt{}, fmt.Errorf("hash password: %w", err)
	}

	phone := sub.PhoneNumber
	stream := sub.Stream
	joining, passing := sub.JoiningYear, sub.PassingYear
	st := &entity.Student{
		Name:        sub.FullName,
		Username:    sub.FullName,
		Email:       sub.Email,
		Password:    hash,
		PhoneNumber: &phone,
		StreamID:    &stream,
		JoiningYear: &joining,
		PassingYear: &passing,
		Enabled:     false,
		Roles:       []string{entity.RoleStudent},
	}
	if err := s.Students.Create(ctx, st); err != nil {
		return Receipt{}, fmt.Errorf("create student: %w", err)
	}
	metrics.RecordRegistration()

	log := s.Logger.WithField("user_id", st.ID)
	log.Info("student registered, pending verification")

	userData := sub.UserData()
	opts := []templates.Option{templates.WithTime(s.Now()), templates.WithLanguage(s.Config.Langcode)}
	s.notify(ctx, log, mailer.Notification{
		TemplateKey: templates.RegistrationReceived,
		To:          sub.Email,
		Language:    s.Config.Langcode,
		Payload:     templates.NewRegistrationReceivedData(s.Config.Site, sub.Email, st.ID, userData, opts...),
	})
	s.notify(ctx, log, mailer.Notification{
		TemplateKey: templates.StudentRegistered,
		To:          s.Config.AdminEmail,
		Language:    s.Config.Langcode,
		Payload:     templates.NewStudentRegisteredData(s.Config.Site, s.Config.AdminEmail, userData, opts...),
	})

	if s.Indexer != nil {
		if err := s.Indexer.IndexStudent(ctx, st); err != nil {
			log.WithError(err).Warn("failed to index student")
		}
	}

	return Receipt{StudentID: st.ID, Message: PendingVerificationMessage}, nil
}

func (s *RegistrationService) notify(ctx context.Context, log logrus.FieldLogger, n mailer.Notification) {
	if err := s.Mail.Send(ctx, n); err != nil {
		metrics.RecordNotificationFailure(n.TemplateKey)
		log.WithError(err).WithFields(logrus.Fields{"template": n.TemplateKey, "to": n.To}).
			Error("failed to send registration notification")
	}
}
