package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Notification is one templated message addressed to a single recipient.
type Notification struct {
	TemplateKey string
	To          string
	Language    string
	Payload     map[string]any
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender hands notifications to the email worker through the queue.
type QueueSender struct {
	Pub Publisher
}

func NewQueueSender(pub Publisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (s *QueueSender) Send(ctx context.Context, n Notification) error {
	if s.Pub == nil {
		return errors.New("mailer: no publisher configured")
	}
	if n.To == "" {
		return errors.New("mailer: empty recipient")
	}
	return s.Pub.PublishJSON(ctx, EmailJob{
		To:       n.To,
		Template: n.TemplateKey,
		Language: n.Language,
		Data:     n.Payload,
	})
}

// LogSender only records notifications. Used when MAIL_SEND_ENABLED=false.
type LogSender struct {
	Logger logrus.FieldLogger
}

func (s LogSender) Send(_ context.Context, n Notification) error {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"template": n.TemplateKey,
			"to":       n.To,
			"langcode": n.Language,
		}).Info("mail sending disabled; notification dropped")
	}
	return nil
}
