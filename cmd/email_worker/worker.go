package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/student-portal/pkg/helpers"
	"github.com/oksasatya/student-portal/pkg/mailer"
	mailtpl "github.com/oksasatya/student-portal/pkg/mailer/templates"
)

type deliverer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// errPermanent marks jobs that will never succeed and must not be requeued.
var errPermanent = errors.New("permanent failure")

// process renders and sends one queued job.
func process(ctx context.Context, body []byte, d deliverer, defaultLang string) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: bad message: %v", errPermanent, err)
	}
	helpers.PrepareJob(&job, defaultLang)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", errPermanent, job.Template, err)
		}
		subject, text, html = s, t, h
	}
	if subject == "" {
		return fmt.Errorf("%w: job for %s has no subject", errPermanent, job.To)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return d.Send(c, job.To, subject, text, html)
}
