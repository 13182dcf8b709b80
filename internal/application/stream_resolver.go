package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/student-portal/internal/domain/repository"
	"github.com/oksasatya/student-portal/internal/metrics"
)

// Outcome names how a stream redirect was resolved.
type Outcome string

const (
	OutcomeFound       Outcome = "found"
	OutcomeUserMissing Outcome = "user_missing"
	OutcomeStreamUnset Outcome = "stream_unset"
	OutcomeTermMissing Outcome = "term_missing"
)

// Resolution is the result of StreamResolver.Resolve. Path is empty unless
// Outcome is OutcomeFound.
type Resolution struct {
	Path     string
	Outcome  Outcome
	StreamID int64
}

func (r Resolution) Found() bool { return r.Outcome == OutcomeFound }

// TermPath is the canonical path of a taxonomy term page.
func TermPath(termID int64) string {
	return "/taxonomy/term/" + strconv.FormatInt(termID, 10)
}

// StreamResolver finds the page of the stream a user is enrolled in.
type StreamResolver struct {
	Students repo.StudentRepository
	Streams  repo.StreamRepository
	Aliases  repo.PathAliasRepository
	Logger   logrus.FieldLogger
}

func NewStreamResolver(students repo.StudentRepository, streams repo.StreamRepository, aliases repo.PathAliasRepository, logger logrus.FieldLogger) *StreamResolver {
	return &StreamResolver{Students: students, Streams: streams, Aliases: aliases, Logger: logger}
}

// Resolve never reports a missing user, stream value or term as an error;
// those come back as outcomes. Only store failures are returned.
func (r *StreamResolver) Resolve(ctx context.Context, userID int64) (Resolution, error) {
	log := r.Logger.WithField("user_id", userID)

	s, err := r.Students.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrStudentNotFound) {
		log.Warn("user entity could not be loaded")
		return r.done(Resolution{Outcome: OutcomeUserMissing}), nil
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("load user %d: %w", userID, err)
	}

	if s.StreamID == nil || *s.StreamID <= 0 {
		log.Warn("user does not have a valid stream term ID set")
		return r.done(Resolution{Outcome: OutcomeStreamUnset}), nil
	}
	termID := *s.StreamID

	term, err := r.Streams.GetByID(ctx, termID)
	if errors.Is(err, repo.ErrStreamNotFound) {
		log.WithField("term_id", termID).Warn("stream term not found")
		return r.done(Resolution{Outcome: OutcomeTermMissing, StreamID: termID}), nil
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("load stream %d: %w", termID, err)
	}

	path, err := r.Aliases.AliasFor(ctx, TermPath(term.ID))
	if err != nil {
		return Resolution{}, fmt.Errorf("alias stream %d: %w", term.ID, err)
	}
	log.WithFields(logrus.Fields{"term_id": term.ID, "stream": term.Name, "url": path}).
		Info("redirecting user to stream URL")
	return r.done(Resolution{Path: path, Outcome: OutcomeFound, StreamID: term.ID}), nil
}

func (r *StreamResolver) done(res Resolution) Resolution {
	metrics.RecordStreamRedirect(string(res.Outcome))
	return res
}
