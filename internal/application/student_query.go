package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	repo "github.com/oksasatya/student-portal/internal/domain/repository"
	"github.com/oksasatya/student-portal/internal/metrics"
)

// ErrInvalidFilter is returned when a numeric listing parameter is not an integer.
var ErrInvalidFilter = errors.New("invalid filter value")

// noSuchStream is used as the stream condition when the requested stream name
// does not exist, so the listing matches nothing instead of ignoring the filter.
const noSuchStream int64 = -1

// StudentView is the public projection of a student in listings.
type StudentView struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	StudentStream *string `json:"student_stream"`
	JoiningYear   *int    `json:"joining_year"`
	PassingYear   *int    `json:"passing_year"`
	PhoneNumber   *string `json:"phone_number"`
}

// listingParams is the order in which request parameters become conditions.
var listingParams = []string{
	"id", "name", "username", "email",
	"student_stream", "joining_year", "passing_year", "phone_number",
}

// StudentQueryBuilder turns raw listing parameters into a store query and
// projects the enabled students it returns.
type StudentQueryBuilder struct {
	Students   repo.StudentRepository
	Streams    repo.StreamRepository
	Vocabulary string
	Logger     logrus.FieldLogger
}

func NewStudentQueryBuilder(students repo.StudentRepository, streams repo.StreamRepository, vocabulary string, logger logrus.FieldLogger) *StudentQueryBuilder {
	return &StudentQueryBuilder{Students: students, Streams: streams, Vocabulary: vocabulary, Logger: logger}
}

// BuildFilter always restricts to enabled accounts. Empty values and
// unrecognized keys are skipped.
func (b *StudentQueryBuilder) BuildFilter(ctx context.Context, params map[string]string) (repo.StudentFilter, error) {
	var f repo.StudentFilter
	f.Equal(repo.FieldEnabled, true)

	for _, key := range listingParams {
		value, ok := params[key]
		if !ok || value == "" {
			continue
		}
		switch key {
		case "id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return repo.StudentFilter{}, fmt.Errorf("%w: id must be an integer", ErrInvalidFilter)
			}
			f.Equal(repo.FieldID, id)
		case "name", "username":
			f.Contains(repo.FieldUsername, value)
		case "email":
			f.Contains(repo.FieldEmail, value)
		case "student_stream":
			id, found, err := b.Streams.LookupByName(ctx, b.Vocabulary, value)
			if err != nil {
				return repo.StudentFilter{}, fmt.Errorf("lookup stream %q: %w", value, err)
			}
			if !found {
				b.Logger.WithField("stream", value).Debug("unknown stream in listing filter")
				id = noSuchStream
			}
			f.Equal(repo.FieldStream, id)
		case "joining_year", "passing_year":
			year, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return repo.StudentFilter{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidFilter, key)
			}
			f.Equal(repo.FilterField(key), int(year))
		case "phone_number":
			f.Equal(repo.FieldPhoneNumber, value)
		}
	}
	return f, nil
}

// List runs the filter and returns the matching accounts that hold the
// student role. Order follows the store.
func (b *StudentQueryBuilder) List(ctx context.Context, params map[string]string) ([]StudentView, error) {
	f, err := b.BuildFilter(ctx, params)
	if err != nil {
		return nil, err
	}

	ids, err := b.Students.Query(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	out := make([]StudentView, 0, len(ids))
	if len(ids) == 0 {
		metrics.RecordListing(0)
		return out, nil
	}

	records, err := b.Students.LoadMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}

	labels := map[int64]*string{}
	for _, s := range records {
		if !s.Enabled || !s.HasRole(entity.RoleStudent) {
			continue
		}
		label, err := b.streamLabel(ctx, s.StreamID, labels)
		if err != nil {
			return nil, err
		}
		out = append(out, StudentView{
			ID:            s.ID,
			Name:          s.Name,
			Username:      s.Username,
			Email:         s.Email,
			StudentStream: label,
			JoiningYear:   s.JoiningYear,
			PassingYear:   s.PassingYear,
			PhoneNumber:   s.PhoneNumber,
		})
	}
	metrics.RecordListing(len(out))
	return out, nil
}

// streamLabel memoizes stream names for the duration of one listing.
func (b *StudentQueryBuilder) streamLabel(ctx context.Context, id *int64, seen map[int64]*string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	if label, ok := seen[*id]; ok {
		return label, nil
	}
	st, err := b.Streams.GetByID(ctx, *id)
	switch {
	case errors.Is(err, repo.ErrStreamNotFound):
		seen[*id] = nil
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load stream %d: %w", *id, err)
	}
	name := st.Name
	seen[*id] = &name
	return &name, nil
}
