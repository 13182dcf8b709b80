package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	repo "github.com/oksasatya/student-portal/internal/domain/repository"
	"github.com/oksasatya/student-portal/pkg/validation"
)

// MaxStudySpan is the largest accepted gap between joining and passing year.
const MaxStudySpan = 7

const (
	msgPhoneLength  = "Phone Number must be of 10 digits only."
	msgStudySpan    = "The passing year should be less than 7 years."
	msgIllegalValue = "An illegal choice has been detected."
)

// Submission is the raw registration form.
type Submission struct {
	FullName    string `json:"full_name" form:"full_name" validate:"required"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	Password    string `json:"password" form:"password" validate:"required"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required,phone10"`
	Stream      int64  `json:"stream" form:"stream" validate:"required"`
	JoiningYear int    `json:"joining_year" form:"joining_year" validate:"required,year"`
	PassingYear int    `json:"passing_year" form:"passing_year" validate:"required,year"`
}

// UserData is the submitted field set as carried by notifications. The
// password is deliberately left out so it never reaches the queue or a
// mailbox in clear text.
func (s Submission) UserData() map[string]string {
	return map[string]string{
		"full_name":    s.FullName,
		"email":        s.Email,
		"phone_number": s.PhoneNumber,
		"stream":       strconv.FormatInt(s.Stream, 10),
		"joining_year": strconv.Itoa(s.JoiningYear),
		"passing_year": strconv.Itoa(s.PassingYear),
	}
}

// FieldErrors maps a submission field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid registration: " + strings.Join(parts, "; ")
}

var registrationMessages = validation.Overrides{
	"phone_number.phone10":    msgPhoneLength,
	"passing_year.study_span": msgStudySpan,
}

// RegistrationValidator checks a submission and reports every failing field.
type RegistrationValidator struct {
	Streams    repo.StreamRepository
	Vocabulary string
	v          *validator.Validate
}

func NewRegistrationValidator(streams repo.StreamRepository, vocabulary string) *RegistrationValidator {
	v := validation.New()
	v.RegisterStructValidation(studySpan, Submission{})
	return &RegistrationValidator{Streams: streams, Vocabulary: vocabulary, v: v}
}

func studySpan(sl validator.StructLevel) {
	s := sl.Current().Interface().(Submission)
	if !inYearRange(s.JoiningYear) || !inYearRange(s.PassingYear) {
		return
	}
	if s.PassingYear-s.JoiningYear > MaxStudySpan {
		sl.ReportError(s.PassingYear, "passing_year", "PassingYear", "study_span", strconv.Itoa(MaxStudySpan))
	}
}

func inYearRange(y int) bool {
	return y >= validation.MinYear && y <= validation.MaxYear
}

// Validate returns nil FieldErrors when the submission is acceptable. The
// error return is reserved for store failures.
func (r *RegistrationValidator) Validate(ctx context.Context, s Submission) (FieldErrors, error) {
	errs := FieldErrors{}

	if err := r.v.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate submission: %w", err)
		}
		for field, msg := range validation.ToDetailsWith(verrs, registrationMessages) {
			errs[field] = msg
		}
	}

	if _, bad := errs["stream"]; !bad && s.Stream != 0 {
		ok, err := r.knownStream(ctx, s.Stream)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs["stream"] = msgIllegalValue
		}
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

func (r *RegistrationValidator) knownStream(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	st, err := r.Streams.GetByID(ctx, id)
	if errors.Is(err, repo.ErrStreamNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load stream %d: %w", id, err)
	}
	return r.Vocabulary == "" || st.Vocabulary == r.Vocabulary, nil
}
