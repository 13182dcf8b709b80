package application

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	repo "github.com/oksasatya/student-portal/internal/domain/repository"
	"github.com/oksasatya/student-portal/pkg/mailer"
)

var errStoreDown = errors.New("store down")

type memStudents struct {
	mu        sync.Mutex
	rows      map[int64]*entity.Student
	nextID    int64
	createErr error
	queryErr  error
	filters   []repo.StudentFilter
}

func newMemStudents(students ...*entity.Student) *memStudents {
	m := &memStudents{rows: map[int64]*entity.Student{}, nextID: 100}
	for _, s := range students {
		m.rows[s.ID] = s
	}
	return m
}

func (m *memStudents) Create(_ context.Context, s *entity.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memStudents) Query(_ context.Context, f repo.StudentFilter) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = append(m.filters, f)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var ids []int64
	for id, s := range m.rows {
		if matchesAll(s, f) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *memStudents) LoadMany(_ context.Context, ids []int64) ([]*entity.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Student, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.rows[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStudents) GetByID(_ context.Context, id int64) (*entity.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	s, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrStudentNotFound
	}
	return s, nil
}

func matchesAll(s *entity.Student, f repo.StudentFilter) bool {
	for _, c := range f.Conditions {
		if !matches(s, c) {
			return false
		}
	}
	return true
}

func matches(s *entity.Student, c repo.Condition) bool {
	contains := func(have string) bool {
		return strings.Contains(strings.ToLower(have), strings.ToLower(c.Value.(string)))
	}
	switch c.Field {
	case repo.FieldEnabled:
		return s.Enabled == c.Value.(bool)
	case repo.FieldID:
		return s.ID == c.Value.(int64)
	case repo.FieldUsername:
		return contains(s.Username)
	case repo.FieldEmail:
		return contains(s.Email)
	case repo.FieldStream:
		return s.StreamID != nil && *s.StreamID == c.Value.(int64)
	case repo.FieldJoiningYear:
		return s.JoiningYear != nil && *s.JoiningYear == c.Value.(int)
	case repo.FieldPassingYear:
		return s.PassingYear != nil && *s.PassingYear == c.Value.(int)
	case repo.FieldPhoneNumber:
		return s.PhoneNumber != nil && *s.PhoneNumber == c.Value.(string)
	}
	return false
}

type memStreams struct {
	terms []entity.Stream
	err   error
	gets  int
}

func (m *memStreams) LookupByName(_ context.Context, vocabulary, name string) (int64, bool, error) {
	if m.err != nil {
		return 0, false, m.err
	}
	for _, t := range m.terms {
		if t.Vocabulary == vocabulary && t.Name == name {
			return t.ID, true, nil
		}
	}
	return 0, false, nil
}

func (m *memStreams) LoadTree(_ context.Context, vocabulary string) ([]entity.Stream, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.Stream
	for _, t := range m.terms {
		if t.Vocabulary == vocabulary {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStreams) GetByID(_ context.Context, id int64) (*entity.Stream, error) {
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.terms {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, repo.ErrStreamNotFound
}

type memAliases map[string]string

func (m memAliases) AliasFor(_ context.Context, path string) (string, error) {
	if a, ok := m[path]; ok {
		return a, nil
	}
	return path, nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Notification
	err  error
}

func (r *recordingSender) Send(_ context.Context, n mailer.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func defaultStreams() *memStreams {
	return &memStreams{terms: []entity.Stream{
		{ID: 1, Vocabulary: "stream", Name: "Science", Weight: 0},
		{ID: 2, Vocabulary: "stream", Name: "Commerce", Weight: 1},
		{ID: 9, Vocabulary: "tags", Name: "Misc"},
	}}
}

func testLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func ptr[T any](v T) *T { return &v }
