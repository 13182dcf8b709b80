package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/student-portal/internal/domain/entity"
)

// StudentIndexer writes student documents to Elasticsearch so the admin
// side can search pending registrations.
type StudentIndexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewStudentIndexer(es *elasticsearch.Client, index string) *StudentIndexer {
	return &StudentIndexer{ES: es, Index: index}
}

type studentDoc struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	PhoneNumber *string  `json:"phone_number"`
	StreamID    *int64   `json:"stream_id"`
	JoiningYear *int     `json:"joining_year"`
	PassingYear *int     `json:"passing_year"`
	Enabled     bool     `json:"enabled"`
	Roles       []string `json:"roles"`
	CreatedAt   string   `json:"created_at"`
}

func (x *StudentIndexer) IndexStudent(ctx context.Context, s *entity.Student) error {
	if x.ES == nil || x.Index == "" {
		return nil
	}
	b, err := json.Marshal(studentDoc{
		ID:          s.ID,
		Name:        s.Name,
		Username:    s.Username,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		StreamID:    s.StreamID,
		JoiningYear: s.JoiningYear,
		PassingYear: s.PassingYear,
		Enabled:     s.Enabled,
		Roles:       s.Roles,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.Index,
		DocumentID: strconv.FormatInt(s.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("index student %d: %w", s.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index student %d: %s", s.ID, res.Status())
	}
	return nil
}
