package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	"github.com/oksasatya/student-portal/internal/domain/repository"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

var studentColumns = []string{
	"u.id", "u.display_name", "u.username", "u.email", "u.password_hash",
	"u.phone_number", "u.stream_id", "u.joining_year", "u.passing_year",
	"u.status", "u.created_at", "u.updated_at",
	"COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}') AS roles",
}

func selectStudents() squirrel.SelectBuilder {
	return psql.Select(studentColumns...).
		From("users u").
		LeftJoin("user_roles ur ON ur.user_id = u.id").
		LeftJoin("roles r ON r.id = ur.role_id").
		GroupBy("u.id")
}

// Create inserts the account and its role memberships in one transaction.
// Unknown role names are ignored by the INSERT ... SELECT.
func (r *StudentRepository) Create(ctx context.Context, s *entity.Student) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create student: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := psql.Insert("users").
		Columns("display_name", "username", "email", "password_hash", "phone_number",
			"stream_id", "joining_year", "passing_year", "status").
		Values(s.Name, s.Username, s.Email, s.Password, s.PhoneNumber,
			s.StreamID, s.JoiningYear, s.PassingYear, s.Enabled).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert student: %w", err)
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	for _, role := range s.Roles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, s.ID, role); err != nil {
			return fmt.Errorf("assign role %q: %w", role, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create student: %w", err)
	}
	return nil
}

func (r *StudentRepository) Query(ctx context.Context, f repository.StudentFilter) ([]int64, error) {
	where, err := whereFor(f)
	if err != nil {
		return nil, err
	}
	sql, args, err := psql.Select("u.id").From("users u").Where(where).OrderBy("u.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student query: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan student ids: %w", err)
	}
	return ids, nil
}

func (r *StudentRepository) LoadMany(ctx context.Context, ids []int64) ([]*entity.Student, error) {
	if len(ids) == 0 {
		return []*entity.Student{}, nil
	}
	sql, args, err := selectStudents().Where(squirrel.Eq{"u.id": ids}).OrderBy("u.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load students: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Student, 0, len(ids))
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	return out, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*entity.Student, error) {
	sql, args, err := selectStudents().Where(squirrel.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get student: %w", err)
	}
	s, err := scanStudent(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrStudentNotFound
	}
	return s, err
}

func scanStudent(row pgx.Row) (*entity.Student, error) {
	var (
		s            entity.Student
		joining      *int32
		passing      *int32
		created, upd time.Time
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Username, &s.Email, &s.Password,
		&s.PhoneNumber, &s.StreamID, &joining, &passing,
		&s.Enabled, &created, &upd, &s.Roles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan student: %w", err)
	}
	s.JoiningYear = intPtr(joining)
	s.PassingYear = intPtr(passing)
	s.CreatedAt, s.UpdatedAt = created, upd
	return &s, nil
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

var _ repository.StudentRepository = (*StudentRepository)(nil)
