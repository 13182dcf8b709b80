package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/oksasatya/student-portal/config"
	"github.com/oksasatya/student-portal/internal/application"
	"github.com/oksasatya/student-portal/internal/domain/entity"
	pginfra "github.com/oksasatya/student-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/student-portal/pkg/helpers"
)

var streams = []struct {
	Name  string
	Alias string
}{
	{"Science", "/streams/science"},
	{"Commerce", "/streams/commerce"},
	{"Arts", "/streams/arts"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	var scienceID int64
	for i, s := range streams {
		id, err := upsertStream(ctx, pool, cfg.StreamVocabulary, s.Name, i)
		if err != nil {
			logger.WithError(err).Fatalf("failed to seed stream %s", s.Name)
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO path_aliases (path, alias) VALUES ($1, $2)
			ON CONFLICT (path) DO UPDATE SET alias = EXCLUDED.alias
		`, application.TermPath(id), s.Alias); err != nil {
			logger.WithError(err).Fatalf("failed to seed alias for %s", s.Name)
		}
		if i == 0 {
			scienceID = id
		}
	}
	logger.Infof("seeded %d streams", len(streams))

	students := pginfra.NewStudentRepository(pool)
	demo, err := ensureUser(ctx, pool, students, &entity.Student{
		Name:        "Demo Student",
		Username:    "Demo Student",
		Email:       "student@example.test",
		PhoneNumber: ptr("9876543210"),
		StreamID:    &scienceID,
		JoiningYear: ptr(2022),
		PassingYear: ptr(2026),
		Enabled:     true,
		Roles:       []string{entity.RoleStudent},
	}, "password123")
	if err != nil {
		logger.WithError(err).Fatal("failed to seed demo student")
	}
	if _, err := ensureUser(ctx, pool, students, &entity.Student{
		Name:     "Site Administrator",
		Username: "admin",
		Email:    cfg.SiteMail,
		Enabled:  true,
		Roles:    []string{entity.RoleAdministrator},
	}, "password123"); err != nil {
		logger.WithError(err).Fatal("failed to seed administrator")
	}

	// A session plus token lets the stream redirect be tried locally.
	token, err := helpers.NewJWTManager(cfg.JWTAccessSecret).Sign(demo, []string{entity.RoleStudent}, 24*time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("failed to sign demo token")
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.StoreSession(ctx, rdb, demo, []string{entity.RoleStudent}, 24*time.Hour); err != nil {
		logger.WithError(err).Warn("redis unavailable; demo session not stored")
	}
	fmt.Printf("demo student id=%d email=student@example.test password=password123\n", demo)
	fmt.Printf("access token (24h): %s\n", token)
}

func upsertStream(ctx context.Context, pool *pgxpool.Pool, vocabulary, name string, weight int) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO taxonomy_terms (vocabulary, name, weight) VALUES ($1, $2, $3)
		ON CONFLICT (vocabulary, name) DO UPDATE SET weight = EXCLUDED.weight
		RETURNING id
	`, vocabulary, name, weight).Scan(&id)
	return id, err
}

// ensureUser creates the account unless one with the same email exists.
func ensureUser(ctx context.Context, pool *pgxpool.Pool, repo *pginfra.StudentRepository, s *entity.Student, password string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 ORDER BY id LIMIT 1`, s.Email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return 0, err
	}
	s.Password = hash
	if err := repo.Create(ctx, s); err != nil {
		return 0, err
	}
	return s.ID, nil
}

func ptr[T any](v T) *T { return &v }
