package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	"github.com/oksasatya/student-portal/internal/domain/repository"
)

// StreamRepository reads terms from taxonomy_terms.
type StreamRepository struct {
	pool *pgxpool.Pool
}

func NewStreamRepository(pool *pgxpool.Pool) *StreamRepository {
	return &StreamRepository{pool: pool}
}

func (r *StreamRepository) LookupByName(ctx context.Context, vocabulary, name string) (int64, bool, error) {
	sql, args, err := psql.Select("id").From("taxonomy_terms").
		Where(squirrel.Eq{"vocabulary": vocabulary, "name": name}).
		OrderBy("id").Limit(1).ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build term lookup: %w", err)
	}
	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lookup term %q: %w", name, err)
	}
	return id, true, nil
}

func (r *StreamRepository) LoadTree(ctx context.Context, vocabulary string) ([]entity.Stream, error) {
	sql, args, err := psql.Select("id", "vocabulary", "name", "weight").From("taxonomy_terms").
		Where(squirrel.Eq{"vocabulary": vocabulary}).
		OrderBy("weight", "name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build term tree: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load term tree: %w", err)
	}
	streams, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.Stream])
	if err != nil {
		return nil, fmt.Errorf("scan term tree: %w", err)
	}
	return streams, nil
}

func (r *StreamRepository) GetByID(ctx context.Context, id int64) (*entity.Stream, error) {
	var s entity.Stream
	err := r.pool.QueryRow(ctx,
		`SELECT id, vocabulary, name, weight FROM taxonomy_terms WHERE id = $1`, id,
	).Scan(&s.ID, &s.Vocabulary, &s.Name, &s.Weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrStreamNotFound
		}
		return nil, fmt.Errorf("get term %d: %w", id, err)
	}
	return &s, nil
}

// PathAliasRepository reads path_aliases.
type PathAliasRepository struct {
	pool *pgxpool.Pool
}

func NewPathAliasRepository(pool *pgxpool.Pool) *PathAliasRepository {
	return &PathAliasRepository{pool: pool}
}

func (r *PathAliasRepository) AliasFor(ctx context.Context, path string) (string, error) {
	var alias string
	err := r.pool.QueryRow(ctx, `SELECT alias FROM path_aliases WHERE path = $1`, path).Scan(&alias)
	if errors.Is(err, pgx.ErrNoRows) {
		return path, nil
	}
	if err != nil {
		return "", fmt.Errorf("alias for %q: %w", path, err)
	}
	return alias, nil
}

var (
	_ repository.StreamRepository    = (*StreamRepository)(nil)
	_ repository.PathAliasRepository = (*PathAliasRepository)(nil)
)
