package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/student-portal/internal/domain/entity"
)

var ErrStreamNotFound = errors.New("stream not found")

// StreamRepository reads taxonomy terms.
type StreamRepository interface {
	// LookupByName returns the id of the term whose name equals name exactly.
	LookupByName(ctx context.Context, vocabulary, name string) (int64, bool, error)
	// LoadTree lists the vocabulary ordered by weight, then name.
	LoadTree(ctx context.Context, vocabulary string) ([]entity.Stream, error)
	GetByID(ctx context.Context, id int64) (*entity.Stream, error)
}

// PathAliasRepository maps canonical paths to their human-facing alias.
// AliasFor returns path unchanged when no alias is registered.
type PathAliasRepository interface {
	AliasFor(ctx context.Context, path string) (string, error)
}
