package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/student-portal/internal/domain/entity"
)

var ErrStudentNotFound = errors.New("student not found")

// StudentRepository defines the account store operations used by the portal.
// Role membership is resolved by LoadMany/GetByID, not by Query.
type StudentRepository interface {
	Create(ctx context.Context, s *entity.Student) error
	Query(ctx context.Context, f StudentFilter) ([]int64, error)
	LoadMany(ctx context.Context, ids []int64) ([]*entity.Student, error)
	GetByID(ctx context.Context, id int64) (*entity.Student, error)
}
