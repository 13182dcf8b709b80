package postgres

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/oksasatya/student-portal/internal/domain/repository"
)

var filterColumns = map[repository.FilterField]string{
	repository.FieldID:          "u.id",
	repository.FieldUsername:    "u.username",
	repository.FieldEmail:       "u.email",
	repository.FieldStream:      "u.stream_id",
	repository.FieldJoiningYear: "u.joining_year",
	repository.FieldPassingYear: "u.passing_year",
	repository.FieldPhoneNumber: "u.phone_number",
	repository.FieldEnabled:     "u.status",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereFor translates a filter into a conjunction of squirrel predicates.
// Contains values are escaped so they match literally.
func whereFor(f repository.StudentFilter) (squirrel.And, error) {
	where := make(squirrel.And, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		col, ok := filterColumns[c.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported filter field %q", c.Field)
		}
		switch c.Op {
		case repository.OpEqual:
			where = append(where, squirrel.Eq{col: c.Value})
		case repository.OpContains:
			s, ok := c.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains on %q needs a string, got %T", c.Field, c.Value)
			}
			where = append(where, squirrel.ILike{col: "%" + likeEscaper.Replace(s) + "%"})
		default:
			return nil, fmt.Errorf("unsupported operator %s on %q", c.Op, c.Field)
		}
	}
	return where, nil
}
