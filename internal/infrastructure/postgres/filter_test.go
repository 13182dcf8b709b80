package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/student-portal/internal/domain/repository"
)

func TestWhereForBuildsOrderedConjunction(t *testing.T) {
	var f repository.StudentFilter
	f.Equal(repository.FieldEnabled, true)
	f.Contains(repository.FieldUsername, "ana")
	f.Equal(repository.FieldStream, int64(4))

	where, err := whereFor(f)
	require.NoError(t, err)

	sql, args, err := psql.Select("u.id").From("users u").Where(where).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT u.id FROM users u WHERE (u.status = $1 AND u.username ILIKE $2 AND u.stream_id = $3)", sql)
	assert.Equal(t, []interface{}{true, "%ana%", int64(4)}, args)
}

func TestWhereForEscapesLikeWildcards(t *testing.T) {
	var f repository.StudentFilter
	f.Contains(repository.FieldEmail, `50%_off\`)

	where, err := whereFor(f)
	require.NoError(t, err)

	_, args, err := where.ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestWhereForRejectsBadConditions(t *testing.T) {
	_, err := whereFor(repository.StudentFilter{Conditions: []repository.Condition{{Field: "password", Op: repository.OpEqual, Value: "x"}}})
	assert.Error(t, err)

	_, err = whereFor(repository.StudentFilter{Conditions: []repository.Condition{{Field: repository.FieldEmail, Op: repository.OpContains, Value: 3}}})
	assert.Error(t, err)

	_, err = whereFor(repository.StudentFilter{Conditions: []repository.Condition{{Field: repository.FieldEmail, Op: repository.Operator(9), Value: "x"}}})
	assert.Error(t, err)
}
