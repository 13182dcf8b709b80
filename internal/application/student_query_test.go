package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/student-portal/internal/domain/entity"
	repo "github.com/oksasatya/student-portal/internal/domain/repository"
)

func student(id int64, username string, stream int64, enabled bool, roles ...string) *entity.Student {
	s := &entity.Student{
		ID:          id,
		Name:        username,
		Username:    username,
		Email:       username + "@example.test",
		Enabled:     enabled,
		Roles:       roles,
		JoiningYear: ptr(2020),
		PassingYear: ptr(2024),
		PhoneNumber: ptr("98765432" + string(rune('0'+id%10)) + "0"),
	}
	if stream > 0 {
		s.StreamID = ptr(stream)
	}
	return s
}

func directory() (*StudentQueryBuilder, *memStudents, *memStreams) {
	students := newMemStudents(
		student(1, "Ana", 1, true, entity.RoleStudent),
		student(2, "Banana", 2, true, entity.RoleStudent),
		student(3, "Diana", 1, false, entity.RoleStudent),
		student(4, "Anabel", 1, true, entity.RoleAdministrator),
		student(5, "Carl", 0, true, entity.RoleStudent),
		student(6, "Hanna", 404, true, entity.RoleStudent),
	)
	streams := defaultStreams()
	logger, _ := testLogger()
	return NewStudentQueryBuilder(students, streams, "stream", logger), students, streams
}

func ids(views []StudentView) []int64 {
	out := make([]int64, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestListWithoutParamsReturnsEnabledStudents(t *testing.T) {
	b, _, _ := directory()

	got, err := b.List(context.Background(), map[string]string{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 5, 6}, ids(got))
}

func TestListNameIsCaseInsensitiveSubstring(t *testing.T) {
	b, _, _ := directory()

	got, err := b.List(context.Background(), map[string]string{"name": "ANA"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids(got))
}

func TestListNameAndUsernameBothApply(t *testing.T) {
	b, _, _ := directory()

	got, err := b.List(context.Background(), map[string]string{"name": "ana", "username": "ban"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(got))
}

func TestListUnknownStreamMatchesNothing(t *testing.T) {
	b, store, _ := directory()

	got, err := b.List(context.Background(), map[string]string{"student_stream": "Nonexistent Stream Name"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	c, ok := store.filters[0].Lookup(repo.FieldStream)
	require.True(t, ok)
	assert.Equal(t, noSuchStream, c.Value)
}

func TestListByStreamName(t *testing.T) {
	b, _, _ := directory()

	got, err := b.List(context.Background(), map[string]string{"student_stream": "Science"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	require.NotNil(t, got[0].StudentStream)
	assert.Equal(t, "Science", *got[0].StudentStream)
}

func TestListSkipsEmptyAndUnknownParams(t *testing.T) {
	b, store, _ := directory()

	_, err := b.List(context.Background(), map[string]string{"email": "", "color": "blue", "id": ""})
	require.NoError(t, err)
	require.Len(t, store.filters, 1)
	assert.Equal(t, []repo.Condition{{Field: repo.FieldEnabled, Op: repo.OpEqual, Value: true}}, store.filters[0].Conditions)
}

func TestBuildFilterIsOrderedAndTyped(t *testing.T) {
	b, _, _ := directory()

	f, err := b.BuildFilter(context.Background(), map[string]string{
		"phone_number": "9876543210",
		"passing_year": "2024",
		"joining_year": "2020",
		"email":        "example",
		"id":           "5",
	})
	require.NoError(t, err)
	assert.Equal(t, []repo.Condition{
		{Field: repo.FieldEnabled, Op: repo.OpEqual, Value: true},
		{Field: repo.FieldID, Op: repo.OpEqual, Value: int64(5)},
		{Field: repo.FieldEmail, Op: repo.OpContains, Value: "example"},
		{Field: repo.FieldJoiningYear, Op: repo.OpEqual, Value: 2020},
		{Field: repo.FieldPassingYear, Op: repo.OpEqual, Value: 2024},
		{Field: repo.FieldPhoneNumber, Op: repo.OpEqual, Value: "9876543210"},
	}, f.Conditions)
}

func TestBuildFilterRejectsMalformedNumbers(t *testing.T) {
	b, _, _ := directory()

	for _, key := range []string{"id", "joining_year", "passing_year"} {
		_, err := b.BuildFilter(context.Background(), map[string]string{key: "twenty"})
		assert.ErrorIs(t, err, ErrInvalidFilter, key)
	}
}

func TestBuildFilterRejectsYearsOutsideInt32(t *testing.T) {
	b, _, _ := directory()

	for _, key := range []string{"joining_year", "passing_year"} {
		_, err := b.BuildFilter(context.Background(), map[string]string{key: "99999999999"})
		assert.ErrorIs(t, err, ErrInvalidFilter, key)
	}

	f, err := b.BuildFilter(context.Background(), map[string]string{"joining_year": "-2020"})
	require.NoError(t, err)
	assert.Contains(t, f.Conditions, repo.Condition{Field: repo.FieldJoiningYear, Op: repo.OpEqual, Value: -2020})
}

func TestListDropsNonStudentsAndKeepsMissingStreamLabelEmpty(t *testing.T) {
	b, _, streams := directory()

	got, err := b.List(context.Background(), map[string]string{"name": "an"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 6}, ids(got))

	for _, v := range got {
		if v.ID == 6 {
			assert.Nil(t, v.StudentStream)
		}
	}
	// streams 1, 2 and 404 are each loaded once
	assert.Equal(t, 3, streams.gets)
}

func TestListProjectionWithoutStream(t *testing.T) {
	b, _, _ := directory()

	got, err := b.List(context.Background(), map[string]string{"id": "5"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, StudentView{
		ID:          5,
		Name:        "Carl",
		Username:    "Carl",
		Email:       "Carl@example.test",
		JoiningYear: ptr(2020),
		PassingYear: ptr(2024),
		PhoneNumber: ptr("9876543250"),
	}, got[0])
}

func TestListStoreFailure(t *testing.T) {
	b, store, _ := directory()
	store.queryErr = errStoreDown

	_, err := b.List(context.Background(), nil)
	assert.ErrorIs(t, err, errStoreDown)
}
