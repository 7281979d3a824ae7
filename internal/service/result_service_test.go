package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type mockResultRepo struct {
	results map[int64]models.ExamResult
	nextID  int64
}

func (m *mockResultRepo) List(ctx context.Context) ([]models.ExamResult, error) {
	results := make([]models.ExamResult, 0, len(m.results))
	for _, r := range m.results {
		results = append(results, r)
	}
	return results, nil
}

func (m *mockResultRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	results := []models.ExamResult{}
	for _, r := range m.results {
		if r.StudentID == studentID {
			results = append(results, r)
		}
	}
	return results, nil
}

func (m *mockResultRepo) FindByID(ctx context.Context, id int64) (*models.ExamResult, error) {
	if r, ok := m.results[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockResultRepo) Create(ctx context.Context, result *models.ExamResult) error {
	if m.results == nil {
		m.results = make(map[int64]models.ExamResult)
	}
	m.nextID++
	result.ID = m.nextID
	m.results[result.ID] = *result
	return nil
}

func (m *mockResultRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.results[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.results, id)
	return nil
}

func TestResultServiceCreate(t *testing.T) {
	repo := &mockResultRepo{}
	students := &mockStudentFinder{students: map[int64]models.Student{1: {ID: 1}}}
	svc := NewResultService(repo, students, validator.New(), zap.NewNop())

	result, err := svc.Create(context.Background(), AddResultRequest{
		StudentID:     1,
		ExamName:      "Midterm",
		MarksObtained: 82,
		MaxMarks:      100,
	})
	require.NoError(t, err)
	assert.NotZero(t, result.ID)
	assert.Equal(t, "Midterm", result.ExamName)
}

func TestResultServiceCreateUnknownStudent(t *testing.T) {
	svc := NewResultService(&mockResultRepo{}, &mockStudentFinder{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), AddResultRequest{StudentID: 9, ExamName: "Midterm"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestResultServiceCreateInvalid(t *testing.T) {
	svc := NewResultService(&mockResultRepo{}, &mockStudentFinder{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), AddResultRequest{StudentID: 1})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestResultServiceGetMissing(t *testing.T) {
	svc := NewResultService(&mockResultRepo{}, &mockStudentFinder{}, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), 42)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestResultServiceListByStudent(t *testing.T) {
	repo := &mockResultRepo{results: map[int64]models.ExamResult{
		1: {ID: 1, StudentID: 1, ExamName: "Midterm"},
		2: {ID: 2, StudentID: 2, ExamName: "Midterm"},
	}}
	svc := NewResultService(repo, &mockStudentFinder{}, validator.New(), zap.NewNop())

	results, err := svc.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
