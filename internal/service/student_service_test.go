package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	"github.com/campuskit/school-admin-api/internal/repository"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type mockStudentRepo struct {
	students  map[int64]models.Student
	nextID    int64
	deleteErr error
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	students := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, s)
	}
	return students, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[int64]models.Student)
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.students, id)
	return nil
}

type mockClassroomLister struct{ classrooms []models.Classroom }

func (m *mockClassroomLister) ListByStudent(ctx context.Context, studentID int64) ([]models.Classroom, error) {
	return m.classrooms, nil
}

type mockIssueLister struct{ issues []models.IssueDetail }

func (m *mockIssueLister) ListDetailByStudent(ctx context.Context, studentID int64) ([]models.IssueDetail, error) {
	return m.issues, nil
}

type mockResultLister struct{ results []models.ExamResult }

func (m *mockResultLister) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	return m.results, nil
}

type mockFeeLister struct{ fees []models.ExamFee }

func (m *mockFeeLister) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamFee, error) {
	return m.fees, nil
}

func newStudentService(repo *mockStudentRepo) *StudentService {
	return NewStudentService(repo, &mockClassroomLister{}, &mockIssueLister{}, &mockResultLister{}, &mockFeeLister{}, validator.New(), zap.NewNop())
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:          "Asha",
		ContactNumber: "555-0100",
		DOB:           time.Date(2010, 4, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotZero(t, student.ID)
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceCreateInvalid(t *testing.T) {
	svc := newStudentService(&mockStudentRepo{})

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Asha"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestStudentServiceGetDetail(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{1: {ID: 1, Name: "Asha"}}}
	svc := NewStudentService(repo,
		&mockClassroomLister{classrooms: []models.Classroom{{ID: 4, ClassName: "10-A"}}},
		&mockIssueLister{issues: []models.IssueDetail{{Issue: models.Issue{ID: 10, StudentID: 1, BookID: 5}}}},
		&mockResultLister{results: []models.ExamResult{{ID: 2, StudentID: 1, ExamName: "Midterm"}}},
		&mockFeeLister{fees: []models.ExamFee{{ID: 3, StudentID: 1, Amount: 250}}},
		validator.New(), zap.NewNop())

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Asha", detail.Name)
	assert.Len(t, detail.Classrooms, 1)
	assert.Len(t, detail.Issues, 1)
	assert.Len(t, detail.Results, 1)
	assert.Len(t, detail.Fees, 1)
}

func TestStudentServiceGetMissing(t *testing.T) {
	svc := newStudentService(&mockStudentRepo{})

	_, err := svc.Get(context.Background(), 42)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{1: {ID: 1, Name: "Old", ContactNumber: "555-0100", DOB: time.Now()}}}
	svc := newStudentService(repo)

	updated, err := svc.Update(context.Background(), 1, UpdateStudentRequest{
		Name:          "New",
		ContactNumber: "555-0199",
		DOB:           time.Date(2010, 4, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "New", repo.students[1].Name)
}

func TestStudentServiceDeleteReferenced(t *testing.T) {
	repo := &mockStudentRepo{
		students:  map[int64]models.Student{1: {ID: 1}},
		deleteErr: repository.ErrStudentReferenced,
	}
	svc := newStudentService(repo)

	err := svc.Delete(context.Background(), 1)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestStudentServiceDeleteMissing(t *testing.T) {
	svc := newStudentService(&mockStudentRepo{})

	err := svc.Delete(context.Background(), 42)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
