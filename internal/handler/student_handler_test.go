package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	"github.com/campuskit/school-admin-api/internal/service"
)

type studentRepoStub struct {
	students map[int64]models.Student
	nextID   int64
}

func (m *studentRepoStub) List(ctx context.Context) ([]models.Student, error) {
	students := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, s)
	}
	return students, nil
}

func (m *studentRepoStub) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *studentRepoStub) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[int64]models.Student)
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *studentRepoStub) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *studentRepoStub) Delete(ctx context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.students, id)
	return nil
}

type classroomListerStub struct{}

func (classroomListerStub) ListByStudent(ctx context.Context, studentID int64) ([]models.Classroom, error) {
	return []models.Classroom{}, nil
}

type issueListerStub struct{}

func (issueListerStub) ListDetailByStudent(ctx context.Context, studentID int64) ([]models.IssueDetail, error) {
	return []models.IssueDetail{}, nil
}

type resultListerStub struct{}

func (resultListerStub) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	return []models.ExamResult{}, nil
}

type feeListerStub struct{}

func (feeListerStub) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamFee, error) {
	return []models.ExamFee{}, nil
}

func newStudentHandler(repo *studentRepoStub) *StudentHandler {
	svc := service.NewStudentService(repo, classroomListerStub{}, issueListerStub{}, resultListerStub{}, feeListerStub{}, validator.New(), zap.NewNop())
	return NewStudentHandler(svc)
}

func TestStudentHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &studentRepoStub{students: map[int64]models.Student{1: {ID: 1, Name: "Asha", ContactNumber: "555-0100", DOB: time.Now()}}}
	handler := newStudentHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Asha"`)
	assert.Contains(t, w.Body.String(), `"classrooms"`)
}

func TestStudentHandlerGetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&studentRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlerGetBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&studentRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &studentRepoStub{}
	handler := newStudentHandler(repo)

	body, _ := json.Marshal(service.CreateStudentRequest{
		Name:          "Asha",
		ContactNumber: "555-0100",
		DOB:           time.Date(2010, 4, 2, 0, 0, 0, 0, time.UTC),
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.students, 1)
}

func TestStudentHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&studentRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &studentRepoStub{students: map[int64]models.Student{1: {ID: 1}}}
	handler := newStudentHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/students/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.students)
}
