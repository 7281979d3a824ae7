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
	"github.com/campuskit/school-admin-api/internal/repository"
	"github.com/campuskit/school-admin-api/internal/service"
)

type bookRepoStub struct {
	books map[int64]models.Book
}

func (m *bookRepoStub) List(ctx context.Context) ([]models.Book, error) {
	books := make([]models.Book, 0, len(m.books))
	for _, b := range m.books {
		books = append(books, b)
	}
	return books, nil
}

func (m *bookRepoStub) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	if b, ok := m.books[id]; ok {
		return &b, nil
	}
	return nil, sql.ErrNoRows
}

func (m *bookRepoStub) Create(ctx context.Context, book *models.Book) error {
	if m.books == nil {
		m.books = make(map[int64]models.Book)
	}
	book.ID = int64(len(m.books) + 1)
	book.AvailableCopies = book.TotalCopies
	m.books[book.ID] = *book
	return nil
}

type issueRepoStub struct {
	issues    map[int64]models.Issue
	createErr error
}

func (m *issueRepoStub) Create(ctx context.Context, issue *models.Issue) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.issues == nil {
		m.issues = make(map[int64]models.Issue)
	}
	issue.ID = int64(len(m.issues) + 1)
	issue.IssueDate = time.Now()
	m.issues[issue.ID] = *issue
	return nil
}

func (m *issueRepoStub) Return(ctx context.Context, id int64, returned time.Time) (*models.Issue, error) {
	issue, ok := m.issues[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if issue.ReturnDate != nil {
		return nil, repository.ErrAlreadyReturned
	}
	issue.ReturnDate = &returned
	m.issues[id] = issue
	return &issue, nil
}

func (m *issueRepoStub) ListByStudent(ctx context.Context, studentID int64) ([]models.Issue, error) {
	issues := []models.Issue{}
	for _, issue := range m.issues {
		if issue.StudentID == studentID {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

func newLibraryHandler(books *bookRepoStub, issues *issueRepoStub, students *studentRepoStub) *LibraryHandler {
	svc := service.NewLibraryService(books, issues, students, validator.New(), zap.NewNop())
	return NewLibraryHandler(svc)
}

func TestLibraryHandlerAddBook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	books := &bookRepoStub{}
	handler := newLibraryHandler(books, &issueRepoStub{}, &studentRepoStub{})

	body, _ := json.Marshal(service.AddBookRequest{
		Title:       "Go in Practice",
		Author:      "Butcher",
		ISBN:        "9781617286940",
		TotalCopies: 3,
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.AddBook(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"available_copies":3`)
}

func TestLibraryHandlerIssueBook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	books := &bookRepoStub{books: map[int64]models.Book{5: {ID: 5, AvailableCopies: 1}}}
	students := &studentRepoStub{students: map[int64]models.Student{1: {ID: 1, Name: "Asha"}}}
	handler := newLibraryHandler(books, &issueRepoStub{}, students)

	body, _ := json.Marshal(service.IssueBookRequest{StudentID: 1, BookID: 5})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/issues", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.IssueBook(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"return_date":null`)
}

func TestLibraryHandlerIssueBookUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	books := &bookRepoStub{books: map[int64]models.Book{5: {ID: 5, AvailableCopies: 0}}}
	students := &studentRepoStub{students: map[int64]models.Student{1: {ID: 1}}}
	issues := &issueRepoStub{createErr: repository.ErrBookUnavailable}
	handler := newLibraryHandler(books, issues, students)

	body, _ := json.Marshal(service.IssueBookRequest{StudentID: 1, BookID: 5})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/issues", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.IssueBook(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "book unavailable")
}

func TestLibraryHandlerReturnBook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issues := &issueRepoStub{issues: map[int64]models.Issue{10: {ID: 10, StudentID: 1, BookID: 5}}}
	handler := newLibraryHandler(&bookRepoStub{}, issues, &studentRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/returns/10", nil)
	c.Params = gin.Params{{Key: "issueId", Value: "10"}}

	handler.ReturnBook(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"return_date":null`)
}

func TestLibraryHandlerReturnBookTwice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	returned := time.Now()
	issues := &issueRepoStub{issues: map[int64]models.Issue{10: {ID: 10, StudentID: 1, BookID: 5, ReturnDate: &returned}}}
	handler := newLibraryHandler(&bookRepoStub{}, issues, &studentRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/returns/10", nil)
	c.Params = gin.Params{{Key: "issueId", Value: "10"}}

	handler.ReturnBook(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}
