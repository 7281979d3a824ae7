package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	"github.com/campuskit/school-admin-api/internal/repository"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type bookRepository interface {
	List(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
}

type issueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	Return(ctx context.Context, id int64, returned time.Time) (*models.Issue, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Issue, error)
}

// AddBookRequest holds payload for adding a book to the catalogue.
// total_copies is stored as given; the contract puts no floor on it.
type AddBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	ISBN        string `json:"isbn" validate:"required"`
	TotalCopies int    `json:"total_copies"`
}

// IssueBookRequest holds payload for lending a book.
type IssueBookRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
	BookID    int64 `json:"book_id" validate:"required"`
}

// LibraryService handles the book catalogue and the lending lifecycle.
type LibraryService struct {
	books     bookRepository
	issues    issueRepository
	students  studentFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLibraryService constructs the library service.
func NewLibraryService(books bookRepository, issues issueRepository, students studentFinder, validate *validator.Validate, logger *zap.Logger) *LibraryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryService{books: books, issues: issues, students: students, validator: validate, logger: logger}
}

// ListBooks returns the catalogue.
func (s *LibraryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list books")
	}
	return books, nil
}

// GetBook returns one book.
func (s *LibraryService) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "book not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load book")
	}
	return book, nil
}

// AddBook registers a new title with every copy available.
func (s *LibraryService) AddBook(ctx context.Context, req AddBookRequest) (*models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}
	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		TotalCopies: req.TotalCopies,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create book")
	}
	return book, nil
}

// IssueBook lends a book to a student. Both references are resolved first,
// then the availability decrement and the issue row commit together.
func (s *LibraryService) IssueBook(ctx context.Context, req IssueBookRequest) (*models.Issue, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid issue payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.books.FindByID(ctx, req.BookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "book not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load book")
	}

	issue := &models.Issue{StudentID: req.StudentID, BookID: req.BookID}
	if err := s.issues.Create(ctx, issue); err != nil {
		if errors.Is(err, repository.ErrBookUnavailable) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "book unavailable")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue book")
	}
	return issue, nil
}

// ReturnBook closes an outstanding issue, stamping today's date and
// restoring the copy.
func (s *LibraryService) ReturnBook(ctx context.Context, issueID int64) (*models.Issue, error) {
	issue, err := s.issues.Return(ctx, issueID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "issue not found")
		case errors.Is(err, repository.ErrAlreadyReturned):
			return nil, appErrors.Clone(appErrors.ErrConflict, "issue already returned")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to return book")
		}
	}
	return issue, nil
}

// ListStudentIssues returns the lending history of a student.
func (s *LibraryService) ListStudentIssues(ctx context.Context, studentID int64) ([]models.Issue, error) {
	issues, err := s.issues.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student issues")
	}
	return issues, nil
}
