package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type resultRepository interface {
	List(ctx context.Context) ([]models.ExamResult, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error)
	FindByID(ctx context.Context, id int64) (*models.ExamResult, error)
	Create(ctx context.Context, result *models.ExamResult) error
	Delete(ctx context.Context, id int64) error
}

// AddResultRequest holds payload for recording an exam result. Marks are
// accepted as given; there is deliberately no obtained-vs-max rule.
type AddResultRequest struct {
	StudentID     int64   `json:"student_id" validate:"required"`
	ExamName      string  `json:"exam_name" validate:"required"`
	MarksObtained float64 `json:"marks_obtained"`
	MaxMarks      float64 `json:"max_marks"`
}

// ResultService handles exam result use-cases.
type ResultService struct {
	repo      resultRepository
	students  studentFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs the result service.
func NewResultService(repo resultRepository, students studentFinder, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns every exam result.
func (s *ResultService) List(ctx context.Context) ([]models.ExamResult, error) {
	results, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return results, nil
}

// ListByStudent returns one student's exam results.
func (s *ResultService) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	results, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student results")
	}
	return results, nil
}

// Get returns one exam result.
func (s *ResultService) Get(ctx context.Context, id int64) (*models.ExamResult, error) {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}
	return result, nil
}

// Create records an exam result for an existing student.
func (s *ResultService) Create(ctx context.Context, req AddResultRequest) (*models.ExamResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	result := &models.ExamResult{
		StudentID:     req.StudentID,
		ExamName:      req.ExamName,
		MarksObtained: req.MarksObtained,
		MaxMarks:      req.MaxMarks,
	}
	if err := s.repo.Create(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create result")
	}
	return result, nil
}

// Delete removes an exam result.
func (s *ResultService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete result")
	}
	return nil
}
