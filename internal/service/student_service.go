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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type studentClassroomLister interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Classroom, error)
}

type studentIssueLister interface {
	ListDetailByStudent(ctx context.Context, studentID int64) ([]models.IssueDetail, error)
}

type studentResultLister interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error)
}

type studentFeeLister interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.ExamFee, error)
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	Name          string    `json:"name" validate:"required"`
	ContactNumber string    `json:"contact_number" validate:"required"`
	DOB           time.Time `json:"dob" validate:"required"`
}

// UpdateStudentRequest holds payload for updating students. Updates replace
// every base field.
type UpdateStudentRequest struct {
	Name          string    `json:"name" validate:"required"`
	ContactNumber string    `json:"contact_number" validate:"required"`
	DOB           time.Time `json:"dob" validate:"required"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo       studentRepository
	classrooms studentClassroomLister
	issues     studentIssueLister
	results    studentResultLister
	fees       studentFeeLister
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, classrooms studentClassroomLister, issues studentIssueLister, results studentResultLister, fees studentFeeLister, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:       repo,
		classrooms: classrooms,
		issues:     issues,
		results:    results,
		fees:       fees,
		validator:  validate,
		logger:     logger,
	}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns the read-expanded student view: base record plus classrooms,
// issues with books, exam results, and fees.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	detail := &models.StudentDetail{Student: *student}
	if detail.Classrooms, err = s.classrooms.ListByStudent(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student classrooms")
	}
	if detail.Issues, err = s.issues.ListDetailByStudent(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student issues")
	}
	if detail.Results, err = s.results.ListByStudent(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student results")
	}
	if detail.Fees, err = s.fees.ListByStudent(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student fees")
	}
	return detail, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		DOB:           req.DOB,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update replaces the base fields of an existing student.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	student.Name = req.Name
	student.ContactNumber = req.ContactNumber
	student.DOB = req.DOB
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete hard-deletes a student. Roster rows go with it; lending and exam
// history block the delete.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		case errors.Is(err, repository.ErrStudentReferenced):
			return appErrors.Clone(appErrors.ErrConflict, "student has issues, results, or fees")
		default:
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
		}
	}
	return nil
}
