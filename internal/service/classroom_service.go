package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	"github.com/campuskit/school-admin-api/internal/repository"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type classroomRepository interface {
	List(ctx context.Context) ([]models.Classroom, error)
	FindByID(ctx context.Context, id int64) (*models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id int64) error
	AddStudent(ctx context.Context, classroomID, studentID int64) error
	RemoveStudent(ctx context.Context, classroomID, studentID int64) error
	ListStudents(ctx context.Context, classroomID int64) ([]models.Student, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

// ClassroomRequest holds payload for creating and updating classrooms.
type ClassroomRequest struct {
	ClassName    string `json:"class_name" validate:"required"`
	Std          string `json:"std" validate:"required"`
	Sec          string `json:"sec" validate:"required"`
	ClassTeacher string `json:"class_teacher" validate:"required"`
}

// ClassroomService handles classroom and roster use-cases.
type ClassroomService struct {
	repo      classroomRepository
	students  studentFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService constructs the classroom service.
func NewClassroomService(repo classroomRepository, students studentFinder, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns every classroom.
func (s *ClassroomService) List(ctx context.Context) ([]models.Classroom, error) {
	classrooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return classrooms, nil
}

// Get returns one classroom.
func (s *ClassroomService) Get(ctx context.Context, id int64) (*models.Classroom, error) {
	return s.findClassroom(ctx, id)
}

// Create registers a new classroom.
func (s *ClassroomService) Create(ctx context.Context, req ClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}
	classroom := &models.Classroom{
		ClassName:    req.ClassName,
		Std:          req.Std,
		Sec:          req.Sec,
		ClassTeacher: req.ClassTeacher,
	}
	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}
	return classroom, nil
}

// Update replaces the fields of an existing classroom.
func (s *ClassroomService) Update(ctx context.Context, id int64, req ClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}
	classroom, err := s.findClassroom(ctx, id)
	if err != nil {
		return nil, err
	}
	classroom.ClassName = req.ClassName
	classroom.Std = req.Std
	classroom.Sec = req.Sec
	classroom.ClassTeacher = req.ClassTeacher
	if err := s.repo.Update(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}
	return classroom, nil
}

// Delete removes a classroom together with its roster rows.
func (s *ClassroomService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}
	return nil
}

// AddStudent enrolls a student into a classroom. Both sides are resolved
// before the membership write so a missing id reads as not-found rather
// than a membership conflict.
func (s *ClassroomService) AddStudent(ctx context.Context, classroomID, studentID int64) (*models.Classroom, error) {
	classroom, err := s.findClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.findStudent(ctx, studentID); err != nil {
		return nil, err
	}
	if err := s.repo.AddStudent(ctx, classroomID, studentID); err != nil {
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already in class")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll student")
	}
	return classroom, nil
}

// RemoveStudent unenrolls a student from a classroom.
func (s *ClassroomService) RemoveStudent(ctx context.Context, classroomID, studentID int64) (*models.Classroom, error) {
	classroom, err := s.findClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.findStudent(ctx, studentID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveStudent(ctx, classroomID, studentID); err != nil {
		if errors.Is(err, repository.ErrNotEnrolled) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student not in class")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unenroll student")
	}
	return classroom, nil
}

// ListStudents returns the roster of a classroom.
func (s *ClassroomService) ListStudents(ctx context.Context, classroomID int64) ([]models.Student, error) {
	if _, err := s.findClassroom(ctx, classroomID); err != nil {
		return nil, err
	}
	students, err := s.repo.ListStudents(ctx, classroomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classroom students")
	}
	return students, nil
}

func (s *ClassroomService) findClassroom(ctx context.Context, id int64) (*models.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	return classroom, nil
}

func (s *ClassroomService) findStudent(ctx context.Context, id int64) error {
	if _, err := s.students.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return nil
}
