package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type feeRepository interface {
	List(ctx context.Context) ([]models.ExamFee, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.ExamFee, error)
	FindByID(ctx context.Context, id int64) (*models.ExamFee, error)
	Create(ctx context.Context, fee *models.ExamFee) error
	Update(ctx context.Context, fee *models.ExamFee) error
	Delete(ctx context.Context, id int64) error
}

// AddFeeRequest holds payload for charging a fee. Fees start unpaid.
type AddFeeRequest struct {
	StudentID int64     `json:"student_id" validate:"required"`
	Amount    float64   `json:"amount"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

// UpdateFeeRequest is a partial merge: only fields present in the payload
// overwrite stored values.
type UpdateFeeRequest struct {
	Amount  *float64   `json:"amount"`
	DueDate *time.Time `json:"due_date"`
	Paid    *bool      `json:"paid"`
}

// FeeService handles exam fee use-cases.
type FeeService struct {
	repo      feeRepository
	students  studentFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs the fee service.
func NewFeeService(repo feeRepository, students studentFinder, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns every fee.
func (s *FeeService) List(ctx context.Context) ([]models.ExamFee, error) {
	fees, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fees")
	}
	return fees, nil
}

// ListByStudent returns the fees charged to one student.
func (s *FeeService) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamFee, error) {
	fees, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student fees")
	}
	return fees, nil
}

// Get returns one fee.
func (s *FeeService) Get(ctx context.Context, id int64) (*models.ExamFee, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee")
	}
	return fee, nil
}

// Create charges a fee to an existing student.
func (s *FeeService) Create(ctx context.Context, req AddFeeRequest) (*models.ExamFee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	fee := &models.ExamFee{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
	}
	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fee")
	}
	return fee, nil
}

// Update merges the supplied fields into an existing fee. Omitted fields
// keep their stored values.
func (s *FeeService) Update(ctx context.Context, id int64, req UpdateFeeRequest) (*models.ExamFee, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee")
	}
	if req.Amount != nil {
		fee.Amount = *req.Amount
	}
	if req.DueDate != nil {
		fee.DueDate = *req.DueDate
	}
	if req.Paid != nil {
		fee.Paid = *req.Paid
	}
	if err := s.repo.Update(ctx, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update fee")
	}
	return fee, nil
}

// Delete removes a fee.
func (s *FeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete fee")
	}
	return nil
}
