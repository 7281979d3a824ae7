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

type staffRepository interface {
	List(ctx context.Context) ([]models.Staff, error)
	FindByID(ctx context.Context, id int64) (*models.Staff, error)
	Create(ctx context.Context, staff *models.Staff) error
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id int64) error
}

// StaffRequest holds payload for creating and updating staff.
type StaffRequest struct {
	Name          string    `json:"name" validate:"required"`
	ContactNumber string    `json:"contact_number" validate:"required"`
	DOB           time.Time `json:"dob" validate:"required"`
}

// StaffService handles staff use-cases.
type StaffService struct {
	repo      staffRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs the staff service.
func NewStaffService(repo staffRepository, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, validator: validate, logger: logger}
}

// List returns every staff member.
func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// Get returns one staff member.
func (s *StaffService) Get(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	return staff, nil
}

// Create registers a new staff member.
func (s *StaffService) Create(ctx context.Context, req StaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	staff := &models.Staff{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		DOB:           req.DOB,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff")
	}
	return staff, nil
}

// Update replaces the fields of an existing staff member.
func (s *StaffService) Update(ctx context.Context, id int64, req StaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	staff.Name = req.Name
	staff.ContactNumber = req.ContactNumber
	staff.DOB = req.DOB
	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff")
	}
	return staff, nil
}

// Delete hard-deletes a staff member.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete staff")
	}
	return nil
}
