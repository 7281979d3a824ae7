package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type studentCreator interface {
	Create(ctx context.Context, student *models.Student) error
}

// ImportService bulk-loads students from an uploaded spreadsheet. The first
// sheet is read with columns name, contact_number, dob (YYYY-MM-DD); the
// first row is treated as a header and incomplete rows are skipped.
type ImportService struct {
	students studentCreator
	logger   *zap.Logger
}

// NewImportService constructs the import service.
func NewImportService(students studentCreator, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{students: students, logger: logger}
}

// ImportStudents reads the spreadsheet and creates one student per usable
// row, returning how many were imported.
func (s *ImportService) ImportStudents(ctx context.Context, file io.Reader) (int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not open spreadsheet")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("close spreadsheet", zap.Error(closeErr))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read spreadsheet rows")
	}

	imported := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		var name, contact, rawDOB string
		if len(row) > 0 {
			name = row[0]
		}
		if len(row) > 1 {
			contact = row[1]
		}
		if len(row) > 2 {
			rawDOB = row[2]
		}
		if name == "" || contact == "" || rawDOB == "" {
			s.logger.Debug("skipping incomplete row", zap.Int("row", i+1))
			continue
		}
		dob, parseErr := time.Parse("2006-01-02", rawDOB)
		if parseErr != nil {
			s.logger.Debug("skipping row with bad dob", zap.Int("row", i+1), zap.String("dob", rawDOB))
			continue
		}

		student := &models.Student{Name: name, ContactNumber: contact, DOB: dob}
		if err := s.students.Create(ctx, student); err != nil {
			return imported, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				fmt.Sprintf("failed to import row %d", i+1))
		}
		imported++
	}
	return imported, nil
}
