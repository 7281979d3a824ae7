package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campuskit/school-admin-api/internal/models"
	"github.com/campuskit/school-admin-api/pkg/export"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

type reportStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportService renders administrative exports: the student roster as CSV
// and a per-student report card as PDF.
type ReportService struct {
	students reportStudentRepository
	results  studentResultLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(students reportStudentRepository, results studentResultLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{students: students, results: results, csv: csv, pdf: pdf, logger: logger}
}

// StudentRosterCSV renders the full student list.
func (s *ReportService) StudentRosterCSV(ctx context.Context) ([]byte, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	dataset := export.Dataset{
		Headers: []string{"id", "name", "contact_number", "dob"},
	}
	for _, student := range students {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"id":             fmt.Sprintf("%d", student.ID),
			"name":           student.Name,
			"contact_number": student.ContactNumber,
			"dob":            student.DOB.Format("2006-01-02"),
		})
	}
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster csv")
	}
	return payload, nil
}

// ReportCardPDF renders one student's exam results as a report card.
func (s *ReportService) ReportCardPDF(ctx context.Context, studentID int64) ([]byte, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	results, err := s.results.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student results")
	}

	dataset := export.Dataset{
		Headers: []string{"exam", "marks obtained", "max marks"},
	}
	for _, result := range results {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"exam":           result.ExamName,
			"marks obtained": fmt.Sprintf("%.2f", result.MarksObtained),
			"max marks":      fmt.Sprintf("%.2f", result.MaxMarks),
		})
	}
	payload, err := s.pdf.Render(dataset, fmt.Sprintf("Report card - %s", student.Name))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}
	return payload, nil
}
