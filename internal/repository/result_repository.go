package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// ResultRepository manages exam result records.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository constructs a ResultRepository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// List returns every exam result.
func (r *ResultRepository) List(ctx context.Context) ([]models.ExamResult, error) {
	const query = `SELECT id, student_id, exam_name, marks_obtained, max_marks FROM exam_results ORDER BY id`
	results := []models.ExamResult{}
	if err := r.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// ListByStudent returns the exam results of one student.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	const query = `SELECT id, student_id, exam_name, marks_obtained, max_marks FROM exam_results WHERE student_id = $1 ORDER BY id`
	results := []models.ExamResult{}
	if err := r.db.SelectContext(ctx, &results, query, studentID); err != nil {
		return nil, fmt.Errorf("list student results: %w", err)
	}
	return results, nil
}

// FindByID fetches an exam result by ID.
func (r *ResultRepository) FindByID(ctx context.Context, id int64) (*models.ExamResult, error) {
	const query = `SELECT id, student_id, exam_name, marks_obtained, max_marks FROM exam_results WHERE id = $1`
	var result models.ExamResult
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create inserts a new exam result and fills in the generated identifier.
func (r *ResultRepository) Create(ctx context.Context, result *models.ExamResult) error {
	const query = `INSERT INTO exam_results (student_id, exam_name, marks_obtained, max_marks) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, result.StudentID, result.ExamName, result.MarksObtained, result.MaxMarks).Scan(&result.ID); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

// Delete removes an exam result.
func (r *ResultRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exam_results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete result rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
