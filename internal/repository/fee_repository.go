package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// FeeRepository manages exam fee records.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// List returns every exam fee.
func (r *FeeRepository) List(ctx context.Context) ([]models.ExamFee, error) {
	const query = `SELECT id, student_id, amount, due_date, paid FROM exam_fees ORDER BY id`
	fees := []models.ExamFee{}
	if err := r.db.SelectContext(ctx, &fees, query); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}

// ListByStudent returns the fees charged to one student.
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamFee, error) {
	const query = `SELECT id, student_id, amount, due_date, paid FROM exam_fees WHERE student_id = $1 ORDER BY id`
	fees := []models.ExamFee{}
	if err := r.db.SelectContext(ctx, &fees, query, studentID); err != nil {
		return nil, fmt.Errorf("list student fees: %w", err)
	}
	return fees, nil
}

// FindByID fetches an exam fee by ID.
func (r *FeeRepository) FindByID(ctx context.Context, id int64) (*models.ExamFee, error) {
	const query = `SELECT id, student_id, amount, due_date, paid FROM exam_fees WHERE id = $1`
	var fee models.ExamFee
	if err := r.db.GetContext(ctx, &fee, query, id); err != nil {
		return nil, err
	}
	return &fee, nil
}

// Create inserts a new fee. Fees start unpaid.
func (r *FeeRepository) Create(ctx context.Context, fee *models.ExamFee) error {
	const query = `INSERT INTO exam_fees (student_id, amount, due_date) VALUES ($1, $2, $3) RETURNING id, paid`
	if err := r.db.QueryRowxContext(ctx, query, fee.StudentID, fee.Amount, fee.DueDate).Scan(&fee.ID, &fee.Paid); err != nil {
		return fmt.Errorf("create fee: %w", err)
	}
	return nil
}

// Update writes the full fee row; callers merge partial payloads first.
func (r *FeeRepository) Update(ctx context.Context, fee *models.ExamFee) error {
	const query = `UPDATE exam_fees SET amount = $2, due_date = $3, paid = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, fee.ID, fee.Amount, fee.DueDate, fee.Paid); err != nil {
		return fmt.Errorf("update fee: %w", err)
	}
	return nil
}

// Delete removes an exam fee.
func (r *FeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exam_fees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fee: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete fee rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
