package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, name, contact_number, dob FROM students ORDER BY id`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT id, name, contact_number, dob FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student and fills in the generated identifier.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (name, contact_number, dob) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, student.Name, student.ContactNumber, student.DOB).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update replaces the base fields of an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET name = $2, contact_number = $3, dob = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, student.ID, student.Name, student.ContactNumber, student.DOB); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student and its roster memberships in one transaction.
// Students still referenced by issues, exam results, or fees are not
// deleted; those records are history, not attributes of the student row.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const refQuery = `SELECT (SELECT COUNT(*) FROM issues WHERE student_id = $1)
		+ (SELECT COUNT(*) FROM exam_results WHERE student_id = $1)
		+ (SELECT COUNT(*) FROM exam_fees WHERE student_id = $1)`
	var refs int
	if err = tx.GetContext(ctx, &refs, refQuery, id); err != nil {
		return fmt.Errorf("count student references: %w", err)
	}
	if refs > 0 {
		err = ErrStudentReferenced
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM classroom_students WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("clear student roster rows: %w", err)
	}

	res, execErr := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if execErr != nil {
		err = fmt.Errorf("delete student: %w", execErr)
		return err
	}
	rows, raErr := res.RowsAffected()
	if raErr != nil {
		err = fmt.Errorf("delete student rows: %w", raErr)
		return err
	}
	if rows == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete student: %w", err)
	}
	return nil
}
