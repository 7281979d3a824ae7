package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table definitions, applied idempotently at process start. There is no
// versioned migration mechanism; the DDL must stay additive.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		dob DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		contact_number TEXT NOT NULL,
		dob DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS classrooms (
		id BIGSERIAL PRIMARY KEY,
		class_name TEXT NOT NULL,
		std TEXT NOT NULL,
		sec TEXT NOT NULL,
		class_teacher TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS classroom_students (
		classroom_id BIGINT NOT NULL REFERENCES classrooms(id),
		student_id BIGINT NOT NULL REFERENCES students(id),
		PRIMARY KEY (classroom_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		isbn TEXT NOT NULL,
		total_copies INTEGER NOT NULL,
		available_copies INTEGER NOT NULL,
		CHECK (available_copies >= 0 AND available_copies <= total_copies)
	)`,
	`CREATE TABLE IF NOT EXISTS issues (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		book_id BIGINT NOT NULL REFERENCES books(id),
		issue_date DATE NOT NULL DEFAULT CURRENT_DATE,
		return_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS exam_results (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		exam_name TEXT NOT NULL,
		marks_obtained DOUBLE PRECISION NOT NULL,
		max_marks DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exam_fees (
		id BIGSERIAL PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		amount DOUBLE PRECISION NOT NULL,
		due_date DATE NOT NULL,
		paid BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_student ON issues (student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exam_results_student ON exam_results (student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exam_fees_student ON exam_fees (student_id)`,
}

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
