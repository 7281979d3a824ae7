package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// StaffRepository manages persistence for staff records.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns every staff member.
func (r *StaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	const query = `SELECT id, name, contact_number, dob FROM staff ORDER BY id`
	staff := []models.Staff{}
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// FindByID fetches a staff member by ID.
func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*models.Staff, error) {
	const query = `SELECT id, name, contact_number, dob FROM staff WHERE id = $1`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, err
	}
	return &staff, nil
}

// Create inserts a new staff member and fills in the generated identifier.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	const query = `INSERT INTO staff (name, contact_number, dob) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, staff.Name, staff.ContactNumber, staff.DOB).Scan(&staff.ID); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// Update replaces the base fields of an existing staff member.
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	const query = `UPDATE staff SET name = $2, contact_number = $3, dob = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, staff.ID, staff.Name, staff.ContactNumber, staff.DOB); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// Delete removes a staff member.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete staff rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
