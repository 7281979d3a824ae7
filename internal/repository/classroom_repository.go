package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// ClassroomRepository manages classrooms and their student roster.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs a ClassroomRepository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// List returns every classroom.
func (r *ClassroomRepository) List(ctx context.Context) ([]models.Classroom, error) {
	const query = `SELECT id, class_name, std, sec, class_teacher FROM classrooms ORDER BY id`
	classrooms := []models.Classroom{}
	if err := r.db.SelectContext(ctx, &classrooms, query); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return classrooms, nil
}

// FindByID fetches a classroom by ID.
func (r *ClassroomRepository) FindByID(ctx context.Context, id int64) (*models.Classroom, error) {
	const query = `SELECT id, class_name, std, sec, class_teacher FROM classrooms WHERE id = $1`
	var classroom models.Classroom
	if err := r.db.GetContext(ctx, &classroom, query, id); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// Create inserts a new classroom and fills in the generated identifier.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	const query = `INSERT INTO classrooms (class_name, std, sec, class_teacher) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, classroom.ClassName, classroom.Std, classroom.Sec, classroom.ClassTeacher).Scan(&classroom.ID); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing classroom.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	const query = `UPDATE classrooms SET class_name = $2, std = $3, sec = $4, class_teacher = $5 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, classroom.ID, classroom.ClassName, classroom.Std, classroom.Sec, classroom.ClassTeacher); err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// Delete removes a classroom and its roster rows in one transaction.
func (r *ClassroomRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete classroom: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM classroom_students WHERE classroom_id = $1`, id); err != nil {
		return fmt.Errorf("clear classroom roster: %w", err)
	}

	res, execErr := tx.ExecContext(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	if execErr != nil {
		err = fmt.Errorf("delete classroom: %w", execErr)
		return err
	}
	rows, raErr := res.RowsAffected()
	if raErr != nil {
		err = fmt.Errorf("delete classroom rows: %w", raErr)
		return err
	}
	if rows == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete classroom: %w", err)
	}
	return nil
}

// AddStudent enrolls a student. The conflict target doubles as the
// duplicate-membership guard: zero affected rows means the pairing exists.
func (r *ClassroomRepository) AddStudent(ctx context.Context, classroomID, studentID int64) error {
	const query = `INSERT INTO classroom_students (classroom_id, student_id) VALUES ($1, $2)
		ON CONFLICT (classroom_id, student_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, classroomID, studentID)
	if err != nil {
		return fmt.Errorf("enroll student: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("enroll student rows: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyEnrolled
	}
	return nil
}

// RemoveStudent unenrolls a student; zero affected rows means no membership.
func (r *ClassroomRepository) RemoveStudent(ctx context.Context, classroomID, studentID int64) error {
	const query = `DELETE FROM classroom_students WHERE classroom_id = $1 AND student_id = $2`
	res, err := r.db.ExecContext(ctx, query, classroomID, studentID)
	if err != nil {
		return fmt.Errorf("unenroll student: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unenroll student rows: %w", err)
	}
	if rows == 0 {
		return ErrNotEnrolled
	}
	return nil
}

// ListStudents returns the roster of a classroom.
func (r *ClassroomRepository) ListStudents(ctx context.Context, classroomID int64) ([]models.Student, error) {
	const query = `SELECT s.id, s.name, s.contact_number, s.dob
		FROM students s
		JOIN classroom_students cs ON cs.student_id = s.id
		WHERE cs.classroom_id = $1
		ORDER BY s.id`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, classroomID); err != nil {
		return nil, fmt.Errorf("list classroom students: %w", err)
	}
	return students, nil
}

// ListByStudent returns every classroom a student belongs to.
func (r *ClassroomRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Classroom, error) {
	const query = `SELECT c.id, c.class_name, c.std, c.sec, c.class_teacher
		FROM classrooms c
		JOIN classroom_students cs ON cs.classroom_id = c.id
		WHERE cs.student_id = $1
		ORDER BY c.id`
	classrooms := []models.Classroom{}
	if err := r.db.SelectContext(ctx, &classrooms, query, studentID); err != nil {
		return nil, fmt.Errorf("list student classrooms: %w", err)
	}
	return classrooms, nil
}
