package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-admin-api/internal/models"
)

func newClassroomMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestClassroomRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectQuery("INSERT INTO classrooms").
		WithArgs("10-A", "10", "A", "Mrs. Rao").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	classroom := &models.Classroom{ClassName: "10-A", Std: "10", Sec: "A", ClassTeacher: "Mrs. Rao"}
	require.NoError(t, repo.Create(context.Background(), classroom))
	assert.Equal(t, int64(4), classroom.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryAddStudent(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectExec("INSERT INTO classroom_students").
		WithArgs(int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddStudent(context.Background(), 4, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryAddStudentDuplicate(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectExec("INSERT INTO classroom_students").
		WithArgs(int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddStudent(context.Background(), 4, 1)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryRemoveStudentNotEnrolled(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectExec("DELETE FROM classroom_students").
		WithArgs(int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveStudent(context.Background(), 4, 1)
	assert.ErrorIs(t, err, ErrNotEnrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM classroom_students").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM classrooms").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM classroom_students").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM classrooms").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryListStudents(t *testing.T) {
	db, mock, cleanup := newClassroomMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "contact_number", "dob"}).
		AddRow(1, "Asha", "555-0100", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("JOIN classroom_students cs ON cs.student_id = s.id")).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Asha", students[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
