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

func newFeeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestFeeRepositoryCreateStartsUnpaid(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	due := time.Now().AddDate(0, 1, 0)
	mock.ExpectQuery("INSERT INTO exam_fees").
		WithArgs(int64(1), 250.0, due).
		WillReturnRows(sqlmock.NewRows([]string{"id", "paid"}).AddRow(3, false))

	fee := &models.ExamFee{StudentID: 1, Amount: 250.0, DueDate: due}
	require.NoError(t, repo.Create(context.Background(), fee))
	assert.Equal(t, int64(3), fee.ID)
	assert.False(t, fee.Paid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	due := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE exam_fees SET amount = $2, due_date = $3, paid = $4 WHERE id = $1")).
		WithArgs(int64(3), 300.0, due, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	fee := &models.ExamFee{ID: 3, StudentID: 1, Amount: 300.0, DueDate: due, Paid: true}
	require.NoError(t, repo.Update(context.Background(), fee))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec("DELETE FROM exam_fees").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 8)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newFeeMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "amount", "due_date", "paid"}).
		AddRow(3, 1, 250.0, time.Now(), false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, amount, due_date, paid FROM exam_fees WHERE student_id = $1 ORDER BY id")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	fees, err := repo.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, 250.0, fees[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
