package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/school-admin-api/internal/models"
)

// IssueRepository manages book lending records. Issue and return each run
// as one transaction with a conditional update guarding the availability
// counter, so concurrent requests against the last copy cannot over-issue.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository constructs an IssueRepository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Create lends a book: decrement availability while it is positive, then
// record the issue. A zero-row decrement aborts with ErrBookUnavailable.
func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin issue: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, execErr := tx.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies - 1 WHERE id = $1 AND available_copies > 0`,
		issue.BookID)
	if execErr != nil {
		err = fmt.Errorf("decrement availability: %w", execErr)
		return err
	}
	rows, raErr := res.RowsAffected()
	if raErr != nil {
		err = fmt.Errorf("decrement availability rows: %w", raErr)
		return err
	}
	if rows == 0 {
		err = ErrBookUnavailable
		return err
	}

	const insert = `INSERT INTO issues (student_id, book_id) VALUES ($1, $2) RETURNING id, issue_date, return_date`
	if err = tx.QueryRowxContext(ctx, insert, issue.StudentID, issue.BookID).
		Scan(&issue.ID, &issue.IssueDate, &issue.ReturnDate); err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit issue: %w", err)
	}
	return nil
}

// Return closes an outstanding issue and restores the copy. The update
// matches only while return_date is null, which makes a second return a
// no-op the guard turns into ErrAlreadyReturned.
func (r *IssueRepository) Return(ctx context.Context, id int64, returned time.Time) (issue *models.Issue, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin return: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const update = `UPDATE issues SET return_date = $2 WHERE id = $1 AND return_date IS NULL
		RETURNING id, student_id, book_id, issue_date, return_date`
	var closed models.Issue
	scanErr := tx.QueryRowxContext(ctx, update, id, returned).StructScan(&closed)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			var exists int
			probeErr := tx.GetContext(ctx, &exists, `SELECT 1 FROM issues WHERE id = $1`, id)
			if probeErr != nil {
				if errors.Is(probeErr, sql.ErrNoRows) {
					err = sql.ErrNoRows
					return nil, err
				}
				err = fmt.Errorf("probe issue: %w", probeErr)
				return nil, err
			}
			err = ErrAlreadyReturned
			return nil, err
		}
		err = fmt.Errorf("close issue: %w", scanErr)
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies + 1 WHERE id = $1`,
		closed.BookID); err != nil {
		return nil, fmt.Errorf("increment availability: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit return: %w", err)
	}
	return &closed, nil
}

// FindByID fetches an issue by ID.
func (r *IssueRepository) FindByID(ctx context.Context, id int64) (*models.Issue, error) {
	const query = `SELECT id, student_id, book_id, issue_date, return_date FROM issues WHERE id = $1`
	var issue models.Issue
	if err := r.db.GetContext(ctx, &issue, query, id); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListByStudent returns the lending history of a student.
func (r *IssueRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Issue, error) {
	const query = `SELECT id, student_id, book_id, issue_date, return_date FROM issues WHERE student_id = $1 ORDER BY id`
	issues := []models.Issue{}
	if err := r.db.SelectContext(ctx, &issues, query, studentID); err != nil {
		return nil, fmt.Errorf("list student issues: %w", err)
	}
	return issues, nil
}

// ListDetailByStudent returns a student's issues with each issued book.
func (r *IssueRepository) ListDetailByStudent(ctx context.Context, studentID int64) ([]models.IssueDetail, error) {
	const query = `SELECT i.id, i.student_id, i.book_id, i.issue_date, i.return_date,
		b.title AS book_title, b.author AS book_author, b.isbn AS book_isbn,
		b.total_copies AS book_total_copies, b.available_copies AS book_available_copies
		FROM issues i
		JOIN books b ON b.id = i.book_id
		WHERE i.student_id = $1
		ORDER BY i.id`
	type row struct {
		models.Issue
		BookTitle           string `db:"book_title"`
		BookAuthor          string `db:"book_author"`
		BookISBN            string `db:"book_isbn"`
		BookTotalCopies     int    `db:"book_total_copies"`
		BookAvailableCopies int    `db:"book_available_copies"`
	}
	rows := []row{}
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student issue details: %w", err)
	}
	details := make([]models.IssueDetail, 0, len(rows))
	for _, item := range rows {
		details = append(details, models.IssueDetail{
			Issue: item.Issue,
			Book: models.Book{
				ID:              item.BookID,
				Title:           item.BookTitle,
				Author:          item.BookAuthor,
				ISBN:            item.BookISBN,
				TotalCopies:     item.BookTotalCopies,
				AvailableCopies: item.BookAvailableCopies,
			},
		})
	}
	return details, nil
}
