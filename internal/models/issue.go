package models

import "time"

// Issue records a book lent to a student. return_date stays null while the
// book is outstanding; setting it is a one-way transition.
type Issue struct {
	ID         int64      `db:"id" json:"id"`
	StudentID  int64      `db:"student_id" json:"student_id"`
	BookID     int64      `db:"book_id" json:"book_id"`
	IssueDate  time.Time  `db:"issue_date" json:"issue_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date"`
}

// IssueDetail carries the issued book alongside the lending record.
type IssueDetail struct {
	Issue
	Book Book `json:"book"`
}
