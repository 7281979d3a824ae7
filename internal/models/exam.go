package models

import "time"

// ExamResult stores a student's marks for one exam. Marks are recorded
// as-is; the contract imposes no relation between obtained and max.
type ExamResult struct {
	ID            int64   `db:"id" json:"id"`
	StudentID     int64   `db:"student_id" json:"student_id"`
	ExamName      string  `db:"exam_name" json:"exam_name"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `db:"max_marks" json:"max_marks"`
}

// ExamFee is a charge against a student, unpaid until toggled via update.
type ExamFee struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	Amount    float64   `db:"amount" json:"amount"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
	Paid      bool      `db:"paid" json:"paid"`
}
