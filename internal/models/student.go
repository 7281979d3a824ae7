package models

import "time"

// Student represents a learner registered in the institution.
type Student struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	DOB           time.Time `db:"dob" json:"dob"`
}

// StudentDetail is the read-expanded view returned by the single-student
// endpoint: the base record plus everything that hangs off it.
type StudentDetail struct {
	Student
	Classrooms []Classroom   `json:"classrooms"`
	Issues     []IssueDetail `json:"issues"`
	Results    []ExamResult  `json:"results"`
	Fees       []ExamFee     `json:"fees"`
}
