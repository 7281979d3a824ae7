package models

// Classroom groups students under a class teacher. Membership lives in the
// classroom_students join table and is managed through the roster endpoints.
type Classroom struct {
	ID           int64  `db:"id" json:"id"`
	ClassName    string `db:"class_name" json:"class_name"`
	Std          string `db:"std" json:"std"`
	Sec          string `db:"sec" json:"sec"`
	ClassTeacher string `db:"class_teacher" json:"class_teacher"`
}
