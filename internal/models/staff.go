package models

import "time"

// Staff represents an employee of the institution. Staff records stand
// alone; nothing references them.
type Staff struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	DOB           time.Time `db:"dob" json:"dob"`
}
