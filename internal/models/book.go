package models

// Book is a library title with a physical copy count. available_copies is
// maintained by the issue/return flow and never exceeds total_copies.
type Book struct {
	ID              int64  `db:"id" json:"id"`
	Title           string `db:"title" json:"title"`
	Author          string `db:"author" json:"author"`
	ISBN            string `db:"isbn" json:"isbn"`
	TotalCopies     int    `db:"total_copies" json:"total_copies"`
	AvailableCopies int    `db:"available_copies" json:"available_copies"`
}
