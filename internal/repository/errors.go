package repository

import "errors"

// Guard failures surfaced by conditional writes. Services translate these
// into client-facing conflict responses.
var (
	// ErrBookUnavailable means the availability decrement matched no row:
	// every copy is out (or the book vanished mid-request).
	ErrBookUnavailable = errors.New("no available copies")

	// ErrAlreadyReturned means the return update matched no outstanding issue.
	ErrAlreadyReturned = errors.New("issue already returned")

	// ErrAlreadyEnrolled means the roster insert hit the existing pairing.
	ErrAlreadyEnrolled = errors.New("student already enrolled")

	// ErrNotEnrolled means the roster delete matched no pairing.
	ErrNotEnrolled = errors.New("student not enrolled")

	// ErrStudentReferenced blocks deletion of a student that still owns
	// issues, exam results, or fees.
	ErrStudentReferenced = errors.New("student has dependent records")
)
