package lab

import "errors"

var (
	// ErrNotFound is returned when no record exists for the requested course.
	ErrNotFound = errors.New("no lab found for course")
	// ErrNotReady is returned when a record exists but the lab is not running
	// with an access URL, even after an attempted resume.
	ErrNotReady = errors.New("lab is not ready")
)
