package service

import "errors"

var (
	// ErrAttemptNotFound is returned when an operation references an attempt
	// that does not exist.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptSubmitted is returned when a mutation targets an attempt that
	// has already been submitted.
	ErrAttemptSubmitted = errors.New("attempt already submitted")
	// ErrMaxAttemptsReached is returned when a student has used every allowed
	// attempt for an exercise set.
	ErrMaxAttemptsReached = errors.New("maximum attempts reached for this exercise set")
	// ErrQuestionNotInAttempt is returned when an answer references a question
	// outside the attempt's exercise set.
	ErrQuestionNotInAttempt = errors.New("question does not belong to the attempt's exercise set")
)
