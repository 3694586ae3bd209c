package service

import "errors"

// Invalid-state errors: the attempt exists but refuses the operation. These
// map to 4xx responses with no partial mutation.
var (
	ErrAttemptAlreadyCompleted = errors.New("attempt already completed")
	ErrAttemptNotInProgress    = errors.New("attempt is not in progress")
	ErrAttemptNotCompleted     = errors.New("attempt not completed yet")
	ErrAttemptForbidden        = errors.New("attempt belongs to another user")
)

// Missing-reference errors: the request points at rows that do not exist.
// Bulk submissions check the whole batch before writing any row.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("selected option not found")
	ErrOptionMismatch   = errors.New("selected option does not belong to the question")
	ErrTestNotFound     = errors.New("mock test not found")
)

// ErrInvalidQuestion rejects bank questions that do not carry exactly one
// correct option.
var ErrInvalidQuestion = errors.New("question must have exactly one correct option")
