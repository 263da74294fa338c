package service

import "errors"

var (
	// ErrLoadFailure means the collection could not be fetched; the view is
	// left empty with the offline notice.
	ErrLoadFailure = errors.New("load entries failed")
	// ErrMutationFailure means the backend rejected a delete or submission.
	ErrMutationFailure = errors.New("backend rejected change")
	// ErrInvalidInput wraps every validation failure of caller input.
	ErrInvalidInput = errors.New("invalid input")
)
