package services

import "errors"

var (
	// ErrValidation marks input that breaks a field constraint. The wrapped message names the fields.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidID marks an identifier that is not a well-formed ObjectID.
	ErrInvalidID = errors.New("invalid id")
	// ErrCommentNotFound is returned when a well-formed id matches no comment.
	ErrCommentNotFound = errors.New("comment not found")
)
