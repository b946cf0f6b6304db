package util

import "errors"

var (
	ErrEmptyDocument        = errors.New("document has no extractable text")
	ErrUnreadableDocument   = errors.New("document could not be read")
	ErrEmptyScene           = errors.New("scene description must not be empty")
	ErrInvalidOption        = errors.New("invalid image option")
	ErrQuestionCount        = errors.New("question count out of range")
	ErrQuizNotFound         = errors.New("quiz session not found")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrQuizNotSubmitted     = errors.New("quiz not submitted yet")
	ErrInvalidAnswer        = errors.New("invalid answer")
	ErrUpstream             = errors.New("generation service error")
)
