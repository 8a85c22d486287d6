package services

import "errors"

var (
	// ErrQuizNotFound is returned when a quiz id matches no stored row.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound is returned when a question id is not among a quiz's questions.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound is returned when an option id is not among a question's options.
	ErrOptionNotFound = errors.New("option not found")
)
