package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrPackNotFound indicates the question pack could not be loaded.
	ErrPackNotFound = errors.New("question pack not found")
	// ErrEmptyPool prevents a session from starting without questions.
	ErrEmptyPool = errors.New("question pool is empty")
	// ErrAnswerOutOfRange indicates a selected answer index does not exist.
	ErrAnswerOutOfRange = errors.New("answer index out of range")
	// ErrInvalidQuestion is returned when loaded question content breaks a structural rule.
	ErrInvalidQuestion = errors.New("invalid question")
)
