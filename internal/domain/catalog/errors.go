package catalog

import "errors"

var (
	// ErrMineralTypeNotFound indicates the mineral type doesn't exist.
	ErrMineralTypeNotFound = errors.New("mineral type not found")
	// ErrStageNotFound indicates the stage doesn't exist for the mineral type.
	ErrStageNotFound = errors.New("stage not found")
	// ErrQuestionNotFound indicates the question doesn't exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidInput indicates catalog data failed integrity checks.
	ErrInvalidInput = errors.New("invalid catalog input")
)
