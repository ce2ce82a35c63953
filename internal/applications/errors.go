package applications

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotScored         = errors.New("scoring not completed")
	ErrNoPlan            = errors.New("no training plan exists yet")
	ErrLLMUnavailable    = errors.New("llm not available")
)
