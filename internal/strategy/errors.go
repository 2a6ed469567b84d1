package strategy

import "fmt"

// GenerationError represents a failed generation-service call
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed or unparseable generation response.
// Raw carries the full response text so the user can inspect what the model
// actually returned.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// OutlineError represents an invalid user-edited outline at the refine stage
type OutlineError struct {
	Message string
	Cause   error
}

func (e *OutlineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid outline: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid outline: %s", e.Message)
}

func (e *OutlineError) Unwrap() error {
	return e.Cause
}
