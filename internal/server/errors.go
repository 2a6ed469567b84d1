package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/asimons81/guide-generator/internal/drafting"
	"github.com/asimons81/guide-generator/internal/imageplan"
	"github.com/asimons81/guide-generator/internal/strategy"
	"github.com/asimons81/guide-generator/internal/workflow"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error:
// unknown session 404, blocked stage transition 409, bad input 400,
// upstream generation trouble 502.
func HTTPStatus(err error) int {
	var notFound *workflow.NotFoundError
	var stageErr *workflow.StageError
	var fieldErrs validator.ValidationErrors
	var validationErr *ErrValidation
	var outlineErr *strategy.OutlineError
	var strategyGen *strategy.GenerationError
	var strategyParse *strategy.ParseError
	var draftGen *drafting.GenerationError
	var planGen *imageplan.GenerationError
	var planParse *imageplan.ParseError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &stageErr):
		return http.StatusConflict
	case errors.As(err, &fieldErrs), errors.As(err, &validationErr), errors.As(err, &outlineErr):
		return http.StatusBadRequest
	case errors.As(err, &strategyGen), errors.As(err, &strategyParse),
		errors.As(err, &draftGen), errors.As(err, &planGen), errors.As(err, &planParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
