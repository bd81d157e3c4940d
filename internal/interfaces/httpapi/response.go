package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/leaguestanding"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "draft-league-dashboard"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError emits one error item per empty-result reason, or a single item
// carrying err's message otherwise.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	messages := []string{err.Error()}

	var empty *leaguestanding.EmptyResultError
	if errors.As(err, &empty) && len(empty.Reasons) > 0 {
		messages = empty.Reasons
	}

	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope(mapped, err.Error(), messages...))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"
	writeJSON(ctx, w, internalErrorMapping.HTTPStatus, errorEnvelope(internalErrorMapping, msg, msg))
}

func errorEnvelope(mapped mappedError, message string, itemMessages ...string) googleResponseEnvelope {
	items := make([]googleErrorItem, 0, len(itemMessages))
	for _, m := range itemMessages {
		items = append(items, googleErrorItem{
			Domain:  errorDomain,
			Reason:  mapped.Reason,
			Message: m,
		})
	}

	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  items,
		},
	}
}

var internalErrorMapping = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

// errorMappings is checked in order; the first sentinel that matches wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{usecase.ErrFetchFailure, mappedError{http.StatusBadGateway, "fetchFailure", "BAD_GATEWAY"}},
	{usecase.ErrEmptyResult, mappedError{http.StatusUnprocessableEntity, "emptyResult", "FAILED_PRECONDITION"}},
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, rule := range errorMappings {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return internalErrorMapping
}
