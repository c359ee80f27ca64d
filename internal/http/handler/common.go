package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/service"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: verr.Fields,
	})
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusBadGateway:
		return domain.ErrorTypeGenerationContract
	case http.StatusServiceUnavailable:
		return domain.ErrorTypeUpstreamUnavailable
	case http.StatusGatewayTimeout:
		return domain.ErrorTypeTimeout
	default:
		return domain.ErrorTypeInternal
	}
}

// respondServiceError maps service and pipeline errors to HTTP responses.
// what names the failed action in the log line and the 500 message.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, what string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidationError(w, verr)
	case service.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, "Estimate not found")
	case errors.Is(err, domain.ErrGenerationContract):
		logger.Warn(what+": model answer unusable", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "The model returned an answer that could not be used. Please try again.")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logger.Warn(what+": model unavailable", zap.Error(err))
		respondWithError(w, http.StatusServiceUnavailable, "The model service is unavailable. Please try again later.")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn(what+": timed out", zap.Error(err))
		respondWithError(w, http.StatusGatewayTimeout, "The request took too long")
	case errors.Is(err, context.Canceled):
		logger.Info(what+": cancelled", zap.Error(err))
		respondWithError(w, http.StatusServiceUnavailable, "The request was cancelled")
	default:
		logger.Error(what, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to "+what)
	}
}

// decodeJSON reads one JSON document from the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
