package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing left to do on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error logs err and writes an error body with a short message
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	logError(ctx, status, message, err)
	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// Decode reads a JSON body into dst and rejects unknown fields
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Join(entity.ErrInvalidParameter, err)
	}
	return nil
}

// HandleError maps a domain error to its HTTP status and writes it
func HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	var badOutput *entity.BadUpstreamOutputError
	if errors.As(err, &badOutput) {
		logError(ctx, http.StatusBadRequest, "bad upstream output", err)
		JSON(w, http.StatusBadRequest, entity.ErrorResponse{
			Error:     "Failed to parse generated content",
			Message:   badOutput.Error(),
			RawOutput: badOutput.Raw,
		})
		return
	}

	var rateErr *entity.RateLimitError
	if errors.As(err, &rateErr) {
		w.Header().Set("Retry-After", strconv.FormatInt(rateErr.RetryAfter, 10))
		Error(ctx, w, http.StatusTooManyRequests, rateErr.Error(), err)
		return
	}

	switch {
	case errors.Is(err, entity.ErrValidation):
		Error(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, entity.ErrUnauthorized):
		Error(ctx, w, http.StatusUnauthorized, unauthorizedMessage(err), err)
	case errors.Is(err, entity.ErrForbidden):
		Error(ctx, w, http.StatusForbidden, "insufficient permissions", err)
	case errors.Is(err, entity.ErrNotFound):
		Error(ctx, w, http.StatusNotFound, notFoundMessage(err), err)
	case errors.Is(err, entity.ErrConflict):
		Error(ctx, w, http.StatusConflict, conflictMessage(err), err)
	case errors.Is(err, entity.ErrRateLimited):
		Error(ctx, w, http.StatusTooManyRequests, "too many requests, try again later", err)
	case errors.Is(err, entity.ErrUpstreamTimeout):
		Error(ctx, w, http.StatusGatewayTimeout, "text generation service timed out", err)
	case errors.Is(err, entity.ErrUpstream):
		Error(ctx, w, http.StatusBadGateway, "text generation service is unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		Error(ctx, w, http.StatusGatewayTimeout, "request timed out", err)
	default:
		Error(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoAnswers):
		return "No answers found for this request"
	case errors.Is(err, entity.ErrProposalNotFound):
		return "No proposal found for this request"
	case errors.Is(err, entity.ErrComparisonNotFound):
		return "No comparison found for this request"
	case errors.Is(err, entity.ErrRequestNotFound):
		return "Request not found"
	case errors.Is(err, entity.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, entity.ErrTokenNotFound):
		return "Invalid or expired token"
	default:
		return "resource not found"
	}
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, entity.ErrInvalidCredentials) {
		return "Invalid email or password"
	}
	return "authentication required"
}

func conflictMessage(err error) string {
	if errors.Is(err, entity.ErrEmailExists) {
		return "User with this email already exists"
	}
	return "conflict"
}

func logError(ctx context.Context, status int, message string, err error) {
	fields := []zap.Field{zap.Int("status", status)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, fields...)
	} else {
		ctxzap.Warn(ctx, message, fields...)
	}
}
