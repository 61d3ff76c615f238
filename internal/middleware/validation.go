package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"interviewai/internal/models"
	"interviewai/internal/utils"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const validatedRequestKey contextKey = "validated_request"

// DefaultMaxBody bounds JSON bodies; base64 audio answers dominate the size.
const DefaultMaxBody int64 = 25 << 20

// request models implement this interface
type Validator interface {
	Validate() error
}

// ValidateRequest decodes the JSON body into T with DefaultMaxBody.
func ValidateRequest[T Validator]() func(http.Handler) http.Handler {
	return ValidateRequestLimit[T](DefaultMaxBody)
}

// ValidateRequestLimit decodes at most maxBytes of JSON into a fresh T,
// runs Validate, and hands the result to the next handler via the context.
func ValidateRequestLimit[T Validator](maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := newRequest[T]()

			body := http.MaxBytesReader(w, r.Body, maxBytes)
			// an empty body decodes to the zero request and is left to Validate
			if err := json.NewDecoder(body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
				writeDecodeError(w, err)
				return
			}

			if err := req.Validate(); err != nil {
				var errResp *models.ErrorResponse
				if !errors.As(err, &errResp) {
					errResp = &models.ErrorResponse{Code: "validation_error", Message: err.Error()}
				}
				utils.JSON(w, http.StatusBadRequest, errResp)
				return
			}

			ctx := context.WithValue(r.Context(), validatedRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newRequest allocates the struct behind T, which is normally a pointer type.
func newRequest[T Validator]() T {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ.Kind() == reflect.Ptr {
		return reflect.New(typ.Elem()).Interface().(T)
	}
	return reflect.New(typ).Interface().(T)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		utils.JSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Code:    "payload_too_large",
			Message: "Request body is too large",
		})
	default:
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_json",
			Message: "Invalid JSON in request body",
		})
	}
}

// GetValidatedRequest retrieves the validated request from context
func GetValidatedRequest[T any](r *http.Request) T {
	return r.Context().Value(validatedRequestKey).(T)
}
