// Package handler implements the API Gateway Lambda handlers for the
// customer API: create, get-one, get-all, and update.
//
// Handlers never return a non-nil error to the Lambda runtime; every
// failure is converted to a status code and JSON body at this boundary.
// Store errors are logged in full and surfaced to callers only as the
// generic 500 response.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/jacentio/customer-api/store"
)

// Handler holds the process-wide dependencies shared by the Lambda
// entrypoints. It carries no per-request state; one instance is built at
// startup and reused across invocations.
type Handler struct {
	store  *store.Store
	logger *slog.Logger
	newID  func() string
}

// NewHandler creates a new Handler. A nil logger defaults to slog.Default().
func NewHandler(s *store.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
		newID:  uuid.NewString,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields"`
}

// respond marshals payload into an API Gateway response.
func respond(status int, payload any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return serverError()
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
	}, nil
}

// serverError is the generic 500 response. The original error is logged by
// the caller and never echoed to the client.
func serverError() (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message":"Internal Server Error"}`,
	}, nil
}

// parseBody decodes a JSON request body. Absent or malformed bodies decode
// to an empty object so validation reports per-field defects instead of a
// parse failure.
func parseBody(body string) map[string]any {
	parsed := make(map[string]any)
	if body == "" {
		return parsed
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return make(map[string]any)
	}
	return parsed
}
