package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesCustomerAndAddresses(t *testing.T) {
	h, db := newTestHandler(t)

	resp, err := h.Create(context.Background(), jsonRequest(validCreateBody("home", "work")))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)

	var created struct {
		Message    string `json:"message"`
		CustomerID string `json:"customerId"`
	}
	decode(t, resp.Body, &created)
	assert.Equal(t, "Customer created", created.Message)
	assert.NotEmpty(t, created.CustomerID)

	assert.Equal(t, 1, db.Len(customersTable))
	assert.Equal(t, 2, db.Len(addressesTable))
}

func TestCreate_GeneratesFreshIdentifiers(t *testing.T) {
	h, _ := newTestHandler(t)

	first := mustCreate(t, h, validCreateBody("home"))
	second := mustCreate(t, h, validCreateBody("home"))
	assert.NotEqual(t, first, second)
}

func TestCreate_ValidationFailureWritesNothing(t *testing.T) {
	h, db := newTestHandler(t)

	resp, err := h.Create(context.Background(), jsonRequest(map[string]any{
		"name":      "Jo",
		"addresses": []any{addressEntry("home")},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got struct {
		Message       string   `json:"message"`
		MissingFields []string `json:"missingFields"`
	}
	decode(t, resp.Body, &got)
	assert.Equal(t, "Validation failed for customer", got.Message)
	assert.Equal(t, []string{"age (must be a number)", "mobileNumber"}, got.MissingFields)

	assert.Zero(t, db.Len(customersTable))
	assert.Zero(t, db.Len(addressesTable))
}

func TestCreate_MissingAddresses(t *testing.T) {
	h, db := newTestHandler(t)

	for name, body := range map[string]map[string]any{
		"absent":       {"name": "Jo", "age": 31, "mobileNumber": "555"},
		"empty":        {"name": "Jo", "age": 31, "mobileNumber": "555", "addresses": []any{}},
		"not an array": {"name": "Jo", "age": 31, "mobileNumber": "555", "addresses": "home"},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := h.Create(context.Background(), jsonRequest(body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got struct {
				MissingFields []string `json:"missingFields"`
			}
			decode(t, resp.Body, &got)
			assert.Contains(t, got.MissingFields, "addresses (must be a non-empty array)")
			assert.Zero(t, db.Len(customersTable))
		})
	}
}

func TestCreate_DuplicateAddressType(t *testing.T) {
	h, db := newTestHandler(t)

	resp, err := h.Create(context.Background(), jsonRequest(validCreateBody("home", "work", "home")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got struct {
		MissingFields []string `json:"missingFields"`
	}
	decode(t, resp.Body, &got)
	assert.Equal(t, []string{`addresses[2].addressType (duplicate type "home")`}, got.MissingFields)
	assert.Zero(t, db.Len(customersTable))
}

func TestCreate_MalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	resp, err := h.Create(context.Background(), events.APIGatewayProxyRequest{Body: "{not json"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got struct {
		MissingFields []string `json:"missingFields"`
	}
	decode(t, resp.Body, &got)
	assert.Equal(t, []string{
		"name",
		"age (must be a number)",
		"mobileNumber",
		"addresses (must be a non-empty array)",
	}, got.MissingFields)
}

func TestCreate_CustomerWriteFailure(t *testing.T) {
	h, db := newTestHandler(t)
	db.PutErr = errors.New("throughput exceeded")

	resp, err := h.Create(context.Background(), jsonRequest(validCreateBody("home")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, resp.Body)
	assert.Zero(t, db.Len(customersTable))
	assert.Zero(t, db.Len(addressesTable))
}

// A failed address write aborts the sequence but leaves the customer row
// behind: the multi-row write is documented as non-transactional.
func TestCreate_AddressWriteFailureLeavesCustomer(t *testing.T) {
	h, db := newTestHandler(t)
	db.PutErr = errors.New("throughput exceeded")
	db.PutErrTable = addressesTable

	resp, err := h.Create(context.Background(), jsonRequest(validCreateBody("home", "work")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	assert.Equal(t, 1, db.Len(customersTable))
	assert.Zero(t, db.Len(addressesTable))
}
