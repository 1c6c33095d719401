package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/customer-api/customer"
	"github.com/jacentio/customer-api/store"
)

type createResponse struct {
	Message    string `json:"message"`
	CustomerID string `json:"customerId"`
}

// Create validates the request body, writes the customer row, then writes
// one address row per entry. The writes are sequential and non-transactional:
// a failure mid-sequence leaves the customer row and any earlier address
// rows behind with no rollback.
func (h *Handler) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := parseBody(req.Body)
	list, _ := body["addresses"].([]any)

	defects := customer.ValidateCustomer(body)
	defects = append(defects, customer.ValidateAddresses(list)...)
	if len(defects) > 0 {
		h.logger.Warn("customer validation failed", "missingFields", defects)
		return respond(http.StatusBadRequest, validationResponse{
			Message:       "Validation failed for customer",
			MissingFields: defects,
		})
	}

	customerID := h.newID()
	now := time.Now().UTC().Format(time.RFC3339)

	// Safe assertions: validation guarantees the field types.
	cust := &store.Customer{
		CustomerID:   customerID,
		Name:         body["name"].(string),
		Age:          body["age"].(float64),
		MobileNumber: body["mobileNumber"].(string),
		CreatedAt:    now,
	}
	if err := h.store.PutCustomer(ctx, cust); err != nil {
		h.logger.Error("failed to write customer", "customerId", customerID, "error", err)
		return serverError()
	}

	for _, entry := range list {
		fields := entry.(map[string]any)
		addr := &store.Address{
			AddressID:   h.newID(),
			CustomerID:  customerID,
			AddressType: fields["addressType"].(string),
			Address:     fields["address"].(string),
			City:        fields["city"].(string),
			Town:        fields["town"].(string),
			Zipcode:     fields["zipcode"].(string),
			CreatedAt:   now,
		}
		if err := h.store.PutAddress(ctx, addr); err != nil {
			h.logger.Error("failed to write address",
				"customerId", customerID,
				"addressType", addr.AddressType,
				"error", err,
			)
			return serverError()
		}
	}

	h.logger.Info("customer created", "customerId", customerID, "addresses", len(list))
	return respond(http.StatusCreated, createResponse{
		Message:    "Customer created",
		CustomerID: customerID,
	})
}
