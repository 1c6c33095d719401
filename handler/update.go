package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/customer-api/customer"
	"github.com/jacentio/customer-api/store"
)

type updateResponse struct {
	Message       string         `json:"message"`
	CustomerID    string         `json:"customerId"`
	UpdatedFields map[string]any `json:"updatedFields"`
}

// Update applies a partial update (name, age, mobileNumber) to a customer
// and returns the post-update field values.
func (h *Handler) Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	customerID := req.PathParameters["customerId"]
	if customerID == "" {
		return respond(http.StatusBadRequest, messageResponse{Message: "Missing customerId in path"})
	}

	body := parseBody(req.Body)
	if defects := customer.ValidateCustomer(body); len(defects) > 0 {
		h.logger.Warn("customer validation failed", "customerId", customerID, "missingFields", defects)
		return respond(http.StatusBadRequest, validationResponse{
			Message:       "Validation failed for customer",
			MissingFields: defects,
		})
	}

	updated, err := h.store.UpdateCustomer(ctx, customerID, store.CustomerUpdate{
		Name:         body["name"].(string),
		Age:          body["age"].(float64),
		MobileNumber: body["mobileNumber"].(string),
	})
	if errors.Is(err, store.ErrNotFound) {
		return respond(http.StatusNotFound, messageResponse{Message: "Customer not found"})
	}
	if err != nil {
		h.logger.Error("failed to update customer", "customerId", customerID, "error", err)
		return serverError()
	}

	h.logger.Info("customer updated", "customerId", customerID)
	return respond(http.StatusOK, updateResponse{
		Message:       "Customer updated successfully",
		CustomerID:    customerID,
		UpdatedFields: updated,
	})
}
