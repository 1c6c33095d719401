package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/customer-api/store"
)

type customerResponse struct {
	CustomerID   string           `json:"customerId"`
	Name         string           `json:"name"`
	Age          float64          `json:"age"`
	MobileNumber string           `json:"mobileNumber"`
	Addresses    []map[string]any `json:"addresses"`
}

// Get fetches a single customer by id and merges in every address row whose
// customerId matches.
func (h *Handler) Get(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	customerID := req.PathParameters["customerId"]
	if customerID == "" {
		return respond(http.StatusBadRequest, messageResponse{Message: "Missing customerId in path"})
	}

	cust, err := h.store.GetCustomer(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		return respond(http.StatusNotFound, messageResponse{Message: "Customer not found"})
	}
	if err != nil {
		h.logger.Error("failed to fetch customer", "customerId", customerID, "error", err)
		return serverError()
	}

	addresses, err := h.store.AddressesByCustomer(ctx, customerID)
	if err != nil {
		h.logger.Error("failed to fetch addresses", "customerId", customerID, "error", err)
		return serverError()
	}
	if addresses == nil {
		addresses = []map[string]any{}
	}

	return respond(http.StatusOK, customerResponse{
		CustomerID:   cust.CustomerID,
		Name:         cust.Name,
		Age:          cust.Age,
		MobileNumber: cust.MobileNumber,
		Addresses:    addresses,
	})
}
