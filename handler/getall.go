package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/customer-api/store"
)

type customerPage struct {
	Message    string           `json:"message"`
	Data       []map[string]any `json:"data"`
	PageNo     int              `json:"pageNo"`
	Limit      int              `json:"limit"`
	TotalCount int              `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
}

// GetAll lists one page of customers with their addresses merged in.
//
// Pagination is reconstructed on every call: scans replay from the start of
// the table, carrying the continuation key forward until the requested page
// is reached. Earlier pages are scanned and discarded solely to advance the
// key, so a request costs O(pageNo x limit). The walk stops early when the
// table is exhausted, in which case the retained set reflects whatever page
// was current and may be empty.
func (h *Handler) GetAll(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	totalCount, err := h.store.CountCustomers(ctx)
	if err != nil {
		h.logger.Error("failed to count customers", "error", err)
		return serverError()
	}

	limit, limitOK := queryInt(req.QueryStringParameters, "limit", int(totalCount))
	pageNo, pageOK := queryInt(req.QueryStringParameters, "pageNo", 1)
	if !limitOK || !pageOK || limit <= 0 || pageNo <= 0 {
		h.logger.Warn("invalid pagination parameters",
			"limit", req.QueryStringParameters["limit"],
			"pageNo", req.QueryStringParameters["pageNo"],
		)
		return respond(http.StatusBadRequest, messageResponse{
			Message: "limit and pageNo must be positive integers",
		})
	}

	h.logger.Info("listing customers", "limit", limit, "pageNo", pageNo, "totalCount", totalCount)

	var pageItems []map[string]any
	var startKey store.PK
	for currentPage := 1; currentPage <= pageNo; currentPage++ {
		items, nextKey, err := h.store.ListCustomersPage(ctx, int32(limit), startKey)
		if err != nil {
			h.logger.Error("failed to scan customers page", "page", currentPage, "error", err)
			return serverError()
		}
		if currentPage == pageNo {
			pageItems = items
		}
		if nextKey == nil {
			break
		}
		startKey = nextKey
	}

	// Fan out the per-customer address scans; all run independently and any
	// failure fails the whole request with no partial results.
	var wg sync.WaitGroup
	errs := make(chan error, len(pageItems))
	for _, item := range pageItems {
		wg.Add(1)
		go func(item map[string]any) {
			defer wg.Done()

			customerID, _ := item["customerId"].(string)
			addresses, err := h.store.AddressesByCustomer(ctx, customerID)
			if err != nil {
				errs <- fmt.Errorf("customer %s: %w", customerID, err)
				return
			}
			if addresses == nil {
				addresses = []map[string]any{}
			}
			item["addresses"] = addresses
		}(item)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		h.logger.Error("failed to fetch addresses for page", "error", err)
		return serverError()
	}

	totalPages := (int(totalCount) + limit - 1) / limit

	if len(pageItems) == 0 {
		h.logger.Warn("no records for requested page", "pageNo", pageNo)
		return respond(http.StatusNotFound, customerPage{
			Message:    "No records found for the requested page",
			Data:       []map[string]any{},
			PageNo:     pageNo,
			Limit:      limit,
			TotalCount: int(totalCount),
			TotalPages: totalPages,
		})
	}

	h.logger.Info("returning customer page",
		"pageNo", pageNo,
		"limit", limit,
		"totalCount", totalCount,
		"results", len(pageItems),
	)
	return respond(http.StatusOK, customerPage{
		Message:    "Customers fetched successfully",
		Data:       pageItems,
		PageNo:     pageNo,
		Limit:      limit,
		TotalCount: int(totalCount),
		TotalPages: totalPages,
	})
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent. A present but unparseable value reports !ok.
func queryInt(params map[string]string, key string, def int) (int, bool) {
	raw, present := params[key]
	if !present || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
