package order

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"orderservice/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Submit handles POST /orders
func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeOrderRequest(r.Body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			details := make([]httpx.ErrorDetail, len(verr.Violations))
			for i, v := range verr.Violations {
				details[i] = httpx.ErrorDetail{Field: v.Field, Message: v.Message}
			}
			httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order request", details)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON order request", nil)
		return
	}

	o, err := h.service.SubmitOrder(r.Context(), req, httpx.UserIDFrom(r))
	if err != nil {
		log.Printf("submit order failed request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, o, nil)
}

// List handles GET /orders
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		log.Printf("list orders failed request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, orders, map[string]interface{}{"total": len(orders)})
}

// Get handles GET /orders/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		id = strings.TrimPrefix(r.URL.Path, "/orders/")
	}
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	o, err := h.service.GetOrder(r.Context(), id, httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
			return
		}
		log.Printf("get order failed request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, o, nil)
}
