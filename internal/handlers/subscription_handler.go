package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pg-backend/internal/middleware"
	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// CreateOrder opens a Razorpay order for a subscription plan.
// POST /api/subscriptions/orders
func (h *SubscriptionHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CreateSubscriptionOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.subscriptions.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

// Verify checks the checkout callback signature and marks the order paid.
// POST /api/subscriptions/verify
func (h *SubscriptionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifySubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.subscriptions.VerifyPayment(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrSignatureMismatch) {
			utils.Error(w, http.StatusBadRequest, "Payment verification failed")
			return
		}
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// Webhook receives Razorpay server-to-server events. Only the signature is
// checked here; order state transitions happen through Verify.
// POST /api/subscriptions/webhook
func (h *SubscriptionHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.subscriptions.VerifyWebhook(body, signature) {
		utils.Error(w, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Webhook received"})
}

// List returns the caller's subscription orders.
// GET /api/subscriptions/orders
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	orders, err := h.subscriptions.ListOrders(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}
