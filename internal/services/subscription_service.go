package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"

	"pg-backend/internal/config"
	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

var ErrSignatureMismatch = errors.New("razorpay signature verification failed")

type SubscriptionService struct {
	orders *repositories.SubscriptionRepository
	client *razorpay.Client
	cfg    *config.Config
}

func NewSubscriptionService(orders *repositories.SubscriptionRepository, cfg *config.Config) *SubscriptionService {
	var client *razorpay.Client
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		client = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	} else {
		log.Printf("[Razorpay] Keys not configured, subscription purchases disabled")
	}
	return &SubscriptionService{orders: orders, client: client, cfg: cfg}
}

// CreateOrder opens a Razorpay order for a subscription plan and records it
// as CREATED. The frontend opens checkout with the returned order.
func (s *SubscriptionService) CreateOrder(ctx context.Context, userID int, req *models.CreateSubscriptionOrderRequest) (*models.SubscriptionOrder, error) {
	if s.client == nil {
		return nil, errors.New("payment gateway is not configured")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	if req.PlanCode == "" {
		return nil, errors.New("plan code is required")
	}

	// Razorpay amounts are in paise
	data := map[string]interface{}{
		"amount":   int64(req.Amount * 100),
		"currency": "INR",
		"receipt":  fmt.Sprintf("sub_%d_%s", userID, req.PlanCode),
	}
	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	razorpayOrderID, ok := body["id"].(string)
	if !ok {
		return nil, errors.New("razorpay order response missing id")
	}

	order := &models.SubscriptionOrder{
		UserID:          userID,
		PlanCode:        req.PlanCode,
		Amount:          req.Amount,
		Currency:        "INR",
		RazorpayOrderID: razorpayOrderID,
		Status:          models.SubscriptionCreated,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyPayment checks the checkout callback signature and marks the order
// paid. A bad signature marks the order failed.
func (s *SubscriptionService) VerifyPayment(ctx context.Context, req *models.VerifySubscriptionRequest) (*models.SubscriptionOrder, error) {
	order, err := s.orders.GetByRazorpayOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	payload := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	if !s.verifySignature(payload, req.RazorpaySignature, s.cfg.Razorpay.KeySecret) {
		if err := s.orders.MarkFailed(ctx, req.RazorpayOrderID); err != nil {
			log.Printf("[Razorpay] Failed to mark order %s failed: %v", req.RazorpayOrderID, err)
		}
		return nil, ErrSignatureMismatch
	}

	if err := s.orders.MarkPaid(ctx, req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		return nil, err
	}

	order.Status = models.SubscriptionPaid
	order.RazorpayPaymentID = req.RazorpayPaymentID
	return order, nil
}

// VerifyWebhook validates a webhook payload signature against the webhook
// secret. The raw request body must be passed unmodified.
func (s *SubscriptionService) VerifyWebhook(body []byte, signature string) bool {
	return s.verifySignature(string(body), signature, s.cfg.Razorpay.WebhookSecret)
}

func (s *SubscriptionService) ListOrders(ctx context.Context, userID int) ([]*models.SubscriptionOrder, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *SubscriptionService) verifySignature(payload, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
