package model

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderFailed    OrderStatus = "failed"
)

// WebhookEvent is the typed form of a verified webhook payload.
// CorrelationKey may be empty: webhooks for payments that never carried
// an order_correlation_key are accepted but change no order state.
type WebhookEvent struct {
	Event          string `json:"event"`
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	CorrelationKey string `json:"order_correlation_key"`
	Email          string `json:"email"`
}
