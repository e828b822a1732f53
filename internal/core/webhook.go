package core

import (
	"encoding/json"
	"strings"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
		Metadata struct {
			OrderCorrelationKey string `json:"order_correlation_key"`
		} `json:"metadata"`
	} `json:"data"`
}

// ParseEvent decodes an already-verified webhook body. Never call this on an
// unverified payload. A missing order_correlation_key is a normal outcome:
// the delivery concerns a payment this service is not tracking an order for.
func ParseEvent(verifiedRaw []byte) (*model.WebhookEvent, error) {
	var payload webhookPayload
	if err := json.Unmarshal(verifiedRaw, &payload); err != nil {
		return nil, &model.MalformedPayloadError{Err: err}
	}

	return &model.WebhookEvent{
		Event:          payload.Event,
		Reference:      payload.Data.Reference,
		Status:         payload.Data.Status,
		CorrelationKey: payload.Data.Metadata.OrderCorrelationKey,
		Email:          payload.Data.Customer.Email,
	}, nil
}

var failureSignals = map[string]bool{
	"charge.failed":    true,
	"charge.reversed":  true,
	"refund.processed": true,
	"failed":           true,
	"reversed":         true,
}

// OrderStatusFor maps (event, status) to the order status, success signals
// first, then failure/reversal signals, everything else pending. Pure, so
// replaying a terminal event yields the same status again.
func OrderStatusFor(event *model.WebhookEvent) model.OrderStatus {
	name := strings.ToLower(event.Event)
	status := strings.ToLower(event.Status)

	if name == "charge.success" || status == "success" {
		return model.OrderConfirmed
	}
	if failureSignals[name] || failureSignals[status] {
		return model.OrderFailed
	}
	return model.OrderPending
}
