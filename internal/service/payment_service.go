package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/core"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/ports"
)

// OrderReconciler schedules a settlement-status write without blocking the
// caller. The channel reports the write's outcome for diagnostics.
type OrderReconciler interface {
	ApplyAsync(correlationKey string, status model.OrderStatus) <-chan error
}

type PaymentService struct {
	gateway     ports.IGatewayClient
	verifier    ports.ISignatureVerifier
	credentials ports.ICredentialRepository
	reconciler  OrderReconciler
	callbackURL string
}

func NewPaymentService(gateway ports.IGatewayClient, verifier ports.ISignatureVerifier,
	credentials ports.ICredentialRepository, reconciler OrderReconciler, callbackURL string) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		verifier:    verifier,
		credentials: credentials,
		reconciler:  reconciler,
		callbackURL: callbackURL,
	}
}

// AddCard verifies a completed transaction by reference and stores the card
// token the gateway attached to it.
func (s *PaymentService) AddCard(ctx context.Context, ownerID string, reference string) (*model.StoredCredential, error) {
	if ownerID == "" {
		return nil, &model.RejectedInputError{Field: "user_id", Reason: "must not be empty"}
	}

	// Add gateway-specific timeout
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !resp.Status {
		return nil, fmt.Errorf("failed to verify transaction %s: %s", reference, resp.Message)
	}

	auth := resp.Data.Authorization
	if auth == nil || auth.AuthorizationCode == "" {
		return nil, errors.New("authorization details not found in gateway response")
	}

	credential := model.StoredCredential{
		OwnerID:          ownerID,
		Token:            auth.AuthorizationCode,
		MaskedCardNumber: "****-****-****-" + auth.Last4,
		CardType:         auth.CardType,
	}

	if err := s.credentials.Create(ctx, &credential); err != nil {
		return nil, err
	}

	return &credential, nil
}

func (s *PaymentService) GetUserCards(ctx context.Context, ownerID string) ([]model.StoredCredential, error) {
	return s.credentials.FindByOwner(ctx, ownerID)
}

func (s *PaymentService) DeleteCard(ctx context.Context, id int64) error {
	return s.credentials.Delete(ctx, id)
}

// InitializePayment starts a fresh checkout, minting a reference when the
// caller supplied none and tagging the transaction with the correlation key
// so the settlement webhook can be tied back to the order.
func (s *PaymentService) InitializePayment(ctx context.Context, req model.InitializeRequest) (*model.GatewayResponse, error) {
	if req.Reference == "" {
		req.Reference = "TXN-" + uuid.NewString()
	}
	if req.CallbackURL == "" {
		req.CallbackURL = s.callbackURL
	}

	// Add gateway-specific timeout
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.gateway.InitializeTransaction(ctx, req)
}

// ChargeStoredCard charges a saved token and classifies the result. The
// caller always receives one of the four charge states; transport failures
// surface as Unknown, never as a raw error to the end user.
func (s *PaymentService) ChargeStoredCard(ctx context.Context, req model.ChargeRequest) (*model.ChargeOutcome, error) {
	if req.Reference == "" {
		req.Reference = "TXN-" + uuid.NewString()
	}

	// Add gateway-specific timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.gateway.ChargeAuthorization(ctx, req)
	if err != nil && !model.IsTransport(err) {
		// Validation failures fail fast, before any classification
		return nil, err
	}

	outcome := core.Classify(resp, err)
	return &outcome, nil
}

// SubmitChallenge forwards a PIN/OTP/birthday value collected from the user
// for a charge the bank put on hold. The challenge type is validated against
// the closed set before any network call.
func (s *PaymentService) SubmitChallenge(ctx context.Context, submission model.ChallengeSubmission) (*model.ChargeOutcome, error) {
	challenge, err := model.ParseChallengeType(submission.Type)
	if err != nil {
		return nil, err
	}
	if submission.Reference == "" {
		return nil, &model.RejectedInputError{Field: "reference", Reason: "must not be empty"}
	}
	if submission.Value == "" {
		return nil, &model.RejectedInputError{Field: "value", Reason: "must not be empty"}
	}

	// Add gateway-specific timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.gateway.SubmitChallenge(ctx, submission.Reference, challenge, submission.Value)
	if err != nil && !model.IsTransport(err) {
		return nil, err
	}

	outcome := core.Classify(resp, err)
	return &outcome, nil
}

// HandleWebhook authenticates and applies one settlement notification.
// Returns whether a reconciliation was scheduled and a short reason.
// Reconciliation outcomes never affect the acknowledgment to the provider.
func (s *PaymentService) HandleWebhook(ctx context.Context, raw []byte, signature string) (bool, string, error) {
	// Verify over the raw bytes before any parsing. Fails closed.
	if !s.verifier.Verify(raw, signature) {
		return false, "signature mismatch", model.ErrSignatureInvalid
	}

	event, err := core.ParseEvent(raw)
	if err != nil {
		return false, "unparseable payload", err
	}

	if event.CorrelationKey == "" {
		// Delivery for a payment with no tracked order. Accepted, no-op.
		return false, "no order correlation key on event", nil
	}

	status := core.OrderStatusFor(event)
	s.reconciler.ApplyAsync(event.CorrelationKey, status)

	return true, fmt.Sprintf("order %s -> %s", event.CorrelationKey, status), nil
}
