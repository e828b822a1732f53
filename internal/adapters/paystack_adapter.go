package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

// challengeEndpoints pins each challenge type to its gateway path and the
// field name the value travels under. Closed set.
var challengeEndpoints = map[model.ChallengeType]struct {
	path  string
	field string
}{
	model.ChallengePin:      {path: "/charge/submit_pin", field: "pin"},
	model.ChallengeOtp:      {path: "/charge/submit_otp", field: "otp"},
	model.ChallengeBirthday: {path: "/charge/submit_birthday", field: "birthday"},
}

type PaystackAdapter struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackAdapter(secretKey string, baseURL string) *PaystackAdapter {
	return &PaystackAdapter{
		secretKey: secretKey,
		baseURL:   baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *PaystackAdapter) VerifyTransaction(ctx context.Context, reference string) (*model.GatewayResponse, error) {
	if reference == "" {
		return nil, &model.RejectedInputError{Field: "reference", Reason: "must not be empty"}
	}
	return p.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, "verify")
}

func (p *PaystackAdapter) InitializeTransaction(ctx context.Context, req model.InitializeRequest) (*model.GatewayResponse, error) {
	if err := validateAmountEmail(req.Amount, req.Email); err != nil {
		return nil, err
	}
	if req.Reference == "" {
		return nil, &model.RejectedInputError{Field: "reference", Reason: "must not be empty"}
	}

	body := map[string]interface{}{
		"email":        req.Email,
		"amount":       req.Amount,
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
	}
	if req.CorrelationKey != "" {
		body["metadata"] = map[string]string{"order_correlation_key": req.CorrelationKey}
	}

	return p.call(ctx, http.MethodPost, "/transaction/initialize", body, "initialize")
}

func (p *PaystackAdapter) ChargeAuthorization(ctx context.Context, req model.ChargeRequest) (*model.GatewayResponse, error) {
	if err := validateAmountEmail(req.Amount, req.Email); err != nil {
		return nil, err
	}
	if req.Token == "" {
		return nil, &model.RejectedInputError{Field: "token", Reason: "must not be empty"}
	}
	if req.Reference == "" {
		return nil, &model.RejectedInputError{Field: "reference", Reason: "must not be empty"}
	}

	body := map[string]interface{}{
		"email":              req.Email,
		"amount":             req.Amount,
		"reference":          req.Reference,
		"authorization_code": req.Token,
	}
	if req.CorrelationKey != "" {
		body["metadata"] = map[string]string{"order_correlation_key": req.CorrelationKey}
	}

	return p.call(ctx, http.MethodPost, "/charge", body, "charge")
}

func (p *PaystackAdapter) SubmitChallenge(ctx context.Context, reference string, challenge model.ChallengeType, value string) (*model.GatewayResponse, error) {
	endpoint, ok := challengeEndpoints[challenge]
	if !ok {
		return nil, &model.RejectedInputError{Field: "type", Reason: "unknown challenge type: " + string(challenge)}
	}
	if reference == "" {
		return nil, &model.RejectedInputError{Field: "reference", Reason: "must not be empty"}
	}
	if value == "" {
		return nil, &model.RejectedInputError{Field: endpoint.field, Reason: "must not be empty"}
	}

	body := map[string]interface{}{
		endpoint.field: value,
		"reference":    reference,
	}

	return p.call(ctx, http.MethodPost, endpoint.path, body, "submit_"+endpoint.field)
}

// call issues one bearer-authenticated request and decodes the envelope.
// A non-2xx status with a parseable body is still returned as a response:
// the gateway reports declines with actionable detail on error statuses.
// Only network-level failures and undecodable bodies become TransportError.
func (p *PaystackAdapter) call(ctx context.Context, method, path string, body interface{}, op string) (*model.GatewayResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request failed: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request failed: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &model.TransportError{Op: op, Err: err}
	}

	resp, err := model.DecodeGatewayResponse(raw)
	if err != nil {
		// Outcome indeterminate: the provider answered but with a body
		// this service cannot interpret.
		return nil, &model.TransportError{Op: op, Err: fmt.Errorf("undecodable provider response (http %d): %w", res.StatusCode, err)}
	}

	return resp, nil
}

func validateAmountEmail(amount int64, email string) error {
	if amount <= 0 {
		return &model.RejectedInputError{Field: "amount", Reason: "must be a positive amount in minor units"}
	}
	if email == "" {
		return &model.RejectedInputError{Field: "email", Reason: "must not be empty"}
	}
	return nil
}
