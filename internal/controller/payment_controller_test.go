package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/adapters"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/service"
)

type stubGateway struct {
	chargeResp *model.GatewayResponse
}

func (g *stubGateway) VerifyTransaction(ctx context.Context, reference string) (*model.GatewayResponse, error) {
	return &model.GatewayResponse{Status: true, Data: model.GatewayData{Status: "success"}}, nil
}

func (g *stubGateway) InitializeTransaction(ctx context.Context, req model.InitializeRequest) (*model.GatewayResponse, error) {
	return &model.GatewayResponse{Status: true, Data: model.GatewayData{Reference: req.Reference}}, nil
}

func (g *stubGateway) ChargeAuthorization(ctx context.Context, req model.ChargeRequest) (*model.GatewayResponse, error) {
	return g.chargeResp, nil
}

func (g *stubGateway) SubmitChallenge(ctx context.Context, reference string, challenge model.ChallengeType, value string) (*model.GatewayResponse, error) {
	return g.chargeResp, nil
}

type stubCredentialRepo struct{}

func (stubCredentialRepo) Create(ctx context.Context, c *model.StoredCredential) error { return nil }
func (stubCredentialRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.StoredCredential, error) {
	return nil, nil
}
func (stubCredentialRepo) FindByToken(ctx context.Context, token string) (*model.StoredCredential, error) {
	return nil, nil
}
func (stubCredentialRepo) Delete(ctx context.Context, id int64) error { return nil }

type recordingReconciler struct {
	keys []string
}

func (r *recordingReconciler) ApplyAsync(correlationKey string, status model.OrderStatus) <-chan error {
	r.keys = append(r.keys, correlationKey)
	done := make(chan error, 1)
	done <- nil
	return done
}

func newTestRouter(gateway *stubGateway, secret string) (*chi.Mux, *recordingReconciler) {
	verifier := adapters.NewSignatureVerifier(secret)
	reconciler := &recordingReconciler{}
	svc := service.NewPaymentService(gateway, verifier, stubCredentialRepo{}, reconciler, "https://example.com/cb")
	c := NewPaymentController(svc)

	r := chi.NewRouter()
	r.Post("/payments/charge", c.ChargeStoredCard)
	r.Post("/payments/charge/submit", c.SubmitChallenge)
	r.Post("/webhooks/paystack", c.HandleWebhook)
	r.Get("/payments/health", c.GetHealthCheck)
	return r, reconciler
}

func TestChargeEndpointReturnsClassifiedOutcome(t *testing.T) {
	gateway := &stubGateway{
		chargeResp: &model.GatewayResponse{
			Status: true,
			Data:   model.GatewayData{Status: "send_otp", Reference: "TXN1"},
		},
	}
	router, _ := newTestRouter(gateway, "sk_test")

	body, _ := json.Marshal(map[string]interface{}{
		"amount": 50000, "email": "payer@example.com", "token": "AUTH_1", "reference": "TXN1",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/charge", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var outcome model.ChargeOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, model.StateChallengeRequired, outcome.State)
	assert.Equal(t, model.ChallengeOtp, outcome.PendingAction)
}

func TestSubmitEndpointRejectsUnknownChallengeType(t *testing.T) {
	router, _ := newTestRouter(&stubGateway{}, "sk_test")

	body, _ := json.Marshal(map[string]string{"reference": "TXN1", "type": "phone", "value": "1234"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/charge/submit", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookTamperedBodyIs400AndNoReconciliation(t *testing.T) {
	router, reconciler := newTestRouter(&stubGateway{}, "sk_test")
	verifier := adapters.NewSignatureVerifier("sk_test")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN1","status":"success","metadata":{"order_correlation_key":"order-42"}}}`)
	sig := verifier.Sign(body)
	tampered := bytes.Replace(body, []byte("order-42"), []byte("order-66"), 1)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", bytes.NewReader(tampered))
	req.Header.Set("x-paystack-signature", sig)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, reconciler.keys)
}

func TestWebhookWithoutCorrelationKeyIs200NoWrite(t *testing.T) {
	router, reconciler := newTestRouter(&stubGateway{}, "sk_test")
	verifier := adapters.NewSignatureVerifier("sk_test")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN1","status":"success"}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", verifier.Sign(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, reconciler.keys)
}

func TestWebhookWithCorrelationKeySchedulesWrite(t *testing.T) {
	router, reconciler := newTestRouter(&stubGateway{}, "sk_test")
	verifier := adapters.NewSignatureVerifier("sk_test")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN1","status":"success","metadata":{"order_correlation_key":"order-42"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", verifier.Sign(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"order-42"}, reconciler.keys)
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(&stubGateway{}, "sk_test")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
