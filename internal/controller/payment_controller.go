package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/service"
	"github.com/danielmoisemontezima/zw-paystack-service/pkg/utils"
)

const signatureHeader = "x-paystack-signature"

type PaymentController struct {
	service *service.PaymentService
}

func NewPaymentController(service *service.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

type addCardRequest struct {
	Reference string `json:"reference"`
	UserID    string `json:"user_id"`
}

func (c *PaymentController) AddCard(w http.ResponseWriter, r *http.Request) {
	// Create base context from the HTTP request
	ctx := r.Context()

	// Add payment-specific timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var req addCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Reference == "" || req.UserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request: Missing reference or user_id")
		return
	}

	credential, err := c.service.AddCard(ctx, req.UserID, req.Reference)
	if err != nil {
		utils.RespondWithError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, credential)
}

func (c *PaymentController) GetUserCards(w http.ResponseWriter, r *http.Request) {
	var userId string = r.PathValue("userId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cards, err := c.service.GetUserCards(ctx, userId)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cards)
}

func (c *PaymentController) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid card id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := c.service.DeleteCard(ctx, id); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Card deleted successfully"})
}

type initializeRequest struct {
	UserID         string `json:"user_id"`
	Amount         int64  `json:"amount"`
	Email          string `json:"email"`
	CorrelationKey string `json:"order_correlation_key"`
}

func (c *PaymentController) InitializePayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	resp, err := c.service.InitializePayment(ctx, model.InitializeRequest{
		Amount:         req.Amount,
		Email:          req.Email,
		CorrelationKey: req.CorrelationKey,
	})
	if err != nil {
		utils.RespondWithError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"authorization_url": resp.Data.AuthorizationURL,
		"access_code":       resp.Data.AccessCode,
		"reference":         resp.Data.Reference,
	})
}

func (c *PaymentController) ChargeStoredCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req model.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	outcome, err := c.service.ChargeStoredCard(ctx, req)
	if err != nil {
		utils.RespondWithError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, outcome)
}

func (c *PaymentController) SubmitChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req model.ChallengeSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	outcome, err := c.service.SubmitChallenge(ctx, req)
	if err != nil {
		utils.RespondWithError(w, statusForError(err), err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, outcome)
}

// HandleWebhook acknowledges 200 whether or not the event changed anything,
// 400 on a bad signature, 500 when the body cannot be processed. The
// reconciliation write runs in the background and never delays the response.
func (c *PaymentController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	signature := utils.GetHeader(r.Header, signatureHeader)

	applied, reason, err := c.service.HandleWebhook(ctx, rawBody, signature)
	if err != nil {
		if errors.Is(err, model.ErrSignatureInvalid) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid signature")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("webhook accepted: applied=%t reason=%s", applied, reason)
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"applied": applied,
		"reason":  reason,
	})
}

func (c *PaymentController) GetHealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// statusForError keeps caller-side validation at 400 and everything the
// gateway or storage produced at 502/500.
func statusForError(err error) int {
	if model.IsRejectedInput(err) {
		return http.StatusBadRequest
	}
	if model.IsTransport(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
