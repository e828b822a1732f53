package ports

import (
	"context"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

type IGatewayClient interface {
	VerifyTransaction(ctx context.Context, reference string) (*model.GatewayResponse, error)
	InitializeTransaction(ctx context.Context, req model.InitializeRequest) (*model.GatewayResponse, error)
	ChargeAuthorization(ctx context.Context, req model.ChargeRequest) (*model.GatewayResponse, error)
	SubmitChallenge(ctx context.Context, reference string, challenge model.ChallengeType, value string) (*model.GatewayResponse, error)
}

type ISignatureVerifier interface {
	Verify(rawBody []byte, signature string) bool
}
