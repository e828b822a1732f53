package ports

import (
	"context"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

type ICredentialRepository interface {
	Create(ctx context.Context, credential *model.StoredCredential) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.StoredCredential, error)
	FindByToken(ctx context.Context, token string) (*model.StoredCredential, error)
	Delete(ctx context.Context, id int64) error
}

// IOrderStore is the external order tree, addressed as
// owners/{ownerId}/orders/{correlationKey}/status.
type IOrderStore interface {
	ListOwners(ctx context.Context) ([]string, error)
	ListOrderKeys(ctx context.Context, ownerID string) ([]string, error)
	WriteStatus(ctx context.Context, ownerID, correlationKey string, status model.OrderStatus) error
}
