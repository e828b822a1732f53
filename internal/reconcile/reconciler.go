package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/ports"
)

// Reconciler maps a webhook's correlation key back to the owning user and
// records the settlement status on that user's order.
//
// Events are applied in arrival order; no per-key sequencing is done, so two
// concurrent deliveries for the same key race and the last write wins.
type Reconciler struct {
	store ports.IOrderStore

	// applyTimeout bounds the background apply started from the webhook
	// path, which runs detached from the request context.
	applyTimeout time.Duration
}

func NewReconciler(store ports.IOrderStore) *Reconciler {
	return &Reconciler{
		store:        store,
		applyTimeout: 10 * time.Second,
	}
}

// ResolveOwner walks every owner's order collection looking for the key.
// There is no reverse index, so this is O(owners x orders-per-owner).
func (r *Reconciler) ResolveOwner(ctx context.Context, correlationKey string) (string, error) {
	owners, err := r.store.ListOwners(ctx)
	if err != nil {
		return "", err
	}

	for _, owner := range owners {
		keys, err := r.store.ListOrderKeys(ctx, owner)
		if err != nil {
			return "", err
		}
		for _, key := range keys {
			if key == correlationKey {
				return owner, nil
			}
		}
	}

	return "", model.ErrOwnerNotFound
}

// Apply resolves the owner and writes the status once.
func (r *Reconciler) Apply(ctx context.Context, correlationKey string, status model.OrderStatus) error {
	owner, err := r.ResolveOwner(ctx, correlationKey)
	if err != nil {
		return err
	}
	return r.store.WriteStatus(ctx, owner, correlationKey, status)
}

// ApplyAsync runs Apply in the background so the webhook acknowledgment does
// not wait on the store. The outcome is logged and delivered on the returned
// channel for diagnostics.
func (r *Reconciler) ApplyAsync(correlationKey string, status model.OrderStatus) <-chan error {
	done := make(chan error, 1)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.applyTimeout)
		defer cancel()

		err := r.Apply(ctx, correlationKey, status)
		if err != nil {
			log.Printf("reconciliation failed for key %s: %v", correlationKey, err)
		} else {
			log.Printf("order %s reconciled to %s", correlationKey, status)
		}
		done <- err
	}()

	return done
}
