package model

import (
	"time"
)

// StoredCredential is a tokenized card saved after a verified transaction.
// Never mutated after creation; removed only by explicit delete.
type StoredCredential struct {
	ID               int64     `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Token            string    `json:"-"`
	MaskedCardNumber string    `json:"masked_card_number"`
	CardType         string    `json:"card_type"`
	CreatedAt        time.Time `json:"created_at"`
}
