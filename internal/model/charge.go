package model

import (
	"strings"
)

// ChallengeType names a bank-side challenge step. The set is closed:
// anything else coming from a caller is rejected before a network call.
type ChallengeType string

const (
	ChallengePin      ChallengeType = "pin"
	ChallengeOtp      ChallengeType = "otp"
	ChallengeBirthday ChallengeType = "birthday"
)

// ParseChallengeType matches case-insensitively against the closed set.
func ParseChallengeType(s string) (ChallengeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pin":
		return ChallengePin, nil
	case "otp":
		return ChallengeOtp, nil
	case "birthday":
		return ChallengeBirthday, nil
	default:
		return "", &RejectedInputError{Field: "type", Reason: "unknown challenge type: " + s}
	}
}

type ChargeState string

const (
	StateSuccess           ChargeState = "success"
	StateDeclined          ChargeState = "declined"
	StateChallengeRequired ChargeState = "challenge_required"
	StateUnknown           ChargeState = "unknown"
)

type ChargeRequest struct {
	Amount         int64  `json:"amount"`
	Email          string `json:"email"`
	Token          string `json:"token"`
	Reference      string `json:"reference"`
	CorrelationKey string `json:"order_correlation_key"`
}

type InitializeRequest struct {
	Amount         int64  `json:"amount"`
	Email          string `json:"email"`
	Reference      string `json:"reference"`
	CallbackURL    string `json:"callback_url"`
	CorrelationKey string `json:"order_correlation_key"`
}

// ChargeOutcome is the classified result of a charge or challenge submission.
// Invariant: Succeeded implies PendingAction is empty.
type ChargeOutcome struct {
	State          ChargeState            `json:"state"`
	Succeeded      bool                   `json:"succeeded"`
	Message        string                 `json:"message"`
	ProviderStatus string                 `json:"provider_status"`
	Reference      string                 `json:"reference"`
	PendingAction  ChallengeType          `json:"pending_action,omitempty"`
	Raw            map[string]interface{} `json:"-"`
}

type ChallengeSubmission struct {
	Reference string `json:"reference"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}
