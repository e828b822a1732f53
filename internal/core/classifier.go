package core

import (
	"strings"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

// Provider status tokens on charge and challenge-submission responses.
const (
	statusSuccess        = "success"
	challengeTokenPrefix = "send_"
)

var pendingChallenges = map[string]model.ChallengeType{
	"send_pin":      model.ChallengePin,
	"send_otp":      model.ChallengeOtp,
	"send_birthday": model.ChallengeBirthday,
}

// Classify maps a charge or challenge-submission result to exactly one of
// the four terminal-or-pending states. Total over every structurally valid
// provider response:
//
//	transport failure        -> Unknown (outcome indeterminate, re-verify by reference)
//	data.status "success"    -> Success
//	data.status send_pin/otp/birthday -> ChallengeRequired
//	anything else            -> Declined, provider wording carried verbatim
func Classify(resp *model.GatewayResponse, callErr error) model.ChargeOutcome {
	if callErr != nil {
		return model.ChargeOutcome{
			State:   model.StateUnknown,
			Message: "charge outcome unknown, verify by reference before retrying",
		}
	}

	status := strings.ToLower(resp.Data.Status)

	if status == statusSuccess {
		return model.ChargeOutcome{
			State:          model.StateSuccess,
			Succeeded:      true,
			Message:        resp.Message,
			ProviderStatus: resp.Data.Status,
			Reference:      resp.Data.Reference,
			Raw:            resp.Raw,
		}
	}

	if challenge, ok := pendingChallenges[status]; ok {
		message := resp.Data.DisplayText
		if message == "" {
			message = resp.Message
		}
		return model.ChargeOutcome{
			State:          model.StateChallengeRequired,
			Message:        message,
			ProviderStatus: resp.Data.Status,
			Reference:      resp.Data.Reference,
			PendingAction:  challenge,
			Raw:            resp.Raw,
		}
	}

	message := resp.Data.GatewayResponse
	if message == "" {
		message = resp.Message
	}
	// A pending-action token this service has no submit path for is a
	// decline, not a crash.
	if strings.HasPrefix(status, challengeTokenPrefix) {
		message = "charge requires an unsupported challenge: " + resp.Data.Status
	}

	return model.ChargeOutcome{
		State:          model.StateDeclined,
		Message:        message,
		ProviderStatus: resp.Data.Status,
		Reference:      resp.Data.Reference,
		Raw:            resp.Raw,
	}
}
