package model

import (
	"encoding/json"
)

// Paystack wire envelope. Status is the API-level flag, not the charge
// outcome; the charge outcome lives in Data.Status.
type GatewayResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    GatewayData `json:"data"`

	// Raw keeps the decoded payload as received, for display and diagnostics.
	Raw map[string]interface{} `json:"-"`
}

type GatewayData struct {
	Status           string            `json:"status"`
	Reference        string            `json:"reference"`
	GatewayResponse  string            `json:"gateway_response"`
	DisplayText      string            `json:"display_text"`
	AuthorizationURL string            `json:"authorization_url"`
	AccessCode       string            `json:"access_code"`
	Authorization    *AuthorizationData `json:"authorization"`
}

type AuthorizationData struct {
	AuthorizationCode string `json:"authorization_code"`
	Last4             string `json:"last4"`
	CardType          string `json:"card_type"`
	Bank              string `json:"bank"`
	Reusable          bool   `json:"reusable"`
}

// DecodeGatewayResponse parses a provider body into both the typed envelope
// and the raw map form.
func DecodeGatewayResponse(body []byte) (*GatewayResponse, error) {
	var resp GatewayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err == nil {
		resp.Raw = raw
	}
	return &resp, nil
}
