package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 10 * time.Second

var _ Charger = (*Gateway)(nil)

// Gateway is an HTTP client for a charge-creation API. It posts an amount
// and an opaque card token; the gateway holds the card data, we never see it.
type Gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGateway creates a Gateway for the given base URL and API key.
func NewGateway(baseURL, apiKey string) *Gateway {
	return &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

type chargeRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Source   string `json:"source"`
}

func (g *Gateway) CreateCharge(ctx context.Context, amountCents int64, currency, cardToken string) (*Charge, error) {
	body, err := json.Marshal(chargeRequest{
		Amount:   amountCents,
		Currency: currency,
		Source:   cardToken,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.CreateCharge] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.CreateCharge] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.CreateCharge] gateway request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, ErrChargeDeclined
	case resp.StatusCode >= 300:
		return nil, errors.Errorf("[Gateway.CreateCharge] gateway returned %s", resp.Status)
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, errors.Wrap(err, "[Gateway.CreateCharge] decode response")
	}
	return &charge, nil
}
