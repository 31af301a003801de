package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/offgridpay/voucher-wallet/internal/model"
)

// SettlementClient talks to the settlement hub that finalizes pending
// vouchers on-chain. The core only ships its local records and applies the
// hub's verdict; transaction construction happens on the hub.
type SettlementClient struct {
	baseURL string
	client  *http.Client
}

// NewSettlementClient creates a client for the hub at baseURL.
func NewSettlementClient(baseURL string) *SettlementClient {
	return &SettlementClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type reconcileRequest struct {
	DeviceID     string                     `json:"deviceId"`
	Transactions []model.PendingTransaction `json:"transactions"`
}

type reconcileResponse struct {
	SettledIDs []string `json:"settledIds"`
}

// PushPending submits the device's pending transactions for settlement and
// returns the IDs the hub confirmed as settled.
func (c *SettlementClient) PushPending(ctx context.Context, deviceID string, txs []model.PendingTransaction) ([]string, error) {
	body, err := json.Marshal(reconcileRequest{DeviceID: deviceID, Transactions: txs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reconcile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/offline/reconcile", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("settlement hub unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("settlement hub returned status %d", resp.StatusCode)
	}

	var out reconcileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode reconcile response: %w", err)
	}

	return out.SettledIDs, nil
}
