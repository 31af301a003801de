package model

// BalancesResponse represents response for GET /wallet/balances
type BalancesResponse struct {
	Sent     string `json:"sent"`
	Received string `json:"received"`
	Purse    string `json:"purse,omitempty"` // only present once funded
}

// HistoryResponse represents response for GET /wallet/transactions
type HistoryResponse struct {
	DeviceID     string               `json:"deviceId"`
	Transactions []PendingTransaction `json:"transactions"`
}

// AllowanceResponse represents response for GET /wallet/allowance
type AllowanceResponse struct {
	Address   string `json:"address"`
	Limit     string `json:"limit"`
	Spent     string `json:"spent"`
	Available string `json:"available"`
}

// ResetAllowanceRequest represents request for POST /wallet/allowance/reset
type ResetAllowanceRequest struct {
	NewLimit string `json:"newLimit" binding:"required"`
}

// FundRequest represents request for POST /wallet/fund
type FundRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// FundResponse represents response for POST /wallet/fund
type FundResponse struct {
	Purse string `json:"purse"`
}

// ReconcileResponse represents response for POST /wallet/reconcile
type ReconcileResponse struct {
	Settled   int `json:"settled"`
	Remaining int `json:"remaining"`
}

// AddressResponse represents response for GET /wallet/address
type AddressResponse struct {
	Address string `json:"address"`
	Payload string `json:"payload"` // encoded AddressPayload for QR transport
}

// AddressQRResponse represents response for GET /wallet/address/qr
type AddressQRResponse struct {
	Address string `json:"address"`
	QR      string `json:"qr"` // base64 PNG
}
