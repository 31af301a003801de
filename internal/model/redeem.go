package model

// RedeemRequest represents request for POST /wallet/redeem
type RedeemRequest struct {
	Voucher string `json:"voucher" binding:"required"`
}

// RedeemResponse represents response for POST /wallet/redeem.
// Duplicate is true when the voucher was already redeemed on this device;
// the response then carries the original transaction unchanged.
type RedeemResponse struct {
	Transaction PendingTransaction `json:"transaction"`
	Balances    OfflineBalances    `json:"balances"`
	Duplicate   bool               `json:"duplicate,omitempty"`
}
