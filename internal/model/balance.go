package model

// OfflineBalances are the cumulative offline totals for this device,
// as fixed-precision decimal strings.
type OfflineBalances struct {
	Sent     string `json:"sent"`
	Received string `json:"received"`
}

// OfflineAllowance is the per-wallet ceiling on value issued offline.
// Spent never exceeds Limit; only ResetAllowance lowers Spent.
type OfflineAllowance struct {
	Limit string `json:"limit"`
	Spent string `json:"spent"`
}
