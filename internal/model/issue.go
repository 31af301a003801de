package model

// IssueRequest represents request for POST /wallet/issue
type IssueRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// IssueResponse represents response for POST /wallet/issue
type IssueResponse struct {
	Voucher     string             `json:"voucher"` // encoded transport payload
	QR          string             `json:"qr"`      // base64 PNG of the payload
	Transaction PendingTransaction `json:"transaction"`
}
