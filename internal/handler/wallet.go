package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/offgridpay/voucher-wallet/internal/model"
	"github.com/offgridpay/voucher-wallet/internal/wallet"
)

// WalletHandler exposes the offline wallet operations over HTTP
type WalletHandler struct {
	svc *wallet.Service
	log *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(svc *wallet.Service, log *zap.Logger) *WalletHandler {
	return &WalletHandler{svc: svc, log: log}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := model.CodeOf(err)

	var status int
	switch code {
	case model.ErrValidation, model.ErrMalformedVoucher, model.ErrMalformedAddress:
		status = http.StatusBadRequest
	case model.ErrInvalidRecipient, model.ErrInvalidSignature, model.ErrExpired:
		status = http.StatusUnprocessableEntity
	case model.ErrInsufficientAllowance, model.ErrInsufficientBalance:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: string(code)})
}

// Issue handles POST /wallet/issue
// @Summary      Issue an offline voucher
// @Description  Creates a signed voucher for the given recipient and amount, reserving the offline allowance
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.IssueRequest  true  "Voucher data"
// @Success      200      {object}  model.IssueResponse
// @Router       /wallet/issue [post]
func (h *WalletHandler) Issue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.IssueVoucher(req.ToAddress, req.Amount)
	if err != nil {
		h.log.Warn("issue failed", zap.String("code", string(model.CodeOf(err))))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Redeem handles POST /wallet/redeem
// @Summary      Redeem a scanned voucher
// @Description  Verifies a voucher payload and records it on the local ledger; redeeming the same voucher twice is acknowledged without a second ledger mutation
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.RedeemRequest  true  "Voucher payload"
// @Success      200      {object}  model.RedeemResponse
// @Router       /wallet/redeem [post]
func (h *WalletHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.RedeemVoucher(req.Voucher)
	if err != nil {
		h.log.Warn("redeem failed", zap.String("code", string(model.CodeOf(err))))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Balances handles GET /wallet/balances
// @Summary      Get offline balances
// @Description  Gets the cumulative offline sent/received totals and the funded purse balance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalancesResponse
// @Router       /wallet/balances [get]
func (h *WalletHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Balances())
}

// Transactions handles GET /wallet/transactions
// @Summary      Get pending transactions
// @Description  Gets the local pending-transaction log with filtering capability
// @Tags         wallet
// @Produce      json
// @Param        type    query     string  false  "Transaction type: sent or received"
// @Param        status  query     string  false  "Status: pending, settled or failed"
// @Param        from    query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query     string  false  "End date (YYYY-MM-DD)"
// @Success      200  {object}  model.HistoryResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	var f model.TransactionFilter

	const dateLayout = "2006-01-02"
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)"})
			return
		}
		f.From = &t
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)"})
			return
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		f.Type = &txType
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := model.TransactionStatus(statusStr)
		f.Status = &status
	}

	resp, err := h.svc.Transactions(&f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Allowance handles GET /wallet/allowance
// @Summary      Get offline allowance
// @Description  Gets this wallet's offline-spend allowance (limit, spent, available)
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AllowanceResponse
// @Router       /wallet/allowance [get]
func (h *WalletHandler) Allowance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Allowance()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ResetAllowance handles POST /wallet/allowance/reset
// @Summary      Reset offline allowance
// @Description  Sets a new allowance limit with zero spent; intended for the settlement process
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ResetAllowanceRequest  true  "New limit"
// @Success      200      {object}  model.AllowanceResponse
// @Router       /wallet/allowance/reset [post]
func (h *WalletHandler) ResetAllowance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ResetAllowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.ResetAllowance(req.NewLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Fund handles POST /wallet/fund
// @Summary      Fund the offline purse
// @Description  Credits the local purse balance backing the insufficient-balance check
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.FundRequest  true  "Amount"
// @Success      200      {object}  model.FundResponse
// @Router       /wallet/fund [post]
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.FundPurse(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Reconcile handles POST /wallet/reconcile
// @Summary      Reconcile with the settlement hub
// @Description  Pushes pending transactions to the settlement hub, marks confirmed ones settled and resets the allowance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ReconcileResponse
// @Router       /wallet/reconcile [post]
func (h *WalletHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Reconcile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Address handles GET /wallet/address
// @Summary      Get wallet address
// @Description  Gets this wallet's address and its tagged QR transport payload
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AddressResponse
// @Router       /wallet/address [get]
func (h *WalletHandler) Address(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.AddressPayload()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddressQR handles GET /wallet/address/qr
// @Summary      Get wallet address QR
// @Description  Gets this wallet's address payload rendered as a base64 PNG QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AddressQRResponse
// @Router       /wallet/address/qr [get]
func (h *WalletHandler) AddressQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.AddressQR()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
