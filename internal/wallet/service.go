// Package wallet orchestrates the offline voucher flows: issuance with the
// allowance guard, redemption of scanned vouchers, purse funding and
// reconciliation with the settlement hub. Every ledger-affecting flow is a
// single atomic store commit; a failure after the cryptographic step leaves
// no partial state behind.
package wallet

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/offgridpay/voucher-wallet/internal/client"
	"github.com/offgridpay/voucher-wallet/internal/codec"
	"github.com/offgridpay/voucher-wallet/internal/common"
	"github.com/offgridpay/voucher-wallet/internal/crypto"
	"github.com/offgridpay/voucher-wallet/internal/ledger"
	"github.com/offgridpay/voucher-wallet/internal/model"
	"github.com/offgridpay/voucher-wallet/internal/scan"
	"github.com/offgridpay/voucher-wallet/internal/voucher"
)

// errDuplicate aborts a redeem commit when the voucher is already recorded.
var errDuplicate = errors.New("voucher already redeemed")

// Service wires issuer, verifier, ledger and allowance guard around one
// device's wallet key.
type Service struct {
	store      *ledger.Store
	ledger     *ledger.Ledger
	guard      *ledger.AllowanceGuard
	issuer     *voucher.Issuer
	verifier   *voucher.Verifier
	settlement *client.SettlementClient
	log        *zap.Logger

	walletKey     string
	walletAddress string
}

// New builds the wallet service. walletKey may be empty on a receive-only
// device; issuing then fails with a validation error. settlement may be nil
// when no hub is configured.
func New(store *ledger.Store, guard *ledger.AllowanceGuard, settlement *client.SettlementClient, walletKey string, log *zap.Logger) (*Service, error) {
	s := &Service{
		store:      store,
		ledger:     ledger.NewLedger(store),
		guard:      guard,
		issuer:     voucher.NewIssuer(),
		verifier:   voucher.NewVerifier(),
		settlement: settlement,
		log:        log,
		walletKey:  walletKey,
	}

	if walletKey != "" {
		address, err := crypto.DeriveAddress(walletKey)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet key: %w", err)
		}
		s.walletAddress = address
	}

	return s, nil
}

// Address returns this wallet's address, empty on a receive-only device.
func (s *Service) Address() string {
	return s.walletAddress
}

// DeviceID returns the stable installation identifier.
func (s *Service) DeviceID() string {
	return s.ledger.DeviceID()
}

// IssueVoucher creates a signed voucher for amount to toAddress and records
// the issuance. Allowance reservation, purse debit, pending append and
// sent-total update are one atomic commit; if any part fails the voucher is
// discarded and nothing durable changes.
func (s *Service) IssueVoucher(toAddress, amount string) (*model.IssueResponse, error) {
	if s.walletKey == "" {
		return nil, model.NewError(model.ErrValidation, "this device has no wallet key configured")
	}

	v, err := s.issuer.Create(s.walletKey, toAddress, amount)
	if err != nil {
		return nil, err
	}

	micro, err := common.ParseAmount(v.Amount)
	if err != nil {
		return nil, model.NewError(model.ErrValidation, "invalid amount: %v", err)
	}

	tx := model.PendingTransaction{
		ID:          uuid.NewString(),
		Type:        model.TransactionTypeSent,
		From:        v.From,
		To:          v.To,
		Amount:      v.Amount,
		VoucherData: *v,
		Timestamp:   v.Timestamp,
		Status:      model.TransactionStatusPending,
		DeviceID:    s.ledger.DeviceID(),
	}

	err = s.store.Update(func(st *ledger.State) error {
		if err := st.Reserve(s.walletAddress, s.guard.DefaultLimit(), micro); err != nil {
			return err
		}
		if err := st.DebitPurse(micro); err != nil {
			return err
		}
		if err := st.AddPending(tx); err != nil {
			return err
		}
		return st.AddToBalance(model.TransactionTypeSent, micro)
	})
	if err != nil {
		return nil, err
	}

	payload, err := codec.EncodeVoucher(v)
	if err != nil {
		return nil, err
	}
	qr, err := renderQR(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to render voucher QR: %w", err)
	}

	s.log.Info("voucher issued",
		zap.String("txId", tx.ID),
		zap.String("to", tx.To),
		zap.String("amount", tx.Amount))

	return &model.IssueResponse{Voucher: payload, QR: qr, Transaction: tx}, nil
}

// RedeemVoucher decodes and verifies a scanned voucher payload and records
// the receipt. A voucher already on the ledger is acknowledged without a
// second mutation.
func (s *Service) RedeemVoucher(payload string) (*model.RedeemResponse, error) {
	if s.walletAddress == "" {
		return nil, model.NewError(model.ErrValidation, "this device has no wallet key configured")
	}

	v, err := codec.DecodeVoucher(payload)
	if err != nil {
		return nil, err
	}

	if res := s.verifier.Verify(v, s.walletAddress); !res.Valid {
		return nil, model.NewError(res.Reason, "voucher rejected")
	}

	micro, err := common.ParseAmount(v.Amount)
	if err != nil {
		return nil, model.NewError(model.ErrMalformedVoucher, "invalid amount: %v", err)
	}

	tx := model.PendingTransaction{
		ID:          uuid.NewString(),
		Type:        model.TransactionTypeReceived,
		From:        v.From,
		To:          v.To,
		Amount:      v.Amount,
		VoucherData: *v,
		Timestamp:   v.Timestamp,
		Status:      model.TransactionStatusPending,
		DeviceID:    s.ledger.DeviceID(),
	}

	err = s.store.Update(func(st *ledger.State) error {
		if st.PendingByBearerKey(v.EphemeralPrivateKey) != nil {
			return errDuplicate
		}
		if err := st.AddPending(tx); err != nil {
			return err
		}
		return st.AddToBalance(model.TransactionTypeReceived, micro)
	})

	if errors.Is(err, errDuplicate) {
		var existing model.PendingTransaction
		var balances model.OfflineBalances
		s.store.View(func(st *ledger.State) {
			if found := st.PendingByBearerKey(v.EphemeralPrivateKey); found != nil {
				existing = *found
			}
			balances = st.Balances
		})
		s.log.Info("duplicate voucher ignored", zap.String("txId", existing.ID))
		return &model.RedeemResponse{Transaction: existing, Balances: balances, Duplicate: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("voucher redeemed",
		zap.String("txId", tx.ID),
		zap.String("from", tx.From),
		zap.String("amount", tx.Amount))

	return &model.RedeemResponse{Transaction: tx, Balances: s.ledger.OfflineBalances()}, nil
}

// NewScanSession returns an ingestion session whose accepted strings are
// redeemed onto this wallet's ledger.
func (s *Service) NewScanSession(continuous bool) *scan.Session {
	return scan.NewSession(func(text string) error {
		_, err := s.RedeemVoucher(text)
		return err
	}, continuous)
}

// FundPurse credits the offline purse backing the insufficient-balance
// check.
func (s *Service) FundPurse(amount string) (*model.FundResponse, error) {
	micro, err := common.ParsePositiveAmount(amount)
	if err != nil {
		return nil, model.NewError(model.ErrValidation, "invalid amount: %v", err)
	}
	err = s.store.Update(func(st *ledger.State) error {
		return st.CreditPurse(micro)
	})
	if err != nil {
		return nil, err
	}
	return &model.FundResponse{Purse: s.ledger.Purse()}, nil
}

// Balances returns the cumulative offline totals and the purse, if funded.
func (s *Service) Balances() model.BalancesResponse {
	b := s.ledger.OfflineBalances()
	return model.BalancesResponse{
		Sent:     b.Sent,
		Received: b.Received,
		Purse:    s.ledger.Purse(),
	}
}

// Transactions returns the filtered pending log.
func (s *Service) Transactions(f *model.TransactionFilter) (*model.HistoryResponse, error) {
	txs, err := s.ledger.Transactions(f)
	if err != nil {
		return nil, err
	}
	return &model.HistoryResponse{DeviceID: s.ledger.DeviceID(), Transactions: txs}, nil
}

// Allowance returns this wallet's offline allowance.
func (s *Service) Allowance() (*model.AllowanceResponse, error) {
	if s.walletAddress == "" {
		return nil, model.NewError(model.ErrValidation, "this device has no wallet key configured")
	}
	a, err := s.guard.Allowance(s.walletAddress)
	if err != nil {
		return nil, err
	}
	limit, err := common.ParseAmount(a.Limit)
	if err != nil {
		return nil, model.NewError(model.ErrStorage, "corrupt allowance limit: %v", err)
	}
	spent, err := common.ParseAmount(a.Spent)
	if err != nil {
		return nil, model.NewError(model.ErrStorage, "corrupt allowance spent: %v", err)
	}
	return &model.AllowanceResponse{
		Address:   s.walletAddress,
		Limit:     a.Limit,
		Spent:     a.Spent,
		Available: common.FormatAmount(limit - spent),
	}, nil
}

// ResetAllowance applies a new limit with zero spent. Exposed for the
// settlement flow; the core never calls it by itself.
func (s *Service) ResetAllowance(newLimit string) (*model.AllowanceResponse, error) {
	if s.walletAddress == "" {
		return nil, model.NewError(model.ErrValidation, "this device has no wallet key configured")
	}
	if err := s.guard.ResetAllowance(s.walletAddress, newLimit); err != nil {
		return nil, err
	}
	return s.Allowance()
}

// Reconcile ships pending records to the settlement hub, marks the
// confirmed ones settled and, once no sent vouchers remain pending, resets
// the allowance spend.
func (s *Service) Reconcile(ctx context.Context) (*model.ReconcileResponse, error) {
	if s.settlement == nil {
		return nil, model.NewError(model.ErrValidation, "no settlement hub configured")
	}

	status := model.TransactionStatusPending
	pending, err := s.ledger.Transactions(&model.TransactionFilter{Status: &status})
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &model.ReconcileResponse{}, nil
	}

	settledIDs, err := s.settlement.PushPending(ctx, s.ledger.DeviceID(), pending)
	if err != nil {
		return nil, err
	}

	settled, err := s.ledger.MarkSettled(settledIDs)
	if err != nil {
		return nil, err
	}

	kind := model.TransactionTypeSent
	remainingSent, err := s.ledger.Transactions(&model.TransactionFilter{Type: &kind, Status: &status})
	if err != nil {
		return nil, err
	}
	if s.walletAddress != "" && len(remainingSent) == 0 {
		a, err := s.guard.Allowance(s.walletAddress)
		if err != nil {
			return nil, err
		}
		if err := s.guard.ResetAllowance(s.walletAddress, a.Limit); err != nil {
			return nil, err
		}
	}

	remaining, err := s.ledger.Transactions(&model.TransactionFilter{Status: &status})
	if err != nil {
		return nil, err
	}

	s.log.Info("reconcile complete",
		zap.Int("settled", settled),
		zap.Int("remaining", len(remaining)))

	return &model.ReconcileResponse{Settled: settled, Remaining: len(remaining)}, nil
}

// AddressPayload returns the tagged transport payload for this wallet's
// address.
func (s *Service) AddressPayload() (*model.AddressResponse, error) {
	if s.walletAddress == "" {
		return nil, model.NewError(model.ErrValidation, "this device has no wallet key configured")
	}
	payload, err := codec.EncodeAddress(s.walletAddress)
	if err != nil {
		return nil, err
	}
	return &model.AddressResponse{Address: s.walletAddress, Payload: payload}, nil
}

// AddressQR renders this wallet's address payload as a scannable code.
func (s *Service) AddressQR() (*model.AddressQRResponse, error) {
	resp, err := s.AddressPayload()
	if err != nil {
		return nil, err
	}
	qr, err := renderQR(resp.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to render address QR: %w", err)
	}
	return &model.AddressQRResponse{Address: resp.Address, QR: qr}, nil
}

// renderQR generates a QR code of payload as base64 PNG.
func renderQR(payload string) (string, error) {
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
