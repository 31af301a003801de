package ledger

import (
	"github.com/offgridpay/voucher-wallet/internal/common"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

// AllowanceGuard enforces the per-wallet ceiling on cumulative value issued
// while offline, independent of any on-chain balance.
type AllowanceGuard struct {
	store        *Store
	defaultLimit string
}

// NewAllowanceGuard wraps store. defaultLimit is assigned to wallets on
// first touch.
func NewAllowanceGuard(store *Store, defaultLimit string) (*AllowanceGuard, error) {
	micro, err := common.ParseAmount(defaultLimit)
	if err != nil {
		return nil, model.NewError(model.ErrValidation, "invalid default allowance limit: %v", err)
	}
	return &AllowanceGuard{store: store, defaultLimit: common.FormatAmount(micro)}, nil
}

// CheckAndReserve rejects amounts exceeding the wallet's remaining
// allowance and otherwise records the spend, in one atomic step. Two
// concurrent reservations can never both pass for amounts that together
// exceed the limit: the store serializes them.
func (g *AllowanceGuard) CheckAndReserve(wallet, amount string) error {
	micro, err := common.ParsePositiveAmount(amount)
	if err != nil {
		return model.NewError(model.ErrValidation, "invalid amount: %v", err)
	}
	return g.store.Update(func(st *State) error {
		return st.Reserve(wallet, g.defaultLimit, micro)
	})
}

// ResetAllowance sets a new limit and clears the spent total. Called by the
// external settlement process after pending vouchers reconcile on-chain;
// the core never calls it on its own.
func (g *AllowanceGuard) ResetAllowance(wallet, newLimit string) error {
	micro, err := common.ParseAmount(newLimit)
	if err != nil {
		return model.NewError(model.ErrValidation, "invalid limit: %v", err)
	}
	return g.store.Update(func(st *State) error {
		st.Allowances[wallet] = model.OfflineAllowance{
			Limit: common.FormatAmount(micro),
			Spent: common.FormatAmount(0),
		}
		return nil
	})
}

// Allowance returns the wallet's allowance record, materializing the
// default on first touch.
func (g *AllowanceGuard) Allowance(wallet string) (model.OfflineAllowance, error) {
	var out model.OfflineAllowance
	err := g.store.Update(func(st *State) error {
		out = st.AllowanceFor(wallet, g.defaultLimit)
		return nil
	})
	return out, err
}

// DefaultLimit returns the limit assigned to wallets on first touch.
func (g *AllowanceGuard) DefaultLimit() string {
	return g.defaultLimit
}
