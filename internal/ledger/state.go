package ledger

import (
	"strings"

	"github.com/offgridpay/voucher-wallet/internal/common"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

// State is the whole durable document for one device. Every mutation the
// core performs is expressed as State helpers composed inside a single
// Store.Update, so one commit covers allowance, pending log and balances
// together - there is no partially applied ledger write.
type State struct {
	DeviceID   string                            `json:"deviceId"`
	Balances   model.OfflineBalances             `json:"balances"`
	Purse      *string                           `json:"purse,omitempty"` // set once funded
	Allowances map[string]model.OfflineAllowance `json:"allowances"`
	Pending    []model.PendingTransaction        `json:"pending"`
}

func newState(deviceID string) State {
	return State{
		DeviceID: deviceID,
		Balances: model.OfflineBalances{
			Sent:     common.FormatAmount(0),
			Received: common.FormatAmount(0),
		},
		Allowances: map[string]model.OfflineAllowance{},
	}
}

func (st *State) clone() State {
	out := *st
	out.Allowances = make(map[string]model.OfflineAllowance, len(st.Allowances))
	for k, v := range st.Allowances {
		out.Allowances[k] = v
	}
	out.Pending = append([]model.PendingTransaction(nil), st.Pending...)
	if st.Purse != nil {
		p := *st.Purse
		out.Purse = &p
	}
	return out
}

// AddPending appends an immutable record. A duplicate ID is a storage-level
// invariant violation.
func (st *State) AddPending(tx model.PendingTransaction) error {
	for i := range st.Pending {
		if st.Pending[i].ID == tx.ID {
			return model.NewError(model.ErrStorage, "transaction %s already recorded", tx.ID)
		}
	}
	st.Pending = append(st.Pending, tx)
	return nil
}

// PendingByBearerKey finds the record for a voucher by its ephemeral
// private key, the stable identity of the instrument on this device.
func (st *State) PendingByBearerKey(ephemeralPrivateKey string) *model.PendingTransaction {
	want := normalizeKey(ephemeralPrivateKey)
	for i := range st.Pending {
		if normalizeKey(st.Pending[i].VoucherData.EphemeralPrivateKey) == want {
			return &st.Pending[i]
		}
	}
	return nil
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.TrimPrefix(k, "0x")
}

// AddToBalance bumps the cumulative sent or received total by micro units.
func (st *State) AddToBalance(kind model.TransactionType, micro uint64) error {
	var field *string
	switch kind {
	case model.TransactionTypeSent:
		field = &st.Balances.Sent
	case model.TransactionTypeReceived:
		field = &st.Balances.Received
	default:
		return model.NewError(model.ErrStorage, "unknown transaction type %q", kind)
	}

	current, err := common.ParseAmount(*field)
	if err != nil {
		return model.NewError(model.ErrStorage, "corrupt balance %q: %v", *field, err)
	}
	*field = common.FormatAmount(current + micro)
	return nil
}

// AllowanceFor returns the allowance record for wallet, creating it with
// defaultLimit on first touch.
func (st *State) AllowanceFor(wallet, defaultLimit string) model.OfflineAllowance {
	if a, ok := st.Allowances[wallet]; ok {
		return a
	}
	a := model.OfflineAllowance{Limit: defaultLimit, Spent: common.FormatAmount(0)}
	st.Allowances[wallet] = a
	return a
}

// Reserve checks amount against the wallet's remaining allowance and, if it
// fits, records it as spent. Check and reservation are one step; callers
// run it inside a single Store.Update so concurrent reservations serialize.
func (st *State) Reserve(wallet, defaultLimit string, micro uint64) error {
	a := st.AllowanceFor(wallet, defaultLimit)

	limit, err := common.ParseAmount(a.Limit)
	if err != nil {
		return model.NewError(model.ErrStorage, "corrupt allowance limit %q: %v", a.Limit, err)
	}
	spent, err := common.ParseAmount(a.Spent)
	if err != nil {
		return model.NewError(model.ErrStorage, "corrupt allowance spent %q: %v", a.Spent, err)
	}

	if micro > limit-spent {
		return model.NewError(model.ErrInsufficientAllowance,
			"amount %s exceeds remaining offline allowance %s",
			common.FormatAmount(micro), common.FormatAmount(limit-spent))
	}

	a.Spent = common.FormatAmount(spent + micro)
	st.Allowances[wallet] = a
	return nil
}

// DebitPurse deducts micro units from the funded purse balance. Devices
// that never funded a purse are not constrained by it.
func (st *State) DebitPurse(micro uint64) error {
	if st.Purse == nil {
		return nil
	}
	purse, err := common.ParseAmount(*st.Purse)
	if err != nil {
		return model.NewError(model.ErrStorage, "corrupt purse balance %q: %v", *st.Purse, err)
	}
	if micro > purse {
		return model.NewError(model.ErrInsufficientBalance,
			"amount %s exceeds purse balance %s", common.FormatAmount(micro), *st.Purse)
	}
	remaining := common.FormatAmount(purse - micro)
	st.Purse = &remaining
	return nil
}

// CreditPurse adds micro units to the purse, creating it at zero first.
func (st *State) CreditPurse(micro uint64) error {
	current := uint64(0)
	if st.Purse != nil {
		var err error
		current, err = common.ParseAmount(*st.Purse)
		if err != nil {
			return model.NewError(model.ErrStorage, "corrupt purse balance %q: %v", *st.Purse, err)
		}
	}
	funded := common.FormatAmount(current + micro)
	st.Purse = &funded
	return nil
}
