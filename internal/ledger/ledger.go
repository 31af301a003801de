package ledger

import (
	"sort"

	"github.com/offgridpay/voucher-wallet/internal/common"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

// Ledger is the pending-transaction log and offline-balance view over a
// Store. All mutations commit atomically through the store.
type Ledger struct {
	store *Store
}

// NewLedger wraps store.
func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store}
}

// DeviceID returns the stable identifier of this installation.
func (l *Ledger) DeviceID() string {
	return l.store.DeviceID()
}

// AddPendingTransaction appends an immutable record. On failure no partial
// record exists.
func (l *Ledger) AddPendingTransaction(tx model.PendingTransaction) error {
	return l.store.Update(func(st *State) error {
		return st.AddPending(tx)
	})
}

// OfflineBalances returns the cumulative sent/received totals.
func (l *Ledger) OfflineBalances() model.OfflineBalances {
	var out model.OfflineBalances
	l.store.View(func(st *State) {
		out = st.Balances
	})
	return out
}

// UpdateOfflineBalances replaces the cumulative totals. Callers compute the
// new totals from a prior read plus the delta; the store's single-writer
// lock serializes the read-modify-write.
func (l *Ledger) UpdateOfflineBalances(sent, received string) error {
	if _, err := common.ParseAmount(sent); err != nil {
		return model.NewError(model.ErrValidation, "invalid sent total: %v", err)
	}
	if _, err := common.ParseAmount(received); err != nil {
		return model.NewError(model.ErrValidation, "invalid received total: %v", err)
	}
	return l.store.Update(func(st *State) error {
		st.Balances = model.OfflineBalances{Sent: sent, Received: received}
		return nil
	})
}

// Purse returns the funded purse balance, or "" when never funded.
func (l *Ledger) Purse() string {
	var out string
	l.store.View(func(st *State) {
		if st.Purse != nil {
			out = *st.Purse
		}
	})
	return out
}

// Transactions returns the pending log filtered by f, newest first.
func (l *Ledger) Transactions(f *model.TransactionFilter) ([]model.PendingTransaction, error) {
	if f != nil {
		if err := f.Validate(); err != nil {
			return nil, model.NewError(model.ErrValidation, "%v", err)
		}
	}

	var out []model.PendingTransaction
	l.store.View(func(st *State) {
		for i := range st.Pending {
			if f == nil || f.Matches(&st.Pending[i]) {
				out = append(out, st.Pending[i])
			}
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// MarkSettled transitions the given records from pending to settled.
// Returns how many records changed.
func (l *Ledger) MarkSettled(ids []string) (int, error) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	changed := 0
	err := l.store.Update(func(st *State) error {
		changed = 0
		for i := range st.Pending {
			if _, ok := idSet[st.Pending[i].ID]; !ok {
				continue
			}
			if st.Pending[i].Status != model.TransactionStatusPending {
				continue
			}
			st.Pending[i].Status = model.TransactionStatusSettled
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
