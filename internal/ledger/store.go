// Package ledger is the device-local bookkeeping behind the offline voucher
// protocol: the append-only pending-transaction log, cumulative offline
// balances, and the per-wallet offline-spend allowance. All durable state
// lives in one JSON document per device, committed atomically.
package ledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/offgridpay/voucher-wallet/internal/model"
)

const stateFileName = "ledger.json"

// Store is the durable, single-writer state store for one device. A mutex
// serializes every read-modify-write; commits go through a temp file, fsync
// and rename so a crash never leaves a partially written document.
type Store struct {
	mu   sync.Mutex
	path string
	st   State
}

// Open loads the ledger under dir, creating it (and a fresh device ID) on
// first use.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("ledger: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, model.NewError(model.ErrStorage, "failed to create data dir: %v", err)
	}

	s := &Store{path: filepath.Join(dir, stateFileName)}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Device ID is generated once and persisted for the life of the
		// installation.
		s.st = newState("dev-" + uuid.NewString())
		if err := s.write(&s.st); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, model.NewError(model.ErrStorage, "failed to read ledger: %v", err)
	default:
		if err := json.Unmarshal(data, &s.st); err != nil {
			return nil, model.NewError(model.ErrStorage, "ledger file is corrupt: %v", err)
		}
		if s.st.Allowances == nil {
			s.st.Allowances = map[string]model.OfflineAllowance{}
		}
	}

	return s, nil
}

// DeviceID returns the stable identifier of this installation.
func (s *Store) DeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.DeviceID
}

// View runs fn against a snapshot of the state.
func (s *Store) View(fn func(st *State)) {
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()
	fn(&snapshot)
}

// Update applies fn to a copy of the state and commits the result as one
// atomic write. If fn fails, or the write fails, no durable or in-memory
// state changes - this is the all-or-nothing transaction every
// ledger-affecting operation runs through.
func (s *Store) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.write(&next); err != nil {
		return err
	}
	s.st = next
	return nil
}

// write commits st durably: temp file in the same directory, fsync, rename.
func (s *Store) write(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return model.NewError(model.ErrStorage, "failed to marshal ledger: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), stateFileName+".tmp-*")
	if err != nil {
		return model.NewError(model.ErrStorage, "failed to create temp file: %v", err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return model.NewError(model.ErrStorage, "failed to write ledger: %v", cause)
	}

	if err := tmp.Chmod(0o600); err != nil {
		return cleanup(err)
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return model.NewError(model.ErrStorage, "failed to close temp file: %v", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return model.NewError(model.ErrStorage, "failed to replace ledger: %v", err)
	}
	return nil
}

// Path returns the backing file location, for diagnostics.
func (s *Store) Path() string {
	return s.path
}
