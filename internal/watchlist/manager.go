// Package watchlist tracks the symbols evaluated on schedule.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"StockSage/internal/store"
)

const storeKey = "watchlist"

// Manager owns the watchlist with concurrency safety. Every mutation is
// written through to the backing store.
type Manager struct {
	mu      sync.Mutex
	store   store.Store
	symbols []string
}

// NewManager creates a Manager, loading any saved watchlist and merging in
// the configured defaults.
func NewManager(ctx context.Context, s store.Store, defaults []string) (*Manager, error) {
	var saved []string
	if err := s.Get(ctx, storeKey, &saved); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	var symbols []string
	for _, sym := range append(saved, defaults...) {
		symbols, _ = withSymbol(symbols, sym)
	}
	m := &Manager{store: s}
	if err := m.commit(ctx, symbols); err != nil {
		return nil, err
	}
	return m, nil
}

// Add inserts symbol and reports whether it was new. The watchlist is
// unchanged if the store write fails.
func (m *Manager) Add(ctx context.Context, symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, added := withSymbol(m.symbols, symbol)
	if !added {
		return false, nil
	}
	if err := m.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes symbol and reports whether it was present.
func (m *Manager) Remove(ctx context.Context, symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sym := Normalize(symbol)
	i := sort.SearchStrings(m.symbols, sym)
	if i == len(m.symbols) || m.symbols[i] != sym {
		return false, nil
	}
	next := make([]string, 0, len(m.symbols)-1)
	next = append(next, m.symbols[:i]...)
	next = append(next, m.symbols[i+1:]...)
	if err := m.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// List returns a sorted copy of the watchlist.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.symbols...)
}

// Contains reports whether symbol is watched.
func (m *Manager) Contains(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	sym := Normalize(symbol)
	i := sort.SearchStrings(m.symbols, sym)
	return i < len(m.symbols) && m.symbols[i] == sym
}

// Normalize upper-cases and trims a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// withSymbol returns a sorted copy of list with symbol added. Blank and
// duplicate input leave list untouched.
func withSymbol(list []string, symbol string) ([]string, bool) {
	sym := Normalize(symbol)
	if sym == "" {
		return list, false
	}
	i := sort.SearchStrings(list, sym)
	if i < len(list) && list[i] == sym {
		return list, false
	}
	next := make([]string, 0, len(list)+1)
	next = append(next, list[:i]...)
	next = append(next, sym)
	next = append(next, list[i:]...)
	return next, true
}

// commit persists symbols and only then makes them current.
func (m *Manager) commit(ctx context.Context, symbols []string) error {
	if symbols == nil {
		symbols = []string{}
	}
	if err := m.store.Set(ctx, storeKey, symbols, 0); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	m.symbols = symbols
	return nil
}
