// internal/store/store.go

// Package store persists the engine's records: the Config singleton and one
// BondingCurve per mint. Memory is the canonical implementation; File adds a
// Borsh-encoded snapshot so state survives process restarts.
package store

import (
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/moonforge/launchpad/internal/curve"
)

// Memory is a map-backed store.
type Memory struct {
	mu     sync.RWMutex
	config *curve.Config
	curves map[solana.PublicKey]curve.BondingCurve
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{curves: make(map[solana.PublicKey]curve.BondingCurve)}
}

// Config returns the singleton record, if set.
func (m *Memory) Config() (curve.Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return curve.Config{}, false
	}
	return *m.config, true
}

// SetConfig replaces the singleton record.
func (m *Memory) SetConfig(cfg curve.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = &cfg
}

// Curve returns the record for mint.
func (m *Memory) Curve(mint solana.PublicKey) (curve.BondingCurve, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bc, ok := m.curves[mint]
	return bc, ok
}

// SetCurve upserts a curve record keyed by its mint.
func (m *Memory) SetCurve(bc curve.BondingCurve) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.curves[bc.TokenMint] = bc
}

// Curves lists every record.
func (m *Memory) Curves() []curve.BondingCurve {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]curve.BondingCurve, 0, len(m.curves))
	for _, bc := range m.curves {
		out = append(out, bc)
	}
	return out
}
