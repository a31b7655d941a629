// internal/ledger/ledger.go

// Package ledger is an in-process model of the host chain's value transfer
// primitives: native balances, fungible mints and token balances. The engine
// moves funds through Apply, which commits a batch of legs atomically, the
// same all-or-nothing contract a transaction gets on the real ledger.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownMint       = errors.New("unknown mint")
	ErrMintExists        = errors.New("mint already exists")
	ErrNotMintAuthority  = errors.New("not the mint authority")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrSupplyOverflow    = errors.New("supply overflow")
)

// Metadata is the descriptive half of a mint.
type Metadata struct {
	Name   string
	Symbol string
	URI    string
}

// Mint tracks a fungible token: decimals, outstanding supply and the two
// revocable authorities.
type Mint struct {
	Decimals uint8
	Supply   uint64
	Metadata Metadata

	mintAuthority   *solana.PublicKey
	freezeAuthority *solana.PublicKey
}

// HasMintAuthority reports whether minting is still possible.
func (m *Mint) HasMintAuthority() bool { return m.mintAuthority != nil }

// HasFreezeAuthority reports whether accounts can still be frozen.
func (m *Mint) HasFreezeAuthority() bool { return m.freezeAuthority != nil }

// Transfer is one fund movement leg. A zero Mint moves native value.
type Transfer struct {
	Mint   solana.PublicKey
	From   solana.PublicKey
	To     solana.PublicKey
	Amount uint64
}

func (t Transfer) isNative() bool { return t.Mint.IsZero() }

// Ledger holds all balances. Methods are safe for concurrent use, though the
// engine applies operations serially.
type Ledger struct {
	mu       sync.RWMutex
	lamports map[solana.PublicKey]uint64
	mints    map[solana.PublicKey]*Mint
	tokens   map[solana.PublicKey]map[solana.PublicKey]uint64 // mint -> owner -> amount
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		lamports: make(map[solana.PublicKey]uint64),
		mints:    make(map[solana.PublicKey]*Mint),
		tokens:   make(map[solana.PublicKey]map[solana.PublicKey]uint64),
	}
}

// CreateMint registers a new fungible token with the given authority holding
// both the mint and freeze roles.
func (l *Ledger) CreateMint(mint, authority solana.PublicKey, decimals uint8, md Metadata) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.mints[mint]; ok {
		return fmt.Errorf("mint %s: %w", mint, ErrMintExists)
	}
	auth := authority
	frz := authority
	l.mints[mint] = &Mint{
		Decimals:        decimals,
		Metadata:        md,
		mintAuthority:   &auth,
		freezeAuthority: &frz,
	}
	l.tokens[mint] = make(map[solana.PublicKey]uint64)
	return nil
}

// MintTo issues amount new tokens to dest. Caller must be the mint authority.
func (l *Ledger) MintTo(mint, authority, dest solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.mints[mint]
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrUnknownMint)
	}
	if m.mintAuthority == nil || !m.mintAuthority.Equals(authority) {
		return fmt.Errorf("mint %s: %w", mint, ErrNotMintAuthority)
	}
	if m.Supply+amount < m.Supply {
		return fmt.Errorf("mint %s: %w", mint, ErrSupplyOverflow)
	}
	if l.tokens[mint][dest]+amount < l.tokens[mint][dest] {
		return fmt.Errorf("mint %s dest %s: %w", mint, dest, ErrBalanceOverflow)
	}
	m.Supply += amount
	l.tokens[mint][dest] += amount
	return nil
}

// RevokeMintAuthority permanently removes the minting role.
func (l *Ledger) RevokeMintAuthority(mint, authority solana.PublicKey) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.mints[mint]
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrUnknownMint)
	}
	if m.mintAuthority == nil || !m.mintAuthority.Equals(authority) {
		return fmt.Errorf("mint %s: %w", mint, ErrNotMintAuthority)
	}
	m.mintAuthority = nil
	return nil
}

// RevokeFreezeAuthority permanently removes the freeze role.
func (l *Ledger) RevokeFreezeAuthority(mint, authority solana.PublicKey) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.mints[mint]
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrUnknownMint)
	}
	if m.freezeAuthority == nil || !m.freezeAuthority.Equals(authority) {
		return fmt.Errorf("mint %s: %w", mint, ErrNotMintAuthority)
	}
	m.freezeAuthority = nil
	return nil
}

// MintInfo returns a copy of the mint record.
func (l *Ledger) MintInfo(mint solana.PublicKey) (Mint, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.mints[mint]
	if !ok {
		return Mint{}, fmt.Errorf("mint %s: %w", mint, ErrUnknownMint)
	}
	return *m, nil
}

// CreditLamports funds an account with native value. Test and tooling faucet;
// on the real chain this is an airdrop or external deposit.
func (l *Ledger) CreditLamports(owner solana.PublicKey, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lamports[owner] += amount
}

// Lamports returns the native balance of owner.
func (l *Ledger) Lamports(owner solana.PublicKey) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lamports[owner]
}

// TokenBalance returns owner's balance of mint.
func (l *Ledger) TokenBalance(mint, owner solana.PublicKey) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tokens[mint][owner]
}

// Apply commits a batch of transfer legs atomically: every leg is validated
// against a staged view first, and balances change only if the whole batch
// fits. Legs with a zero amount are ignored.
func (l *Ledger) Apply(transfers ...Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	type slot struct {
		native bool
		mint   solana.PublicKey
		owner  solana.PublicKey
	}
	staged := make(map[slot]uint64)

	load := func(s slot) uint64 {
		if v, ok := staged[s]; ok {
			return v
		}
		if s.native {
			return l.lamports[s.owner]
		}
		return l.tokens[s.mint][s.owner]
	}

	for _, t := range transfers {
		if t.Amount == 0 {
			continue
		}
		if !t.isNative() {
			if _, ok := l.mints[t.Mint]; !ok {
				return fmt.Errorf("transfer mint %s: %w", t.Mint, ErrUnknownMint)
			}
		}
		from := slot{native: t.isNative(), mint: t.Mint, owner: t.From}
		to := slot{native: t.isNative(), mint: t.Mint, owner: t.To}

		fromBal := load(from)
		if fromBal < t.Amount {
			return fmt.Errorf("debit %s of %d (balance %d): %w", t.From, t.Amount, fromBal, ErrInsufficientFunds)
		}
		staged[from] = fromBal - t.Amount

		toBal := load(to)
		if toBal+t.Amount < toBal {
			return fmt.Errorf("credit %s of %d: %w", t.To, t.Amount, ErrBalanceOverflow)
		}
		staged[to] = toBal + t.Amount
	}

	for s, v := range staged {
		if s.native {
			l.lamports[s.owner] = v
		} else {
			l.tokens[s.mint][s.owner] = v
		}
	}
	return nil
}
