// internal/ledger/snapshot.go
package ledger

import (
	"bytes"
	"sort"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Snapshot serializes the full ledger state with Borsh. Entries are sorted by
// key so identical states produce identical bytes.
func (l *Ledger) Snapshot() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	lamportKeys := sortedKeys(l.lamports)
	if err := enc.WriteUint32(uint32(len(lamportKeys)), bin.LE); err != nil {
		return nil, err
	}
	for _, k := range lamportKeys {
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		if err := enc.WriteUint64(l.lamports[k], bin.LE); err != nil {
			return nil, err
		}
	}

	mintKeys := sortedKeys(l.mints)
	if err := enc.WriteUint32(uint32(len(mintKeys)), bin.LE); err != nil {
		return nil, err
	}
	for _, k := range mintKeys {
		m := l.mints[k]
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		if err := enc.WriteUint8(m.Decimals); err != nil {
			return nil, err
		}
		if err := enc.WriteUint64(m.Supply, bin.LE); err != nil {
			return nil, err
		}
		for _, s := range []string{m.Metadata.Name, m.Metadata.Symbol, m.Metadata.URI} {
			if err := enc.WriteString(s); err != nil {
				return nil, err
			}
		}
		if err := writeOptionalKey(enc, m.mintAuthority); err != nil {
			return nil, err
		}
		if err := writeOptionalKey(enc, m.freezeAuthority); err != nil {
			return nil, err
		}

		owners := sortedKeys(l.tokens[k])
		if err := enc.WriteUint32(uint32(len(owners)), bin.LE); err != nil {
			return nil, err
		}
		for _, owner := range owners {
			if err := enc.Encode(owner); err != nil {
				return nil, err
			}
			if err := enc.WriteUint64(l.tokens[k][owner], bin.LE); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

// Restore replaces the ledger state with a previously taken snapshot.
func (l *Ledger) Restore(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dec := bin.NewBorshDecoder(data)

	lamports := make(map[solana.PublicKey]uint64)
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		var k solana.PublicKey
		if err := dec.Decode(&k); err != nil {
			return err
		}
		v, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return err
		}
		lamports[k] = v
	}

	mints := make(map[solana.PublicKey]*Mint)
	tokens := make(map[solana.PublicKey]map[solana.PublicKey]uint64)
	n, err = dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		var k solana.PublicKey
		if err := dec.Decode(&k); err != nil {
			return err
		}
		m := &Mint{}
		if m.Decimals, err = dec.ReadUint8(); err != nil {
			return err
		}
		if m.Supply, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		if m.Metadata.Name, err = dec.ReadString(); err != nil {
			return err
		}
		if m.Metadata.Symbol, err = dec.ReadString(); err != nil {
			return err
		}
		if m.Metadata.URI, err = dec.ReadString(); err != nil {
			return err
		}
		if m.mintAuthority, err = readOptionalKey(dec); err != nil {
			return err
		}
		if m.freezeAuthority, err = readOptionalKey(dec); err != nil {
			return err
		}
		mints[k] = m

		balances := make(map[solana.PublicKey]uint64)
		owners, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return err
		}
		for j := uint32(0); j < owners; j++ {
			var owner solana.PublicKey
			if err := dec.Decode(&owner); err != nil {
				return err
			}
			v, err := dec.ReadUint64(bin.LE)
			if err != nil {
				return err
			}
			balances[owner] = v
		}
		tokens[k] = balances
	}

	l.lamports = lamports
	l.mints = mints
	l.tokens = tokens
	return nil
}

func writeOptionalKey(enc *bin.Encoder, k *solana.PublicKey) error {
	if k == nil {
		return enc.WriteBool(false)
	}
	if err := enc.WriteBool(true); err != nil {
		return err
	}
	return enc.Encode(*k)
}

func readOptionalKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	present, err := dec.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var k solana.PublicKey
	if err := dec.Decode(&k); err != nil {
		return nil, err
	}
	return &k, nil
}

func sortedKeys[V any](m map[solana.PublicKey]V) []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })
	return keys
}
