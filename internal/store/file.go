// internal/store/file.go
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/internal/curve"
)

// File wraps Memory with a Borsh-encoded snapshot written after every
// mutation. Writes go through a temp file and rename, so a crash leaves the
// previous snapshot intact.
type File struct {
	Memory
	path   string
	logger *zap.Logger
}

// OpenFile loads the snapshot at path, or starts empty when none exists.
func OpenFile(path string, logger *zap.Logger) (*File, error) {
	f := &File{path: path, logger: logger}
	f.Memory.curves = make(map[solana.PublicKey]curve.BondingCurve)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if err := f.decode(data); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return f, nil
}

// SetConfig replaces the singleton record and snapshots.
func (f *File) SetConfig(cfg curve.Config) {
	f.Memory.SetConfig(cfg)
	f.snapshot()
}

// SetCurve upserts a curve record and snapshots.
func (f *File) SetCurve(bc curve.BondingCurve) {
	f.Memory.SetCurve(bc)
	f.snapshot()
}

func (f *File) snapshot() {
	data, err := f.encode()
	if err != nil {
		f.logger.Error("encode snapshot failed", zap.Error(err))
		return
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		f.logger.Error("snapshot dir failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		f.logger.Error("write snapshot failed", zap.Error(err))
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		f.logger.Error("rename snapshot failed", zap.Error(err))
	}
}

func (f *File) encode() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBool(f.config != nil); err != nil {
		return nil, err
	}
	if f.config != nil {
		if err := enc.Encode(*f.config); err != nil {
			return nil, err
		}
	}

	// Stable ordering keeps snapshots byte-comparable across runs.
	curves := make([]curve.BondingCurve, 0, len(f.curves))
	for _, bc := range f.curves {
		curves = append(curves, bc)
	}
	sort.Slice(curves, func(i, j int) bool {
		return bytes.Compare(curves[i].TokenMint[:], curves[j].TokenMint[:]) < 0
	})

	if err := enc.WriteUint32(uint32(len(curves)), bin.LE); err != nil {
		return nil, err
	}
	for _, bc := range curves {
		if err := enc.Encode(bc); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (f *File) decode(data []byte) error {
	dec := bin.NewBorshDecoder(data)

	hasConfig, err := dec.ReadBool()
	if err != nil {
		return err
	}
	if hasConfig {
		var cfg curve.Config
		if err := dec.Decode(&cfg); err != nil {
			return err
		}
		f.config = &cfg
	}

	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		var bc curve.BondingCurve
		if err := dec.Decode(&bc); err != nil {
			return err
		}
		f.curves[bc.TokenMint] = bc
	}
	return nil
}
