// internal/curve/amount_config_test.go
package curve

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uint64Ptr(v uint64) *uint64 { return &v }

func TestAmountConfigValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AmountConfig[uint64]
		value   uint64
		wantErr error
	}{
		{"inside bounds", RangeConfig(uint64Ptr(10), uint64Ptr(100)), 50, nil},
		{"at lower bound", RangeConfig(uint64Ptr(10), uint64Ptr(100)), 10, nil},
		{"at upper bound", RangeConfig(uint64Ptr(10), uint64Ptr(100)), 100, nil},
		{"below lower bound", RangeConfig(uint64Ptr(10), uint64Ptr(100)), 9, ErrValueTooSmall},
		{"above upper bound", RangeConfig(uint64Ptr(10), uint64Ptr(100)), 101, ErrValueTooLarge},
		{"open lower bound", RangeConfig(nil, uint64Ptr(100)), 0, nil},
		{"open upper bound", RangeConfig(uint64Ptr(10), nil), ^uint64(0), nil},
		{"fully open", RangeConfig[uint64](nil, nil), 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAmountConfigValidateEnum(t *testing.T) {
	cfg := EnumConfig[uint8](6, 9)

	assert.NoError(t, cfg.Validate(6))
	assert.NoError(t, cfg.Validate(9))
	assert.ErrorIs(t, cfg.Validate(7), ErrValueInvalid)

	empty := EnumConfig[uint8]()
	assert.ErrorIs(t, empty.Validate(6), ErrValueInvalid)
}

func TestAmountConfigCodec(t *testing.T) {
	tests := []struct {
		name string
		cfg  AmountConfig[uint64]
	}{
		{"bounded range", RangeConfig(uint64Ptr(1_000_000), uint64Ptr(1_000_000_000_000))},
		{"half-open range", RangeConfig(uint64Ptr(5), nil)},
		{"open range", RangeConfig[uint64](nil, nil)},
		{"enum", EnumConfig[uint64](1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, tt.cfg.MarshalWithEncoder(bin.NewBorshEncoder(buf)))

			var got AmountConfig[uint64]
			require.NoError(t, got.UnmarshalWithDecoder(bin.NewBorshDecoder(buf.Bytes())))
			assert.Equal(t, tt.cfg.Kind, got.Kind)
			if tt.cfg.Min != nil {
				require.NotNil(t, got.Min)
				assert.Equal(t, *tt.cfg.Min, *got.Min)
			} else {
				assert.Nil(t, got.Min)
			}
			if tt.cfg.Max != nil {
				require.NotNil(t, got.Max)
				assert.Equal(t, *tt.cfg.Max, *got.Max)
			} else {
				assert.Nil(t, got.Max)
			}
			assert.Equal(t, tt.cfg.Options, got.Options)
		})
	}
}
