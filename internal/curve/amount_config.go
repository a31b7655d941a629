// internal/curve/amount_config.go
package curve

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Amount covers the unsigned scalar kinds a launch constraint can range over:
// lamport counts, token supplies and mint decimals.
type Amount interface {
	uint8 | uint16 | uint32 | uint64
}

// AmountKind tags the two constraint shapes.
type AmountKind uint8

const (
	// AmountRange constrains a value to an optionally bounded interval.
	AmountRange AmountKind = iota
	// AmountEnum constrains a value to an explicit set of options.
	AmountEnum
)

// AmountConfig is a launch-parameter constraint: either a range with optional
// bounds or an enumerated set. A nil bound means unbounded on that side.
type AmountConfig[T Amount] struct {
	Kind    AmountKind
	Min     *T
	Max     *T
	Options []T
}

// RangeConfig builds a range constraint. Pass nil for an open bound.
func RangeConfig[T Amount](min, max *T) AmountConfig[T] {
	return AmountConfig[T]{Kind: AmountRange, Min: min, Max: max}
}

// EnumConfig builds an enumerated-set constraint.
func EnumConfig[T Amount](options ...T) AmountConfig[T] {
	return AmountConfig[T]{Kind: AmountEnum, Options: options}
}

// Validate checks value against the constraint. Failures wrap
// ErrValueTooSmall, ErrValueTooLarge or ErrValueInvalid.
func (c AmountConfig[T]) Validate(value T) error {
	switch c.Kind {
	case AmountRange:
		if c.Min != nil && value < *c.Min {
			return fmt.Errorf("value %d, expected at least %d: %w", value, *c.Min, ErrValueTooSmall)
		}
		if c.Max != nil && value > *c.Max {
			return fmt.Errorf("value %d, expected at most %d: %w", value, *c.Max, ErrValueTooLarge)
		}
		return nil
	case AmountEnum:
		for _, opt := range c.Options {
			if value == opt {
				return nil
			}
		}
		return fmt.Errorf("value %d, expected one of %v: %w", value, c.Options, ErrValueInvalid)
	default:
		return fmt.Errorf("unknown constraint kind %d: %w", c.Kind, ErrValueInvalid)
	}
}

// MarshalWithEncoder writes the constraint in Borsh layout: a one-byte enum
// tag, then either two Option<T> bounds or a length-prefixed option list.
func (c AmountConfig[T]) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(c.Kind)); err != nil {
		return err
	}
	switch c.Kind {
	case AmountRange:
		if err := writeOptionalAmount(enc, c.Min); err != nil {
			return err
		}
		return writeOptionalAmount(enc, c.Max)
	case AmountEnum:
		if err := enc.WriteUint32(uint32(len(c.Options)), bin.LE); err != nil {
			return err
		}
		for _, opt := range c.Options {
			if err := writeAmount(enc, opt); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("amount config: unknown kind %d", c.Kind)
	}
}

// UnmarshalWithDecoder is the inverse of MarshalWithEncoder.
func (c *AmountConfig[T]) UnmarshalWithDecoder(dec *bin.Decoder) error {
	tag, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	*c = AmountConfig[T]{Kind: AmountKind(tag)}
	switch c.Kind {
	case AmountRange:
		if c.Min, err = readOptionalAmount[T](dec); err != nil {
			return err
		}
		c.Max, err = readOptionalAmount[T](dec)
		return err
	case AmountEnum:
		n, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return err
		}
		c.Options = make([]T, 0, n)
		for i := uint32(0); i < n; i++ {
			v, err := readAmount[T](dec)
			if err != nil {
				return err
			}
			c.Options = append(c.Options, v)
		}
		return nil
	default:
		return fmt.Errorf("amount config: unknown kind %d", tag)
	}
}

func writeAmount[T Amount](enc *bin.Encoder, v T) error {
	switch v := any(v).(type) {
	case uint8:
		return enc.WriteUint8(v)
	case uint16:
		return enc.WriteUint16(v, bin.LE)
	case uint32:
		return enc.WriteUint32(v, bin.LE)
	case uint64:
		return enc.WriteUint64(v, bin.LE)
	default:
		return fmt.Errorf("amount config: unsupported scalar %T", v)
	}
}

func writeOptionalAmount[T Amount](enc *bin.Encoder, v *T) error {
	if v == nil {
		return enc.WriteBool(false)
	}
	if err := enc.WriteBool(true); err != nil {
		return err
	}
	return writeAmount(enc, *v)
}

func readAmount[T Amount](dec *bin.Decoder) (T, error) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		v, err := dec.ReadUint8()
		return T(v), err
	case uint16:
		v, err := dec.ReadUint16(bin.LE)
		return T(v), err
	case uint32:
		v, err := dec.ReadUint32(bin.LE)
		return T(v), err
	case uint64:
		v, err := dec.ReadUint64(bin.LE)
		return T(v), err
	default:
		return zero, fmt.Errorf("amount config: unsupported scalar %T", zero)
	}
}

func readOptionalAmount[T Amount](dec *bin.Decoder) (*T, error) {
	present, err := dec.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := readAmount[T](dec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
