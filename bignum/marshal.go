// This file implements encoding/decoding of BigInts.

package bignum

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrWireFormat indicates a binary encoding that does not describe a canonical BigInt.
var ErrWireFormat = errors.New("malformed bignum encoding")

// maxLimbPrealloc bounds the limb capacity reserved from a declared array length.
const maxLimbPrealloc = 1024

var (
	_ msgpack.CustomEncoder = BigInt{}
	_ msgpack.CustomDecoder = (*BigInt)(nil)
)

// MarshalText implements the encoding.TextMarshaler interface.
// The value is marshaled as decimal text.
func (x BigInt) MarshalText() ([]byte, error) {
	return x.Append(nil), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It overwrites z and is meant for decoding into a fresh value.
func (z *BigInt) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("bignum: cannot unmarshal %q into a bignum.BigInt: %w", text, err)
	}
	*z = v
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder. A BigInt is encoded as the
// two-element array [neg, [limb0, limb1, ...]] with limbs least significant first.
func (x BigInt) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeBool(x.neg); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(x.limbs)); err != nil {
		return err
	}
	for _, l := range x.limbs {
		if err := enc.EncodeUint32(l); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder. Non-canonical input
// (negative zero, trailing zero limbs, limbs >= Base) is rejected.
func (z *BigInt) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWireFormat, err)
	}
	if n != 2 {
		return fmt.Errorf("%w: expected 2-element array, got %d", ErrWireFormat, n)
	}
	neg, err := dec.DecodeBool()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWireFormat, err)
	}
	m, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWireFormat, err)
	}
	// m is untrusted; capacity grows with the limbs actually present
	var limbs []uint32
	if m > 0 {
		limbs = make([]uint32, 0, min(m, maxLimbPrealloc))
		for range m {
			var l uint64
			if l, err = dec.DecodeUint64(); err != nil {
				return fmt.Errorf("%w: limb %d of %d: %w", ErrWireFormat, len(limbs), m, err)
			}
			if l >= Base {
				return fmt.Errorf("%w: limb %d is %d", ErrWireFormat, len(limbs), l)
			}
			limbs = append(limbs, uint32(l)) //nolint:gosec // G115: l < Base
		}
	}
	v := BigInt{neg: neg, limbs: limbs}
	if !v.IsNormalized() {
		return fmt.Errorf("%w: non-canonical value (neg=%t, limbs=%v)", ErrWireFormat, neg, limbs)
	}
	*z = v
	return nil
}
