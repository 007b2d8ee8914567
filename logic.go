package sim

import (
	"log"
	"strings"
)

// Logic is the state of a single wire bit. Besides the two driven states,
// a bit can be undriven (HighZ) or in an unresolved state (Unknown), which
// is also the state of every signal before anything drives it.
type Logic uint8

// The four states a wire bit can take.
const (
	Low Logic = iota
	High
	Unknown
	HighZ
)

// IsKnown returns true when the bit is driven to 0 or 1.
func (l Logic) IsKnown() bool {
	return l == Low || l == High
}

// String returns the conventional single-character rendering of the state.
func (l Logic) String() string {
	switch l {
	case Low:
		return "0"
	case High:
		return "1"
	case Unknown:
		return "x"
	case HighZ:
		return "z"
	}

	log.Panicf("invalid logic state %d", uint8(l))
	return ""
}

// A Value is a fixed-width bit vector. Bit 0 is the least significant bit.
type Value struct {
	bits []Logic
}

// NewValue creates a value of the given width with every bit Unknown.
func NewValue(width int) Value {
	widthMustBeValid(width)

	bits := make([]Logic, width)
	for i := range bits {
		bits[i] = Unknown
	}

	return Value{bits: bits}
}

// ValueOf creates a fully-known value of the given width from an unsigned
// integer. Bits beyond the 64th are driven low.
func ValueOf(width int, v uint64) Value {
	widthMustBeValid(width)

	bits := make([]Logic, width)
	for i := range bits {
		if i < 64 && (v>>uint(i))&1 == 1 {
			bits[i] = High
		} else {
			bits[i] = Low
		}
	}

	return Value{bits: bits}
}

// Width returns the number of bits in the value.
func (v Value) Width() int {
	return len(v.bits)
}

// Bit returns the state of the i-th bit.
func (v Value) Bit(i int) Logic {
	if i < 0 || i >= len(v.bits) {
		log.Panicf("bit index %d out of range for width %d", i, len(v.bits))
	}

	return v.bits[i]
}

// IsKnown returns true when every bit is driven to 0 or 1.
func (v Value) IsKnown() bool {
	for _, b := range v.bits {
		if !b.IsKnown() {
			return false
		}
	}

	return true
}

// Uint converts the value to an unsigned integer. The second return value
// is false when any bit is Unknown or HighZ. Widths beyond 64 bits are
// truncated to the lower 64.
func (v Value) Uint() (uint64, bool) {
	if !v.IsKnown() {
		return 0, false
	}

	var u uint64
	for i, b := range v.bits {
		if i >= 64 {
			break
		}
		if b == High {
			u |= 1 << uint(i)
		}
	}

	return u, true
}

// Eq returns true when the two values have the same width and the same
// state on every bit.
func (v Value) Eq(o Value) bool {
	if len(v.bits) != len(o.bits) {
		return false
	}

	for i := range v.bits {
		if v.bits[i] != o.bits[i] {
			return false
		}
	}

	return true
}

// String renders the value MSB first, e.g. "10xz".
func (v Value) String() string {
	var sb strings.Builder
	for i := len(v.bits) - 1; i >= 0; i-- {
		sb.WriteString(v.bits[i].String())
	}

	return sb.String()
}

func widthMustBeValid(width int) {
	if width <= 0 {
		log.Panicf("value width must be positive, got %d", width)
	}
}
