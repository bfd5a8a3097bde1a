package regs

import "golang.org/x/exp/constraints"

// Field extracts the width-mask field at pos from v.
func Field[T constraints.Unsigned](v T, pos int, mask T) T {
	return (v >> pos) & mask
}

// SetField returns v with the field at pos replaced by val.
func SetField[T constraints.Unsigned](v T, pos int, mask, val T) T {
	return v&^(mask<<pos) | (val&mask)<<pos
}

// HasBits reports whether all bits of mask are set in v.
func HasBits[T constraints.Unsigned](v, mask T) bool {
	return v&mask == mask
}
