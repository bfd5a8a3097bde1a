// Package memtest implements the quick DRAM checks run once the controller
// is up: a read/write round trip, a walking-one data bus test, an address
// bus test and a size probe.
//
// All tests are destructive except RWAccess, which restores the word it
// touched. They are meant for a freshly initialized device.
package memtest

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

const (
	Pattern     = 0xAAAAAAAA
	AntiPattern = 0x55555555
	// MaxSize is the largest DRAM window the controller decodes.
	MaxSize = 0x80000000
)

var errSizeNotPow2 = errors.New("memtest: size not a power of two")

// Memory is word-wide access to the DRAM under test.
type Memory interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, v uint32)
}

// Error reports the first failing word of a test.
type Error struct {
	Test string
	Addr uint32
	Want uint32
	Got  uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("memtest: %s failed at %#08x: want %#08x got %#08x", e.Test, e.Addr, e.Want, e.Got)
}

// RWAccess writes Pattern at base, reads it back and restores the previous content.
func RWAccess(m Memory, base uint32) error {
	saved := m.Read32(base)
	m.Write32(base, Pattern)
	got := m.Read32(base)
	m.Write32(base, saved)
	if got != Pattern {
		return &Error{Test: "rw", Addr: base, Want: Pattern, Got: got}
	}
	return nil
}

// DataBus walks a single one bit across the 32 data lines at base.
func DataBus(m Memory, base uint32) error {
	for pattern := uint32(1); pattern != 0; pattern <<= 1 {
		m.Write32(base, pattern)
		if got := m.Read32(base); got != pattern {
			return &Error{Test: "data bus", Addr: base, Want: pattern, Got: got}
		}
	}
	return nil
}

// AddrBus checks every address line below size for stuck-high, stuck-low
// and shorted lines. It writes one word at each power of two offset.
func AddrBus(m Memory, base, size uint32) error {
	if !isPow2(size) {
		return errSizeNotPow2
	}
	mask := size - 1
	for off := uint32(4); off&mask != 0; off <<= 1 {
		m.Write32(base+off, Pattern)
	}

	// Stuck-high lines: writing offset zero must not disturb the others.
	m.Write32(base, AntiPattern)
	for off := uint32(4); off&mask != 0; off <<= 1 {
		if got := m.Read32(base + off); got != Pattern {
			return &Error{Test: "address bus", Addr: base + off, Want: Pattern, Got: got}
		}
	}
	m.Write32(base, Pattern)

	// Stuck-low and shorted lines.
	for test := uint32(4); test&mask != 0; test <<= 1 {
		m.Write32(base+test, AntiPattern)
		if got := m.Read32(base); got != Pattern {
			return &Error{Test: "address bus", Addr: base, Want: Pattern, Got: got}
		}
		for off := uint32(4); off&mask != 0; off <<= 1 {
			if off == test {
				continue
			}
			if got := m.Read32(base + off); got != Pattern {
				return &Error{Test: "address bus", Addr: base + off, Want: Pattern, Got: got}
			}
		}
		m.Write32(base+test, Pattern)
	}
	return nil
}

// CheckSize probes doubling offsets from base until a write aliases onto base
// or max is reached, and returns the detected size in bytes.
func CheckSize(m Memory, base, max uint32) uint32 {
	m.Write32(base, Pattern)
	off := uint32(4)
	for off < max {
		m.Write32(base+off, AntiPattern)
		if m.Read32(base) != Pattern {
			break
		}
		off <<= 1
	}
	return off
}

func isPow2[T constraints.Unsigned](v T) bool { return v != 0 && v&(v-1) == 0 }
