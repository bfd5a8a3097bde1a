// Package mmio abstracts 32-bit memory-mapped register access so the DDR
// bring-up sequence can run against real hardware or a simulated SoC.
package mmio

import (
	"context"
	"log/slog"
)

// Bus performs single 32-bit accesses at absolute physical addresses.
// Implementations must not split or merge accesses.
type Bus interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, v uint32)
}

// Modify performs a read-modify-write clearing the clr bits and then setting
// the set bits.
func Modify(b Bus, addr, clr, set uint32) {
	v := b.Read32(addr)
	b.Write32(addr, v&^clr|set)
}

// SetBits sets mask bits at addr.
func SetBits(b Bus, addr, mask uint32) { Modify(b, addr, 0, mask) }

// ClearBits clears mask bits at addr.
func ClearBits(b Bus, addr, mask uint32) { Modify(b, addr, mask, 0) }

const levelTrace = slog.LevelDebug - 1

// Tracer wraps a Bus and logs every access at trace level.
type Tracer struct {
	Bus    Bus
	Logger *slog.Logger
	// Names optionally resolves addresses to register names for the log.
	Names func(addr uint32) string
}

func (t *Tracer) Read32(addr uint32) uint32 {
	v := t.Bus.Read32(addr)
	t.log("rd", addr, v)
	return v
}

func (t *Tracer) Write32(addr uint32, v uint32) {
	t.log("wr", addr, v)
	t.Bus.Write32(addr, v)
}

func (t *Tracer) log(op string, addr, v uint32) {
	if t.Logger == nil || !t.Logger.Handler().Enabled(context.Background(), levelTrace) {
		return
	}
	attrs := []slog.Attr{
		slog.String("addr", Hex32(addr)),
		slog.String("val", Hex32(v)),
	}
	if t.Names != nil {
		if name := t.Names(addr); name != "" {
			attrs = append(attrs, slog.String("reg", name))
		}
	}
	t.Logger.LogAttrs(context.Background(), levelTrace, op, attrs...)
}

// Hex32 formats a register value or address as 0x followed by eight
// uppercase hex digits.
func Hex32(v uint32) string {
	const digits = "0123456789ABCDEF"
	var buf [10]byte
	buf[0], buf[1] = '0', 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf[:])
}
