package hwsim

import "sync"

// DRAM is a sparse word-addressed memory model. Offsets wrap modulo Size, the
// way a device smaller than the controller window aliases.
type DRAM struct {
	// Base is the bus address of offset zero.
	Base uint32
	// Size in bytes, a power of two.
	Size uint32
	// StuckAddrLow lists address lines, as an offset mask, stuck at zero.
	StuckAddrLow uint32
	// StuckDataHigh and StuckDataLow list data lines stuck at one and zero.
	StuckDataHigh uint32
	StuckDataLow  uint32

	mu  sync.Mutex
	mem map[uint32]uint32
}

// NewDRAM returns a DRAM of size bytes at base.
func NewDRAM(base, size uint32) *DRAM {
	return &DRAM{Base: base, Size: size, mem: make(map[uint32]uint32)}
}

func (d *DRAM) offset(addr uint32) uint32 {
	off := (addr - d.Base) &^ d.StuckAddrLow
	return off & (d.Size - 1) &^ 3
}

func (d *DRAM) Read32(addr uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mem[d.offset(addr)]
}

func (d *DRAM) Write32(addr, v uint32) {
	v = v&^d.StuckDataLow | d.StuckDataHigh
	d.mu.Lock()
	d.mem[d.offset(addr)] = v
	d.mu.Unlock()
}
