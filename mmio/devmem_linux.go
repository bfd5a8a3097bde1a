package mmio

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const pageSize = 4096

var errUnmapped = errors.New("mmio: address outside mapped windows")

// DevMem is a Bus backed by mmap windows of /dev/mem. Windows must be mapped
// with Map before any access falls inside them.
type DevMem struct {
	f       *os.File
	windows []window
}

type window struct {
	base uint32
	mem  []byte
}

// OpenDevMem opens /dev/mem for synchronous read/write access.
func OpenDevMem() (*DevMem, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	return &DevMem{f: f}, nil
}

// Map maps the physical range [base, base+size) rounded out to pages.
func (d *DevMem) Map(base, size uint32) error {
	pbase := base &^ (pageSize - 1)
	psize := (base + size - pbase + pageSize - 1) &^ (pageSize - 1)
	mem, err := unix.Mmap(int(d.f.Fd()), int64(pbase), int(psize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap %#x+%#x: %w", pbase, psize, err)
	}
	d.windows = append(d.windows, window{base: pbase, mem: mem})
	return nil
}

func (d *DevMem) word(addr uint32) *uint32 {
	for i := range d.windows {
		w := &d.windows[i]
		if addr >= w.base && addr-w.base+4 <= uint32(len(w.mem)) {
			return (*uint32)(unsafe.Pointer(&w.mem[addr-w.base]))
		}
	}
	panic(fmt.Errorf("%w: %#08x", errUnmapped, addr))
}

func (d *DevMem) Read32(addr uint32) uint32 { return atomic.LoadUint32(d.word(addr)) }

func (d *DevMem) Write32(addr uint32, v uint32) { atomic.StoreUint32(d.word(addr), v) }

// Close unmaps all windows and closes /dev/mem. Every window is unmapped
// even after a failure; the first error is returned.
func (d *DevMem) Close() (err error) {
	for _, w := range d.windows {
		if uerr := unix.Munmap(w.mem); err == nil {
			err = uerr
		}
	}
	d.windows = nil
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}
