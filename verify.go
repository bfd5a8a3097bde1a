package mp2ddr

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/soypat/mp2ddr/memtest"
	"github.com/soypat/mp2ddr/regs"
)

// MemTest selects one of the post initialization memory checks.
type MemTest uint8

const (
	MemTestRW MemTest = iota
	MemTestDataBus
	MemTestAddrBus
	MemTestSize
)

func (t MemTest) String() string {
	switch t {
	case MemTestRW:
		return "rw"
	case MemTestDataBus:
		return "data"
	case MemTestAddrBus:
		return "addr"
	case MemTestSize:
		return "size"
	}
	return "unknown test"
}

var errUnknownTest = errors.New("mp2ddr: unknown memory test")

// tdcidOwner reports whether the running core owns the trusted domain and
// may therefore access the DRAM freely.
func (d *Device) tdcidOwner() bool {
	tdcid := d.rd(regs.RIMC_BASE+regs.RIMC_CR) & regs.RIMC_CR_TDCID_Msk
	switch d.core {
	case CoreA35:
		return tdcid == regs.RIMC_CR_TDCID1
	case CoreM33:
		return tdcid == regs.RIMC_CR_TDCID2
	}
	return false
}

// verify runs the post initialization checks. Retained content is only
// probed with the non destructive read/write test.
func (d *Device) verify(selfRefresh bool) error {
	if !d.tdcidOwner() {
		d.warn("DDR access tests bypassed, core not TDCID", slog.String("core", d.core.String()))
		return nil
	}
	if selfRefresh {
		return d.runMemTest(MemTestRW)
	}
	for _, t := range []MemTest{MemTestDataBus, MemTestAddrBus, MemTestSize} {
		if err := d.runMemTest(t); err != nil {
			return err
		}
	}
	return nil
}

// RunMemTest runs a single memory check against the DRAM window. All tests
// but MemTestRW overwrite DRAM content.
func (d *Device) RunMemTest(t MemTest) error {
	d.acquire()
	defer d.release()
	return d.runMemTest(t)
}

func (d *Device) runMemTest(t MemTest) (err error) {
	const base = regs.DDR_MEM_BASE
	switch t {
	case MemTestRW:
		err = memtest.RWAccess(d.bus, base)
	case MemTestDataBus:
		err = memtest.DataBus(d.bus, base)
	case MemTestAddrBus:
		err = memtest.AddrBus(d.bus, base, d.cfg.Info.Size)
	case MemTestSize:
		size := memtest.CheckSize(d.bus, base, memtest.MaxSize)
		d.info("memtest:size", hex32("size", size), hex32("want", d.cfg.Info.Size))
		if size < d.cfg.Info.Size {
			err = fmt.Errorf("%w: found %#x, want %#x", errSizeCheck, size, d.cfg.Info.Size)
		}
	default:
		return errUnknownTest
	}
	if err != nil {
		d.logerr("memtest", slog.String("test", t.String()), slog.String("err", err.Error()))
		return err
	}
	d.debug("memtest:pass", slog.String("test", t.String()))
	return nil
}
