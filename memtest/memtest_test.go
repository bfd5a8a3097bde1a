package memtest

import (
	"errors"
	"testing"

	"github.com/soypat/mp2ddr/internal/hwsim"
)

const base = 0x80000000

func TestHealthyDevice(t *testing.T) {
	for _, size := range []uint32{1 << 30, MaxSize} {
		d := hwsim.NewDRAM(base, size)
		if err := DataBus(d, base); err != nil {
			t.Error(err)
		}
		if err := AddrBus(d, base, size); err != nil {
			t.Error(err)
		}
		if got := CheckSize(d, base, MaxSize); got != size {
			t.Errorf("CheckSize=%#x, want %#x", got, size)
		}
	}
}

func TestRWAccessRestores(t *testing.T) {
	d := hwsim.NewDRAM(base, 1<<20)
	d.Write32(base, 0xDEADBEEF)
	if err := RWAccess(d, base); err != nil {
		t.Fatal(err)
	}
	if got := d.Read32(base); got != 0xDEADBEEF {
		t.Errorf("content not restored: %#x", got)
	}
	d.StuckDataHigh = 1
	err := RWAccess(d, base)
	var merr *Error
	if !errors.As(err, &merr) || merr.Got != Pattern|1 {
		t.Errorf("want rw error, got %v", err)
	}
}

func TestStuckDataBit(t *testing.T) {
	d := hwsim.NewDRAM(base, 1<<20)
	d.StuckDataLow = 1 << 7
	err := DataBus(d, base)
	var merr *Error
	if !errors.As(err, &merr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if merr.Addr != base || merr.Want != 1<<7 || merr.Got != 0 {
		t.Errorf("unexpected failure report %+v", merr)
	}
}

func TestStuckAddressBit(t *testing.T) {
	const size = 1 << 20
	d := hwsim.NewDRAM(base, size)
	d.StuckAddrLow = 1 << 12
	err := AddrBus(d, base, size)
	var merr *Error
	if !errors.As(err, &merr) {
		t.Fatalf("want *Error, got %v", err)
	}
	// Offset 0x1000 aliases onto base so it reads back the antipattern
	// written there.
	if merr.Addr != base+0x1000 || merr.Got != AntiPattern {
		t.Errorf("unexpected failure report %+v", merr)
	}
}

func TestAddrBusRejectsOddSize(t *testing.T) {
	d := hwsim.NewDRAM(base, 1<<20)
	if err := AddrBus(d, base, 3<<20); err == nil {
		t.Error("expected error for non power of two size")
	}
}
