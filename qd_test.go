package mp2ddr

import (
	"errors"
	"testing"

	"github.com/soypat/mp2ddr/regs"
)

func TestQD3RestoresFrontEnd(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)

	var swDoneLow bool
	err := d.qd3(func() {
		swDoneLow = soc.Peek(regs.DDRC_BASE+regs.DDRC_SWCTL)&regs.DDRC_SWCTL_SW_DONE == 0
		if soc.Peek(regs.DDRC_BASE+regs.DDRC_PCTRL_0)&regs.DDRC_PCTRL_PORT_EN != 0 {
			t.Error("AXI port open during update")
		}
		if soc.Peek(regs.DDRC_BASE+regs.DDRC_DBG1)&regs.DDRC_DBG1_DIS_HIF == 0 {
			t.Error("host interface open during update")
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if !swDoneLow {
		t.Error("update ran with sw_done high")
	}
	if !d.axiPortEnabled() || !d.hostInterfaceEnabled() {
		t.Error("front end not restored")
	}
}

func TestQD3AckTimeoutRestoresFrontEnd(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	soc.StallSWDone = true
	err := d.qd3(func() {})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v", err)
	}
	if !d.axiPortEnabled() || !d.hostInterfaceEnabled() {
		t.Error("aborted update left the front end closed")
	}
	if d.qdOpen {
		t.Error("aborted update left the transaction open")
	}

	soc.StallSWDone = false
	if err := d.qd3(func() {}); err != nil {
		t.Errorf("update after abort: %v", err)
	}
}

func TestQD3BusyPortsAbort(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	soc.BusyPorts = true
	called := false
	err := d.qd3(func() { called = true })
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v", err)
	}
	if called {
		t.Error("update applied with busy ports")
	}
	if !d.axiPortEnabled() {
		t.Error("AXI port not reenabled after abort")
	}
}

func TestQD3Nested(t *testing.T) {
	d, _ := newSimDevice(t, Config{})
	coldBoot(t, d)
	if err := d.setQD3UpdateConditions(); err != nil {
		t.Fatal(err)
	}
	if err := d.setQD3UpdateConditions(); !errors.Is(err, ErrQDNested) {
		t.Errorf("nested open got %v", err)
	}
	if err := d.unsetQD3UpdateConditions(); err != nil {
		t.Fatal(err)
	}
	if d.qdOpen || !d.axiPortEnabled() {
		t.Error("transaction not closed")
	}
}

func TestHostInterfaceNeedsConsecutiveEmptyReads(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	for _, tc := range []struct {
		busy  []bool
		reads int
	}{
		{busy: nil, reads: 2},
		{busy: []bool{true}, reads: 3},
		{busy: []bool{false, true}, reads: 4},
		{busy: []bool{false, true, false, true, true}, reads: 7},
	} {
		d.enableHostInterface()
		soc.HIFBusy = tc.busy
		before := soc.DBGCAMReads()
		if err := d.disableHostInterface(); err != nil {
			t.Fatalf("%v: %v", tc.busy, err)
		}
		if got := soc.DBGCAMReads() - before; got != tc.reads {
			t.Errorf("%v: host interface idle after %d reads, want %d", tc.busy, got, tc.reads)
		}
	}
}
