package mp2ddr

import (
	"errors"
	"testing"
	"time"

	"github.com/soypat/mp2ddr/internal/hwsim"
	"github.com/soypat/mp2ddr/regs"
)

func inSelfRefresh(soc *hwsim.SoC) bool {
	return soc.Read32(regs.DDRC_BASE+regs.DDRC_STAT)&regs.DDRC_STAT_SELFREF_TYPE_Msk != 0
}

func TestSelfRefreshModes(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)

	for _, tc := range []struct {
		mode  SelfRefreshMode
		ckmod uint32
	}{
		{SelfRefreshSW, regs.RCC_DDRITFCFGR_DDRCKMOD_SSR},
		{SelfRefreshAuto, regs.RCC_DDRITFCFGR_DDRCKMOD_ASR},
		{SelfRefreshHW, regs.RCC_DDRITFCFGR_DDRCKMOD_HSR},
	} {
		if err := d.SetSelfRefreshMode(tc.mode); err != nil {
			t.Fatalf("set %s: %v", tc.mode, err)
		}
		if got := d.ReadSelfRefreshMode(); got != tc.mode {
			t.Fatalf("set %s, registers decode as %s", tc.mode, got)
		}
		itf := soc.Peek(regs.RCC_BASE + regs.RCC_DDRITFCFGR)
		if itf&regs.RCC_DDRITFCFGR_DDRCKMOD_Msk != tc.ckmod {
			t.Errorf("%s: DDRITFCFGR=%#x", tc.mode, itf)
		}
		if inSelfRefresh(soc) {
			t.Fatalf("%s: in self-refresh before entry", tc.mode)
		}

		soc.Idle = true
		if err := d.SelfRefreshEntry(nil); err != nil {
			t.Fatalf("%s entry: %v", tc.mode, err)
		}
		if !inSelfRefresh(soc) {
			t.Errorf("%s: entry did not reach self-refresh", tc.mode)
		}
		soc.Idle = false
		if err := d.SelfRefreshExit(); err != nil {
			t.Fatalf("%s exit: %v", tc.mode, err)
		}
		if inSelfRefresh(soc) {
			t.Errorf("%s: still in self-refresh after exit", tc.mode)
		}
	}

	hwlpctl := soc.Peek(regs.DDRC_BASE + regs.DDRC_HWLPCTL)
	if hwlpctl&(1<<regs.DDRC_HWLPCTL_HW_LP_EN_Pos) == 0 || hwlpctl>>regs.DDRC_HWLPCTL_HW_LP_IDLE_X32_Pos&0xFFF != hwIdlePeriod {
		t.Errorf("HWLPCTL=%#x", hwlpctl)
	}
	if soc.Peek(regs.DDRC_BASE+regs.DDRC_PWRCTL)&regs.DDRC_PWRCTL_SELFREF_SW != 0 {
		t.Error("hardware mode setup left software self-refresh requested")
	}
}

func TestSelfRefreshEntryTimeout(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	if err := d.SetSelfRefreshMode(SelfRefreshSW); err != nil {
		t.Fatal(err)
	}
	soc.StallSelfRefresh = true
	zdata := uint32(0x1234)
	if err := d.SelfRefreshEntry(&zdata); !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v", err)
	}
}

func TestSelfRefreshLoopBudget(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	if err := d.SetSelfRefreshMode(SelfRefreshSW); err != nil {
		t.Fatal(err)
	}
	soc.StallSelfRefresh = true
	start := time.Now()
	err := d.SelfRefreshEntry(nil)
	elapsed := time.Since(start)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v", err)
	}
	if elapsed < timeout500us {
		t.Errorf("gave up after %s, before the %s budget", elapsed, timeout500us)
	}
	if elapsed > 100*time.Millisecond {
		t.Errorf("took %s to give up", elapsed)
	}

	// Without the stall the same request succeeds.
	soc.StallSelfRefresh = false
	if err := d.SelfRefreshEntry(nil); err != nil {
		t.Fatal(err)
	}
	if err := d.SelfRefreshExit(); err != nil {
		t.Fatal(err)
	}
}

func TestHWSelfRefreshExitPoll(t *testing.T) {
	d, soc := newSimDevice(t, Config{HWSelfRefreshExitPoll: true})
	coldBoot(t, d)
	// Init only adopts the preset mode; cycle through SW to program HSR.
	for _, m := range []SelfRefreshMode{SelfRefreshSW, SelfRefreshHW} {
		if err := d.SetSelfRefreshMode(m); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.SelfRefreshEntry(nil); err != nil {
		t.Fatal(err)
	}
	// Keep the controller reporting self-refresh after the clock returns.
	soc.Poke(regs.DDRC_BASE+regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_SW)
	if err := d.SelfRefreshExit(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("polled exit got %v", err)
	}
}

func TestSetCurrentModeWritesNothing(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	soc.Record(true)
	defer soc.Record(false)
	if err := d.SetSelfRefreshMode(d.SelfRefreshMode()); err != nil {
		t.Fatal(err)
	}
	if h := soc.History(); len(h) != 0 {
		t.Errorf("setting the current mode wrote %d registers", len(h))
	}
}

func TestInvalidSelfRefreshMode(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	if err := d.SetSelfRefreshMode(SelfRefreshInvalid); !errors.Is(err, errInvalidMode) {
		t.Errorf("set invalid got %v", err)
	}
	if d.SelfRefreshMode() != SelfRefreshHW {
		t.Error("failed set changed the current mode")
	}

	// selfref_en without clock disable matches no mode.
	soc.Poke(regs.DDRC_BASE+regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_EN)
	if got := d.ReadSelfRefreshMode(); got != SelfRefreshInvalid {
		t.Fatalf("decoded %s", got)
	}
	if err := d.SelfRefreshEntry(nil); !errors.Is(err, errInvalidMode) {
		t.Errorf("entry got %v", err)
	}
	if err := d.SelfRefreshExit(); !errors.Is(err, errInvalidMode) {
		t.Errorf("exit got %v", err)
	}
}

func TestSelfRefreshModeString(t *testing.T) {
	for m, want := range map[SelfRefreshMode]string{
		SelfRefreshSW:      "sw",
		SelfRefreshAuto:    "auto",
		SelfRefreshHW:      "hw",
		SelfRefreshInvalid: "invalid",
		42:                 "invalid",
	} {
		if got := m.String(); got != want {
			t.Errorf("%d: got %q want %q", m, got, want)
		}
	}
}
