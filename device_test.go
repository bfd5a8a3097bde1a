package mp2ddr

import (
	"errors"
	"testing"

	"github.com/soypat/mp2ddr/internal/hwsim"
	"github.com/soypat/mp2ddr/phyinit"
	"github.com/soypat/mp2ddr/regs"
)

const simDRAMSize = 0x80000000

func newSimDevice(t *testing.T, cfg Config) (*Device, *hwsim.SoC) {
	t.Helper()
	soc := hwsim.New(hwsim.NewDRAM(regs.DDR_MEM_BASE, simDRAMSize))
	if cfg.Firmware == nil {
		cfg.Firmware = phyinit.NopFirmware{}
	}
	return New(soc, cfg), soc
}

func coldBoot(t *testing.T, d *Device) {
	t.Helper()
	var req InitRequest
	if err := d.Init(&req); err != nil {
		t.Fatal(err)
	}
	if req.SelfRefresh {
		t.Fatal("cold boot reported self-refresh path")
	}
}

func TestInitColdBoot(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)

	if soc.Peek(regs.PWR_BASE+regs.PWR_CR11)&regs.PWR_CR11_DDRRETDIS == 0 {
		t.Error("cold boot must disable retention until next standby")
	}
	if soc.Peek(regs.RCC_BASE+regs.RCC_DDRITFCFGR)&regs.RCC_DDRITFCFGR_DDRRST != 0 {
		t.Error("controller still held in reset")
	}
	if soc.Peek(regs.DDRC_BASE+regs.DDRC_DFISTAT)&regs.DDRC_DFISTAT_DFI_INIT_COMPLETE == 0 {
		t.Error("DFI init not completed")
	}
	if soc.Peek(regs.DDRC_BASE+regs.DDRC_PCTRL_0)&regs.DDRC_PCTRL_PORT_EN == 0 {
		t.Error("AXI port left disabled")
	}
	if soc.Peek(regs.DDRC_BASE+regs.DDRC_RFSHCTL3)&regs.DDRC_RFSHCTL3_DIS_AUTO_REFRESH != 0 {
		t.Error("auto refresh left disabled")
	}
	if soc.Peek(regs.DDRC_BASE+regs.DDRC_SWCTL)&regs.DDRC_SWCTL_SW_DONE == 0 {
		t.Error("quasi-dynamic transaction left open")
	}
	if got := soc.Peek(regs.DDRC_BASE + regs.DDRC_MSTR); got != d.Snapshot().Reg.MSTR {
		t.Errorf("MSTR=%#x, want %#x", got, d.Snapshot().Reg.MSTR)
	}
	// The DDR4 preset loads PWRCTL with en_dfi_dram_clk_disable only.
	if got := d.SelfRefreshMode(); got != SelfRefreshHW {
		t.Errorf("mode after init %s, want hw", got)
	}
	if d.qdOpen || d.axiReenable || d.hostReenable {
		t.Error("quasi-dynamic state not cleared")
	}
}

func TestInitRetentionDisabledForcesColdBoot(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	soc.Poke(regs.PWR_BASE+regs.PWR_CR11, regs.PWR_CR11_DDRRETDIS)
	req := InitRequest{WakeupFromStandby: true}
	if err := d.Init(&req); err != nil {
		t.Fatal(err)
	}
	if req.SelfRefresh {
		t.Error("retention disabled but self-refresh path taken")
	}
}

func TestInitWakeupRestoresPHY(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	coldBoot(t, d)
	seq := d.PHY().(*phyinit.Sequencer)
	if len(seq.Retention()) == 0 {
		t.Fatal("cold boot saved no retention registers")
	}

	const marker = regs.DDR_MEM_BASE + 0x123450
	soc.Write32(marker, 0xC0FFEE)
	soc.Reset()
	soc.Poke(regs.PWR_BASE+regs.PWR_CR11, 0) // Standby entry enabled retention.

	req := InitRequest{WakeupFromStandby: true}
	if err := d.Init(&req); err != nil {
		t.Fatal(err)
	}
	if !req.SelfRefresh {
		t.Fatal("wakeup did not take the self-refresh path")
	}
	if got := soc.Read32(marker); got != 0xC0FFEE {
		t.Errorf("retained DRAM content lost: %#x", got)
	}
	if soc.Peek(regs.PWR_BASE+regs.PWR_CR11)&regs.PWR_CR11_DDRRETDIS != 0 {
		t.Error("wakeup must not disable retention")
	}
}

func TestInitWakeupWithoutRetention(t *testing.T) {
	d, _ := newSimDevice(t, Config{})
	req := InitRequest{WakeupFromStandby: true}
	err := d.Init(&req)
	if !errors.Is(err, errPHYInit) || !errors.Is(err, phyinit.ErrNoRetention) {
		t.Fatalf("got %v, want PHY init failure for missing retention", err)
	}
}

func TestInitUnknownDRAM(t *testing.T) {
	d, _ := newSimDevice(t, Config{})
	d.Snapshot().Reg.MSTR = 0
	if err := d.Init(&InitRequest{}); !errors.Is(err, errUnknownDRAM) {
		t.Fatalf("got %v", err)
	}
}

type powerFailBoard struct{ called phyinit.DRAMType }

func (b *powerFailBoard) PowerUp(dram phyinit.DRAMType, req *InitRequest) error {
	b.called = dram
	return errors.New("pmic not responding")
}

func TestInitBoardPowerUpFailure(t *testing.T) {
	board := &powerFailBoard{}
	d, soc := newSimDevice(t, Config{Board: board})
	err := d.Init(&InitRequest{})
	if !errors.Is(err, errPowerUp) {
		t.Fatalf("got %v", err)
	}
	if board.called != phyinit.DDR4 {
		t.Errorf("board powered %s", board.called)
	}
	if soc.Writes() != 0 {
		t.Error("registers written before power up")
	}
}

func TestInitPLLLockTimeout(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	soc.StallPLL = true
	err := d.Init(&InitRequest{})
	if !errors.Is(err, errSysconf) || !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v", err)
	}
}

func TestInitDFITimeout(t *testing.T) {
	d, soc := newSimDevice(t, Config{})
	soc.StallDFIInit = true
	err := d.Init(&InitRequest{})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v", err)
	}
}

type stepRecorder struct {
	steps     []Step
	restartAt Step
	restarts  int
}

func (r *stepRecorder) Step(s Step) bool {
	r.steps = append(r.steps, s)
	if s == r.restartAt && r.restarts > 0 {
		r.restarts--
		return true
	}
	return false
}

func TestInteractorRestart(t *testing.T) {
	rec := &stepRecorder{restartAt: StepCtlInit, restarts: 1}
	d, _ := newSimDevice(t, Config{Interactor: rec, Interactive: true})
	coldBoot(t, d)
	want := []Step{StepReset, StepCtlInit, StepReset, StepCtlInit, StepPHYInit, StepReady}
	if len(rec.steps) != len(want) {
		t.Fatalf("steps %v, want %v", rec.steps, want)
	}
	for i := range want {
		if rec.steps[i] != want[i] {
			t.Fatalf("steps %v, want %v", rec.steps, want)
		}
	}
}

// reentrant calls back into the Device from a step.
type reentrant struct {
	d       *Device
	initErr error
	mode    SelfRefreshMode
}

func (r *reentrant) Step(s Step) bool {
	if s == StepCtlInit {
		r.initErr = r.d.Init(&InitRequest{})
		r.mode = r.d.ReadSelfRefreshMode()
	}
	return false
}

func TestInitNotReentrant(t *testing.T) {
	r := &reentrant{mode: SelfRefreshInvalid}
	d, _ := newSimDevice(t, Config{Interactor: r})
	r.d = d
	coldBoot(t, d)
	if !errors.Is(r.initErr, ErrInitRunning) {
		t.Errorf("Init from a step got %v", r.initErr)
	}
	if r.mode == SelfRefreshInvalid {
		t.Error("device methods unavailable at a step")
	}
	if d.initRunning {
		t.Error("init still marked running")
	}
	// A later Init is accepted again.
	d.interact = nopInteractor{}
	if err := d.Init(&InitRequest{}); err != nil {
		t.Fatal(err)
	}
}

func TestVerifySkippedWhenNotTDCID(t *testing.T) {
	soc := hwsim.New(nil) // Any DRAM access would fail the tests.
	soc.SetTDCID(regs.RIMC_CR_TDCID2)
	d := New(soc, Config{Firmware: phyinit.NopFirmware{}, Core: CoreA35})
	if err := d.Init(&InitRequest{}); err != nil {
		t.Fatal(err)
	}
}

func TestMemTestsOwnedByM33(t *testing.T) {
	soc := hwsim.New(hwsim.NewDRAM(regs.DDR_MEM_BASE, simDRAMSize))
	soc.SetTDCID(regs.RIMC_CR_TDCID2)
	d := New(soc, Config{Firmware: phyinit.NopFirmware{}, Core: CoreM33})
	if !d.tdcidOwner() {
		t.Fatal("M33 should own the trusted domain")
	}
	coldBoot(t, d)
}

func TestMemTestFailures(t *testing.T) {
	dram := hwsim.NewDRAM(regs.DDR_MEM_BASE, simDRAMSize/2)
	soc := hwsim.New(dram)
	d := New(soc, Config{Firmware: phyinit.NopFirmware{}})
	err := d.Init(&InitRequest{})
	if err == nil {
		t.Fatal("half sized DRAM passed the checks")
	}
	if err := d.RunMemTest(MemTestSize); !errors.Is(err, errSizeCheck) {
		t.Errorf("size check got %v", err)
	}
	if err := d.RunMemTest(MemTestRW); err != nil {
		t.Errorf("rw test on working DRAM: %v", err)
	}
	dram.StuckDataLow = 1 << 7
	if err := d.RunMemTest(MemTestDataBus); err == nil {
		t.Error("stuck data line not detected")
	}
	if err := d.RunMemTest(MemTest(99)); !errors.Is(err, errUnknownTest) {
		t.Errorf("unknown test got %v", err)
	}
}

func TestDRAMType(t *testing.T) {
	d, _ := newSimDevice(t, Config{})
	for _, tc := range []struct {
		mstr uint32
		want phyinit.DRAMType
	}{
		{regs.DDRC_MSTR_DDR3, phyinit.DDR3},
		{regs.DDRC_MSTR_DDR4 | 1<<24, phyinit.DDR4},
		{regs.DDRC_MSTR_LPDDR4, phyinit.LPDDR4},
	} {
		d.Snapshot().Reg.MSTR = tc.mstr
		got, err := d.DRAMType()
		if err != nil || got != tc.want {
			t.Errorf("MSTR %#x: got %s, %v", tc.mstr, got, err)
		}
	}
}
