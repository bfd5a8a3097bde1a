package phyinit

import (
	"errors"
	"testing"

	"github.com/soypat/mp2ddr/internal/hwsim"
	"github.com/soypat/mp2ddr/mmio"
	"github.com/soypat/mp2ddr/regs"
)

type trainFunc func(bus mmio.Bus, in *UserInput, pstate int) error

func (f trainFunc) Train(bus mmio.Bus, in *UserInput, pstate int) error { return f(bus, in, pstate) }

func ddr4Input(in *UserInput) {
	in.Basic = Basic{
		DRAMType:   uint32(DDR4),
		NumDbyte:   2,
		NumAnib:    8,
		NumPStates: 1,
	}
	in.Basic.Frequency[0] = 1200
	in.Basic.DFIFreqRatio[0] = 1
	in.Advanced.ODTImpedance[0] = 60
	in.Advanced.TxImpedance[0] = 40
	in.Advanced.ATxImpedance = 40
	in.Advanced.CalInterval = 9
}

func TestMapDrvStren(t *testing.T) {
	tests := []struct {
		ohm    int
		target DrvType
		dram   DRAMType
		want   uint32
	}{
		{0, DrvStrenFSDQP, DDR4, 0},
		{28, DrvStrenFSDQP, DDR4, 0x3f},
		{40, DrvStrenFSDQN, DDR4, 0x38},
		{480, DrvStrenFSDQP, DDR3, 0x01},
		{481, DrvStrenFSDQP, DDR3, 0},
		{60, ODTStrenP, DDR3, 0x08},
		{60, ODTStrenN, DDR3, 0x08},
		{60, ODTStrenP, DDR4, 0x18},
		{60, ODTStrenN, DDR4, 0},
		{53, ODTStrenP, LPDDR4, 0},
		{53, ODTStrenN, LPDDR4, 0x19},
		{120, ADrvStrenP, DDR4, 0x00},
		{40, ADrvStrenN, DDR4, 0x03},
		{20, ADrvStrenP, LPDDR4, 0x1f},
	}
	for _, tt := range tests {
		got, err := MapDrvStren(tt.ohm, tt.target, tt.dram)
		if err != nil {
			t.Errorf("MapDrvStren(%d, %d, %v): %v", tt.ohm, tt.target, tt.dram, err)
		} else if got != tt.want {
			t.Errorf("MapDrvStren(%d, %d, %v)=%#x, want %#x", tt.ohm, tt.target, tt.dram, got, tt.want)
		}
	}
	if _, err := MapDrvStren(50, ADrvStrenP, DDR4); err == nil {
		t.Error("expected error for 50 ohm address driver")
	}
}

func TestSeq0bDelays(t *testing.T) {
	tests := []struct {
		freq uint32
		dram DRAMType
		want [4]uint32
	}{
		{1200, DDR4, [4]uint32{75, 150, 1500, 44}},
		{933, DDR3, [4]uint32{58, 116, 1166, 44}},
		{350, DDR4, [4]uint32{21, 40, 437, 16}},
		{350, LPDDR4, [4]uint32{21, 43, 437, 16}},
	}
	for _, tt := range tests {
		if got := seq0bDelays(tt.freq, tt.dram); got != tt.want {
			t.Errorf("seq0bDelays(%d, %v)=%v, want %v", tt.freq, tt.dram, got, tt.want)
		}
	}
}

func TestSequenceChecksInput(t *testing.T) {
	s := NewSequencer(hwsim.New(nil), Config{})
	if err := s.Sequence(true, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero input: want ErrInvalidInput, got %v", err)
	}
	ddr4Input(s.UserInput())
	if err := s.Sequence(false, false); !errors.Is(err, ErrNoFirmware) {
		t.Fatalf("want ErrNoFirmware, got %v", err)
	}
	if err := s.Sequence(true, false); err != nil {
		t.Fatal(err)
	}
}

func TestSequenceProgramsPHY(t *testing.T) {
	soc := hwsim.New(nil)
	s := NewSequencer(soc, Config{Firmware: NopFirmware{}})
	ddr4Input(s.UserInput())
	if err := s.Sequence(false, false); err != nil {
		t.Fatal(err)
	}
	csr := func(c uint32) uint32 { return soc.Peek(regs.DDRPHYC_BASE + regs.CSRAddr(c)) }
	if got := csr(regs.TDBYTE | regs.C1 | regs.I1 | regs.CSR_TXODTDRVSTREN_ADDR); got != 0x18 {
		t.Errorf("TxOdtDrvStren=%#x", got)
	}
	if got := csr(regs.TDBYTE | regs.CSR_TXIMPEDANCECTRL1_ADDR); got != 0x38|0x38<<6 {
		t.Errorf("TxImpedanceCtrl1=%#x", got)
	}
	if got := csr(regs.TANIB | 7*regs.C1 | regs.CSR_ATXIMPEDANCE_ADDR); got != 3|3<<5 {
		t.Errorf("ATxImpedance=%#x", got)
	}
	if got := csr(regs.TMASTER | regs.CSR_CALRATE_ADDR); got != 1<<4|9 {
		t.Errorf("CalRate=%#x", got)
	}
	if got := csr(regs.TINITENG | (regs.CSR_SEQ0BDISABLEFLAG0_ADDR + 6)); got != 0xFFFF {
		t.Errorf("Seq0BDisableFlag6=%#x", got)
	}
	if csr(regs.TAPBONLY|regs.CSR_MICROCONTMUXSEL_ADDR) != 1 {
		t.Error("CSR access not isolated after sequence")
	}
}

func TestRetentionRestore(t *testing.T) {
	const trained = regs.TDBYTE | regs.C1 | regs.CSR_RXENDLYTG0_ADDR
	soc := hwsim.New(nil)
	fw := trainFunc(func(bus mmio.Bus, in *UserInput, pstate int) error {
		bus.Write32(regs.DDRPHYC_BASE+regs.CSRAddr(trained), 0x123)
		return nil
	})
	s := NewSequencer(soc, Config{Firmware: fw})
	ddr4Input(s.UserInput())
	if err := s.RestoreSequence(); !errors.Is(err, ErrNoRetention) {
		t.Fatalf("want ErrNoRetention, got %v", err)
	}
	if err := s.Sequence(false, true); err != nil {
		t.Fatal(err)
	}

	// Power loss: PHY registers are gone. Restore into a fresh sequencer
	// from the serialized retention set.
	soc.Reset()
	rr, err := UnmarshalRetention(MarshalRetention(s.Retention()))
	if err != nil {
		t.Fatal(err)
	}
	s2 := NewSequencer(soc, Config{})
	ddr4Input(s2.UserInput())
	s2.SetRetention(rr)
	if err := s2.Sequence(true, false); err != nil {
		t.Fatal(err)
	}
	if err := s2.RestoreSequence(); err != nil {
		t.Fatal(err)
	}
	if got := soc.Peek(regs.DDRPHYC_BASE + regs.CSRAddr(trained)); got != 0x123 {
		t.Errorf("trained CSR not restored: %#x", got)
	}
	if soc.Peek(regs.DDRPHYC_BASE+regs.DDRPHY_APBONLY0_MICROCONTMUXSEL) != 1 {
		t.Error("CSR access not isolated after restore")
	}
}

func TestUnmarshalRetentionMalformed(t *testing.T) {
	b := MarshalRetention([]RetReg{{CSR: 0x200DB, Value: 7}})
	if _, err := UnmarshalRetention(b[:len(b)-1]); err == nil {
		t.Error("truncated data accepted")
	}
	b[0] = 'X'
	if _, err := UnmarshalRetention(b); err == nil {
		t.Error("bad magic accepted")
	}
}
