// Package phyinit programs and trains the DDR PHY. It consumes the user input
// structures held by the configuration snapshot and drives the PHY CSR space
// over an mmio.Bus.
//
// A full Sequence runs four steps: input check, PHY configuration, firmware
// training and PIE image load. Training itself is delegated to a Firmware
// implementation since the training microcode and its mailbox are vendor
// supplied.
package phyinit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/soypat/mp2ddr/mmio"
	"github.com/soypat/mp2ddr/regs"
	"github.com/usbarmory/tamago/bits"
)

const levelTrace = slog.LevelDebug - 1

var (
	ErrInvalidInput = errors.New("phyinit: invalid user input")
	ErrNoFirmware   = errors.New("phyinit: training requested without firmware")
	ErrNoRetention  = errors.New("phyinit: no retention registers saved")
)

// Firmware runs the PHY training microcode for one pstate. Implementations
// load the image, start the microcontroller and wait on its mailbox.
type Firmware interface {
	Train(bus mmio.Bus, in *UserInput, pstate int) error
}

// NopFirmware reports training as successful without touching the PHY.
// It suits simulated targets.
type NopFirmware struct{}

func (NopFirmware) Train(mmio.Bus, *UserInput, int) error { return nil }

type Config struct {
	// Firmware trains the PHY. A nil Firmware makes Sequence fail unless
	// training is skipped.
	Firmware Firmware
	Logger   *slog.Logger
}

// Sequencer is the PHY initialization engine for one DDR subsystem.
type Sequencer struct {
	bus    mmio.Bus
	fw     Firmware
	logger *slog.Logger
	in     UserInput
	ret    retention
}

func NewSequencer(bus mmio.Bus, cfg Config) *Sequencer {
	return &Sequencer{
		bus:    bus,
		fw:     cfg.Firmware,
		logger: cfg.Logger,
		ret:    retention{index: make(map[uint32]int)},
	}
}

// UserInput returns the input structure Sequence programs from. The
// configuration loader writes into it before Sequence is called.
func (s *Sequencer) UserInput() *UserInput { return &s.in }

// Sequence initializes the PHY. When skipTraining is set the firmware is not
// run; the trained CSRs are expected to come from RestoreSequence. When
// saveRetRegs is set the retention registers are read back after training.
func (s *Sequencer) Sequence(skipTraining, saveRetRegs bool) error {
	s.debug("phyinit:sequence", slog.Bool("skipTraining", skipTraining), slog.Bool("save", saveRetRegs))
	if err := s.in.validate(); err != nil {
		return err
	}
	if saveRetRegs {
		s.ret.reset()
	}
	if err := s.configure(); err != nil {
		return fmt.Errorf("phyinit: configure: %w", err)
	}
	if !skipTraining {
		if s.fw == nil {
			return ErrNoFirmware
		}
		for ps := 0; ps < int(s.in.Basic.NumPStates); ps++ {
			if err := s.fw.Train(s.bus, &s.in, ps); err != nil {
				return fmt.Errorf("phyinit: train pstate %d: %w", ps, err)
			}
		}
	}
	s.loadPIEImage(skipTraining)
	if saveRetRegs {
		s.SaveRetRegs()
	}
	return nil
}

// configure programs the CSRs derived from user inputs: clocking per pstate
// and driver/termination strength from the impedances.
func (s *Sequencer) configure() error {
	b := &s.in.Basic
	a := &s.in.Advanced
	dram := s.in.Type()
	s.writeCtl(regs.TAPBONLY|regs.CSR_MICROCONTMUXSEL_ADDR, 0)

	for ps := 0; ps < int(b.NumPStates); ps++ {
		p := regs.PSTATE(ps)
		s.writeCSR(p|regs.TMASTER|regs.CSR_DFIFREQRATIO_ADDR, b.DFIFreqRatio[ps])
		s.writeCSR(p|regs.TMASTER|regs.CSR_PLLBYPASS_ADDR, b.PLLBypass[ps])

		odt, err := s.strenPair(int(a.ODTImpedance[ps]), ODTStrenP, ODTStrenN, regs.CSR_ODTSTRENP_LSB, regs.CSR_ODTSTRENN_LSB, 0x3f, dram)
		if err != nil {
			return err
		}
		drv, err := s.strenPair(int(a.TxImpedance[ps]), DrvStrenFSDQP, DrvStrenFSDQN, regs.CSR_DRVSTRENFSDQP_LSB, regs.CSR_DRVSTRENFSDQN_LSB, 0x3f, dram)
		if err != nil {
			return err
		}
		for db := uint32(0); db < b.NumDbyte; db++ {
			c := db * regs.C1
			for nibble := uint32(0); nibble <= regs.B_MAX; nibble++ {
				i := nibble * regs.I1
				s.writeCSR(p|regs.TDBYTE|c|i|regs.CSR_TXODTDRVSTREN_ADDR, odt)
				s.writeCSR(p|regs.TDBYTE|c|i|regs.CSR_TXIMPEDANCECTRL1_ADDR, drv)
			}
		}
	}

	atx, err := s.strenPair(int(a.ATxImpedance), ADrvStrenP, ADrvStrenN, regs.CSR_ADRVSTRENP_LSB, regs.CSR_ADRVSTRENN_LSB, 0x1f, dram)
	if err != nil {
		return err
	}
	for anib := uint32(0); anib < b.NumAnib; anib++ {
		s.writeCSR(regs.TANIB|anib*regs.C1|regs.CSR_ATXIMPEDANCE_ADDR, atx)
	}
	return nil
}

// strenPair maps an impedance for both legs and packs them in one CSR value.
func (s *Sequencer) strenPair(ohm int, p, n DrvType, plsb, nlsb, mask int, dram DRAMType) (uint32, error) {
	sp, err := MapDrvStren(ohm, p, dram)
	if err != nil {
		return 0, err
	}
	sn, err := MapDrvStren(ohm, n, dram)
	if err != nil {
		return 0, err
	}
	var v uint32
	bits.SetN(&v, plsb, mask, sp)
	bits.SetN(&v, nlsb, mask, sn)
	return v, nil
}

func csrAddr(csr uint32) uint32 { return regs.DDRPHYC_BASE + regs.CSRAddr(csr) }

// writeCSR writes a 16 bit CSR and tracks it for retention. A saved
// retention set is left untouched.
func (s *Sequencer) writeCSR(csr, v uint32) {
	v &= 0xffff
	if s.logger != nil && s.logger.Handler().Enabled(context.Background(), levelTrace) {
		s.logger.LogAttrs(context.Background(), levelTrace, "phyinit:csr", slog.Uint64("csr", uint64(csr)), slog.Uint64("val", uint64(v)))
	}
	s.bus.Write32(csrAddr(csr), v)
	if !s.ret.saved {
		s.ret.track(csr)
	}
}

// writeCtl writes an access control CSR which is not part of the retained state.
func (s *Sequencer) writeCtl(csr, v uint32) {
	s.bus.Write32(csrAddr(csr), v&0xffff)
}

func (s *Sequencer) readCSR(csr uint32) uint32 {
	return s.bus.Read32(csrAddr(csr)) & 0xffff
}

func (s *Sequencer) debug(msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
	}
}
