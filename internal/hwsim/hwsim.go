// Package hwsim is a register-level model of the STM32MP2 DDR subsystem used
// to exercise the bring-up sequence without hardware. It models only the
// handshakes the driver waits on; register contents are otherwise plain storage.
package hwsim

import (
	"sync"

	"github.com/soypat/mp2ddr/regs"
)

// Access is one recorded register write.
type Access struct {
	Addr  uint32
	Value uint32
}

// SoC simulates the DDRC, DDRPHYC, RCC, PWR, DDRDBG and RIMC register files
// plus the DRAM behind the controller. The zero value is not usable; use New.
type SoC struct {
	mu   sync.Mutex
	regs map[uint32]uint32
	// DRAM is the memory mapped at regs.DDR_MEM_BASE. Nil reads as zero.
	DRAM *DRAM

	// Idle reports the controller as idle, letting automatic self-refresh
	// (PWRCTL.selfref_en) enter self-refresh.
	Idle bool
	// StallSWDone keeps SWSTAT.sw_done_ack low.
	StallSWDone bool
	// BusyPorts keeps PSTAT reporting outstanding AXI transactions.
	BusyPorts bool
	// StallDFIInit keeps DFISTAT.dfi_init_complete low.
	StallDFIInit bool
	// StallPLL keeps PLL2 from reporting lock.
	StallPLL bool
	// StallSelfRefresh keeps STAT from reporting self-refresh.
	StallSelfRefresh bool
	// FreezeRefreshLevel makes RFSHCTL3.refresh_update_level ignore writes.
	FreezeRefreshLevel bool
	// HIFBusy scripts successive DBGCAM reads: a true entry reports the
	// queues and pipelines busy for that read. Once drained DBGCAM reads idle.
	HIFBusy []bool

	record  bool
	history []Access
	writes  int
	camrd   int
}

// New returns a SoC in its power-on reset state with dram attached.
// dram may be nil.
func New(dram *DRAM) *SoC {
	s := &SoC{regs: make(map[uint32]uint32), DRAM: dram}
	s.Reset()
	return s
}

// Reset restores power-on register values. DRAM content and PWR retention
// state survive, as they do across a system reset with DDR in self-refresh.
func (s *SoC) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cr11 := s.regs[regs.PWR_BASE+regs.PWR_CR11]
	rimc := s.regs[regs.RIMC_BASE+regs.RIMC_CR]
	clear(s.regs)
	s.regs[regs.PWR_BASE+regs.PWR_CR11] = cr11
	if rimc == 0 {
		rimc = regs.RIMC_CR_TDCID1
	}
	s.regs[regs.RIMC_BASE+regs.RIMC_CR] = rimc
	s.regs[regs.DDRC_BASE+regs.DDRC_SWCTL] = regs.DDRC_SWCTL_SW_DONE
	s.regs[regs.DDRC_BASE+regs.DDRC_SWSTAT] = regs.DDRC_SWSTAT_SW_DONE_ACK
	s.regs[regs.DDRC_BASE+regs.DDRC_DBGCAM] = regs.DDRC_DBGCAM_Q_AND_DATA_PIPELINE_EMPTY
	s.regs[regs.RCC_BASE+regs.RCC_DDRCPCFGR] = regs.RCC_DDRxCFGR_EN | regs.RCC_DDRxCFGR_LPEN
	s.history = s.history[:0]
	s.writes = 0
	s.camrd = 0
}

// Record starts or stops recording register writes.
func (s *SoC) Record(on bool) {
	s.mu.Lock()
	s.record = on
	s.history = s.history[:0]
	s.mu.Unlock()
}

// History returns the register writes recorded since Record(true).
func (s *SoC) History() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Access(nil), s.history...)
}

// Writes returns the number of register writes since the last Reset.
// DRAM writes are not counted.
func (s *SoC) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// DBGCAMReads returns the number of DBGCAM reads since the last Reset.
func (s *SoC) DBGCAMReads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camrd
}

// SetTDCID sets the trusted domain owner reported by RIMC.CR.
func (s *SoC) SetTDCID(tdcid uint32) {
	s.mu.Lock()
	s.regs[regs.RIMC_BASE+regs.RIMC_CR] = tdcid & regs.RIMC_CR_TDCID_Msk
	s.mu.Unlock()
}

// Peek reads a register without side effects or locking order concerns.
func (s *SoC) Peek(addr uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[addr]
}

// Poke stores a register value without running write side effects.
func (s *SoC) Poke(addr, v uint32) {
	s.mu.Lock()
	s.regs[addr] = v
	s.mu.Unlock()
}

func isDRAM(addr uint32) bool { return addr >= regs.DDR_MEM_BASE }

func (s *SoC) Read32(addr uint32) uint32 {
	if isDRAM(addr) {
		if s.DRAM == nil {
			return 0
		}
		return s.DRAM.Read32(addr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch addr {
	case regs.DDRC_BASE + regs.DDRC_STAT:
		return s.stat()
	case regs.DDRC_BASE + regs.DDRC_DBGCAM:
		s.camrd++
		if len(s.HIFBusy) > 0 {
			busy := s.HIFBusy[0]
			s.HIFBusy = s.HIFBusy[1:]
			if busy {
				return s.regs[addr] &^ regs.DDRC_DBGCAM_Q_AND_DATA_PIPELINE_EMPTY
			}
		}
	}
	return s.regs[addr]
}

func (s *SoC) Write32(addr, v uint32) {
	if isDRAM(addr) {
		if s.DRAM != nil {
			s.DRAM.Write32(addr, v)
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.record {
		s.history = append(s.history, Access{Addr: addr, Value: v})
	}
	s.write(addr, v)
}

func (s *SoC) write(addr, v uint32) {
	const (
		ddrc = regs.DDRC_BASE
		rcc  = regs.RCC_BASE
	)
	switch addr {
	case ddrc + regs.DDRC_SWCTL:
		ack := uint32(0)
		if v&regs.DDRC_SWCTL_SW_DONE != 0 && !s.StallSWDone {
			ack = regs.DDRC_SWSTAT_SW_DONE_ACK
		}
		s.regs[ddrc+regs.DDRC_SWSTAT] = ack

	case ddrc + regs.DDRC_PCTRL_0, ddrc + regs.DDRC_PCTRL_1:
		var busy uint32
		if s.BusyPorts {
			busy = regs.DDRC_PSTAT_RD_PORT_BUSY_0 | regs.DDRC_PSTAT_WR_PORT_BUSY_0
		}
		s.regs[ddrc+regs.DDRC_PSTAT] = busy

	case ddrc + regs.DDRC_DFIMISC:
		if v&regs.DDRC_DFIMISC_DFI_INIT_START != 0 && !s.StallDFIInit {
			s.regs[ddrc+regs.DDRC_DFISTAT] |= regs.DDRC_DFISTAT_DFI_INIT_COMPLETE
		}

	case ddrc + regs.DDRC_RFSHCTL3:
		if s.FreezeRefreshLevel {
			old := s.regs[addr] & regs.DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL
			v = v&^regs.DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL | old
		}

	case ddrc + regs.DDRC_STAT, ddrc + regs.DDRC_SWSTAT, ddrc + regs.DDRC_DFISTAT,
		ddrc + regs.DDRC_PSTAT, ddrc + regs.DDRC_DBGCAM:
		return // Read only.

	case rcc + regs.RCC_PLL2CFGR1:
		const en = 1 << regs.RCC_PLLxCFGR1_PLLEN_Pos
		const rdy = 1 << regs.RCC_PLLxCFGR1_PLLRDY_Pos
		v &^= rdy
		if v&en != 0 && !s.StallPLL {
			v |= rdy
		}
	}
	s.regs[addr] = v
}

// stat computes DDRC.STAT from the power control state.
func (s *SoC) stat() uint32 {
	const sr = regs.DDRC_STAT_OPERATING_MODE_SR
	pwrctl := s.regs[regs.DDRC_BASE+regs.DDRC_PWRCTL]
	itf := s.regs[regs.RCC_BASE+regs.RCC_DDRITFCFGR]
	cp := s.regs[regs.RCC_BASE+regs.RCC_DDRCPCFGR]
	switch {
	case s.StallSelfRefresh:
	case pwrctl&regs.DDRC_PWRCTL_SELFREF_SW != 0:
		return sr | regs.DDRC_STAT_SELFREF_TYPE_SR
	case itf&regs.RCC_DDRITFCFGR_DDRCKMOD_Msk == regs.RCC_DDRITFCFGR_DDRCKMOD_HSR &&
		cp&regs.RCC_DDRxCFGR_EN == 0 && cp&regs.RCC_DDRxCFGR_LPEN != 0:
		// Hardware low power interface gated the controller clock.
		return sr | regs.DDRC_STAT_SELFREF_TYPE_SR
	case pwrctl&regs.DDRC_PWRCTL_SELFREF_EN != 0 && s.Idle:
		return sr | regs.DDRC_STAT_SELFREF_TYPE_ASR
	}
	if s.regs[regs.DDRC_BASE+regs.DDRC_DFISTAT]&regs.DDRC_DFISTAT_DFI_INIT_COMPLETE != 0 {
		return regs.DDRC_STAT_OPERATING_MODE_NORMAL
	}
	return regs.DDRC_STAT_OPERATING_MODE_INIT
}
