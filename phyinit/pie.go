package phyinit

import "github.com/soypat/mp2ddr/regs"

// PIE instruction disable flags. Flag 6 gates DRAM drift compensation.
var seq0bDisableFlags = [8]uint32{0x0000, 0x0173, 0x0060, 0x6110, 0x2152, 0xDFBD, 0xFFFF, 0x6152}

const seq0bDisableFlag6Drift = 0x2060

// loadPIEImage programs the PHY initialization engine and hands the CSR
// space back to the PHY for mission mode.
func (s *Sequencer) loadPIEImage(skipTraining bool) {
	b := &s.in.Basic
	a := &s.in.Advanced
	dram := s.in.Type()
	s.writeCtl(regs.TAPBONLY|regs.CSR_MICROCONTMUXSEL_ADDR, 0)

	for ps := 0; ps < int(b.NumPStates); ps++ {
		p := regs.PSTATE(ps)
		dly := seq0bDelays(b.Frequency[ps], dram)
		for i, v := range dly {
			s.writeCSR(p|regs.TMASTER|(regs.CSR_SEQ0BDLY0_ADDR+uint32(i)), v)
		}
	}

	for i, v := range seq0bDisableFlags {
		if i == 6 && dram == LPDDR4 && !skipTraining && a.DisableRetraining == 0 && b.Frequency[0] >= 333 {
			v = seq0bDisableFlag6Drift
		}
		s.writeCSR(regs.TINITENG|(regs.CSR_SEQ0BDISABLEFLAG0_ADDR+uint32(i)), v)
	}

	// Calibration runs once dfi_init_start is asserted.
	s.writeCSR(regs.TMASTER|regs.CSR_CALZAP_ADDR, 1)
	calrate := uint32(1)<<regs.CSR_CALRUN_LSB | a.CalOnce<<regs.CSR_CALONCE_LSB | a.CalInterval<<regs.CSR_CALINTERVAL_LSB
	s.writeCSR(regs.TMASTER|regs.CSR_CALRATE_ADDR, calrate)

	s.writeCtl(regs.TDRTUB|regs.CSR_UCCLKHCLKENABLES_ADDR, missionClocks(dram))
	s.writeCtl(regs.TAPBONLY|regs.CSR_MICROCONTMUXSEL_ADDR, 1)
}

// seq0bDelays returns the PIE delay counts for 0.5us, 1us, 10us and the DLL
// lock time at freqMHz. Counts are in units of 4 DFI clocks.
func seq0bDelays(freqMHz uint32, dram DRAMType) [4]uint32 {
	const delayScaleX100 = 100
	dfifrqX10 := int64(10 * freqMHz / 2)
	var lowFreqOpt int64
	if dram != LPDDR4 {
		switch {
		case freqMHz < 400:
			lowFreqOpt = 3
		case freqMHz < 533:
			lowFreqOpt = 11
		}
	}
	var dllLockX10 int64
	switch {
	case dfifrqX10 > 2665:
		dllLockX10 = 1760
	case dfifrqX10 > 2000:
		dllLockX10 = 1320
	default:
		dllLockX10 = 640
	}
	return [4]uint32{
		uint32(dfifrqX10*delayScaleX100/(10*100*2*4)) & 0xffff,
		uint32(dfifrqX10*delayScaleX100/(10*100*4)-lowFreqOpt) & 0xffff,
		uint32(10*dfifrqX10*delayScaleX100/(10*100*4)) & 0xffff,
		uint32(dllLockX10 / (10 * 4)),
	}
}

// missionClocks is the UcclkHclkEnables value for mission mode. LPDDR4
// keeps the training hardware clock for retraining.
func missionClocks(dram DRAMType) uint32 {
	if dram == LPDDR4 {
		return 2
	}
	return 0
}
