package phyinit

import "fmt"

// DRAMType selects the memory protocol the PHY is trained for.
type DRAMType uint32

const (
	DDR4   DRAMType = 0
	DDR3   DRAMType = 1
	LPDDR4 DRAMType = 2
)

func (t DRAMType) String() string {
	switch t {
	case DDR4:
		return "DDR4"
	case DDR3:
		return "DDR3"
	case LPDDR4:
		return "LPDDR4"
	}
	return fmt.Sprintf("DRAMType(%d)", uint32(t))
}

const (
	// MaxPStates is the number of PHY frequency states the SoC uses.
	MaxPStates = 1
	MaxDbyte   = 4
	MaxAnib    = 12
	// SwizzleWords is the number of address/command swizzle entries.
	SwizzleWords = 44
)

// UserInput is the full PHY initialization input. Fields are uint32 so the
// register descriptor table can address every one of them uniformly.
type UserInput struct {
	Basic        Basic
	Advanced     Advanced
	ModeRegister ModeRegister
	Swizzle      [SwizzleWords]uint32
}

// Basic describes the memory topology and operating frequency.
type Basic struct {
	DRAMType           uint32
	DIMMType           uint32
	LP4XMode           uint32
	NumDbyte           uint32
	NumActiveDbyteDFI0 uint32
	NumActiveDbyteDFI1 uint32
	NumAnib            uint32
	NumRankDFI0        uint32
	NumRankDFI1        uint32
	DRAMDataWidth      uint32
	NumPStates         uint32
	// Frequency is the DRAM clock in MHz, per pstate.
	Frequency     [MaxPStates]uint32
	PLLBypass     [MaxPStates]uint32
	DFIFreqRatio  [MaxPStates]uint32
	DFI1Exists    uint32
	Train2D       uint32
	HardMacroVer  uint32
	ReadDBIEnable [MaxPStates]uint32
	DFIMode       uint32
}

// Advanced holds the electrical and training tuning inputs.
type Advanced struct {
	LP4RxPreambleMode      [MaxPStates]uint32
	LP4PostambleExt        [MaxPStates]uint32
	D4RxPreambleLength     [MaxPStates]uint32
	D4TxPreambleLength     [MaxPStates]uint32
	ExtCalResVal           uint32
	Is2TTiming             [MaxPStates]uint32
	ODTImpedance           [MaxPStates]uint32
	TxImpedance            [MaxPStates]uint32
	ATxImpedance           uint32
	MemAlertEn             uint32
	MemAlertPUImp          uint32
	MemAlertVrefLevel      uint32
	MemAlertSyncBypass     uint32
	DisDynAdrTri           [MaxPStates]uint32
	PhyMstrTrainInterval   [MaxPStates]uint32
	PhyMstrMaxReqToAck     [MaxPStates]uint32
	WDQSExt                uint32
	CalInterval            uint32
	CalOnce                uint32
	LP4RL                  [MaxPStates]uint32
	LP4WL                  [MaxPStates]uint32
	LP4WLS                 [MaxPStates]uint32
	LP4DbiRd               [MaxPStates]uint32
	LP4DbiWr               [MaxPStates]uint32
	LP4NWR                 [MaxPStates]uint32
	LP4LowPowerDrv         uint32
	DRAMByteSwap           uint32
	RxEnBackOff            uint32
	TrainSequenceCtrl      uint32
	SnpsUmctlOpt           uint32
	SnpsUmctlF0RC5x        [MaxPStates]uint32
	TxSlewRiseDQ           [MaxPStates]uint32
	TxSlewFallDQ           [MaxPStates]uint32
	TxSlewRiseAC           uint32
	TxSlewFallAC           uint32
	DisableRetraining      uint32
	DisablePhyUpdate       uint32
	EnableHighClkSkewFix   uint32
	DisableUnusedAddrLns   uint32
	PhyInitSequenceNum     uint32
	EnableDfiCsPolarityFix uint32
	PhyVref                uint32
	SequenceCtrl           [MaxPStates]uint32
}

// ModeRegister holds the DRAM mode register values programmed by training.
type ModeRegister struct {
	MR0  [MaxPStates]uint32
	MR1  [MaxPStates]uint32
	MR2  [MaxPStates]uint32
	MR3  [MaxPStates]uint32
	MR4  [MaxPStates]uint32
	MR5  [MaxPStates]uint32
	MR6  [MaxPStates]uint32
	MR11 [MaxPStates]uint32
	MR12 [MaxPStates]uint32
	MR13 [MaxPStates]uint32
	MR14 [MaxPStates]uint32
	MR22 [MaxPStates]uint32
}

// Type returns the configured DRAM type.
func (in *UserInput) Type() DRAMType { return DRAMType(in.Basic.DRAMType) }

func (in *UserInput) validate() error {
	b := &in.Basic
	switch {
	case in.Type() > LPDDR4:
		return fmt.Errorf("%w: dram type %d", ErrInvalidInput, b.DRAMType)
	case b.NumPStates < 1 || b.NumPStates > MaxPStates:
		return fmt.Errorf("%w: %d pstates", ErrInvalidInput, b.NumPStates)
	case b.NumDbyte < 1 || b.NumDbyte > MaxDbyte:
		return fmt.Errorf("%w: %d dbytes", ErrInvalidInput, b.NumDbyte)
	case b.NumAnib < 1 || b.NumAnib > MaxAnib:
		return fmt.Errorf("%w: %d anibs", ErrInvalidInput, b.NumAnib)
	}
	for ps := 0; ps < int(b.NumPStates); ps++ {
		if b.Frequency[ps] == 0 {
			return fmt.Errorf("%w: zero frequency in pstate %d", ErrInvalidInput, ps)
		}
	}
	return nil
}
