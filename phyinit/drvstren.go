package phyinit

import (
	"errors"
	"fmt"
)

// DrvType names the PHY CSR field a drive strength is mapped for.
type DrvType uint8

const (
	DrvStrenFSDQP DrvType = iota
	DrvStrenFSDQN
	ODTStrenP
	ODTStrenN
	ADrvStrenP
	ADrvStrenN
)

var errImpedance = errors.New("phyinit: unsupported impedance")

type strenStep struct {
	below   int // exclusive upper bound in ohms
	setting uint32
}

// Data driver and DDR4/LPDDR4 termination segments.
var strenTable = []strenStep{
	{29, 0x3f}, {31, 0x3e}, {33, 0x3b}, {35, 0x3a}, {38, 0x39}, {41, 0x38},
	{45, 0x1b}, {50, 0x1a}, {56, 0x19}, {64, 0x18}, {74, 0x0b}, {88, 0x0a},
	{108, 0x09}, {140, 0x08}, {200, 0x03}, {360, 0x02}, {481, 0x01},
}

// DDR3 terminates to VDDQ/2 so each leg sees half the impedance.
var strenTableDDR3ODT = []strenStep{
	{15, 0x3f}, {16, 0x3e}, {17, 0x3b}, {18, 0x3a}, {20, 0x39}, {21, 0x38},
	{23, 0x1b}, {26, 0x1a}, {29, 0x19}, {33, 0x18}, {38, 0x0b}, {45, 0x0a},
	{55, 0x09}, {71, 0x08}, {101, 0x03}, {181, 0x02}, {241, 0x01},
}

func lookupStren(table []strenStep, ohm int) uint32 {
	if ohm == 0 {
		return 0 // High impedance.
	}
	for _, s := range table {
		if ohm < s.below {
			return s.setting
		}
	}
	return 0
}

// MapDrvStren converts an impedance in ohms to the CSR segment setting for
// target on a PHY running dram. Zero ohms and values above the table select
// high impedance. Address drivers only accept a fixed set of impedances.
func MapDrvStren(ohm int, target DrvType, dram DRAMType) (uint32, error) {
	switch target {
	case DrvStrenFSDQP, DrvStrenFSDQN:
		return lookupStren(strenTable, ohm), nil

	case ODTStrenP:
		switch dram {
		case DDR3:
			return lookupStren(strenTableDDR3ODT, ohm), nil
		case DDR4:
			return lookupStren(strenTable, ohm), nil
		}
		return 0, nil // LPDDR4 terminates to ground only.

	case ODTStrenN:
		switch dram {
		case DDR3:
			return lookupStren(strenTableDDR3ODT, ohm), nil
		case LPDDR4:
			return lookupStren(strenTable, ohm), nil
		}
		return 0, nil // DDR4 terminates to VDDQ only.

	case ADrvStrenP, ADrvStrenN:
		switch ohm {
		case 120:
			return 0x00, nil
		case 60:
			return 0x01, nil
		case 40:
			return 0x03, nil
		case 30:
			return 0x07, nil
		case 24:
			return 0x0f, nil
		case 20:
			return 0x1f, nil
		}
		return 0, fmt.Errorf("%w: %d ohm address driver", errImpedance, ohm)
	}
	return 0, fmt.Errorf("phyinit: unknown drive type %d", target)
}
