//go:build !ddr3 && !lpddr4

package ddrconf

const defaultPreset = "ddr4-2x8Gbits-2x16bits-1200MHz"
