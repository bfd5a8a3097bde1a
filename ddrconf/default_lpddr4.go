//go:build lpddr4 && !ddr3

package ddrconf

const defaultPreset = "lpddr4-1x16Gbits-1x32bits-1200MHz"
