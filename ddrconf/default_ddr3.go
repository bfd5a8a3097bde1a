//go:build ddr3

package ddrconf

const defaultPreset = "ddr3-2x4Gbits-2x16bits-933MHz"
