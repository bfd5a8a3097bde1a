package ddrconf

import (
	_ "embed"
	"errors"
	"strings"
)

var (
	//go:embed presets/ddr3-2x4Gbits-2x16bits-933MHz.conf
	presetDDR3 string
	//go:embed presets/ddr4-2x8Gbits-2x16bits-1200MHz.conf
	presetDDR4 string
	//go:embed presets/lpddr4-1x16Gbits-1x32bits-1200MHz.conf
	presetLPDDR4 string
)

var errNoPreset = errors.New("ddrconf: no such preset")

var presets = map[string]string{
	"ddr3-2x4Gbits-2x16bits-933MHz":     presetDDR3,
	"ddr4-2x8Gbits-2x16bits-1200MHz":    presetDDR4,
	"lpddr4-1x16Gbits-1x32bits-1200MHz": presetLPDDR4,
}

// Presets lists the names of the built in board configurations.
func Presets() []string {
	return []string{
		"ddr3-2x4Gbits-2x16bits-933MHz",
		"ddr4-2x8Gbits-2x16bits-1200MHz",
		"lpddr4-1x16Gbits-1x32bits-1200MHz",
	}
}

// Preset parses a built in configuration.
func Preset(name string) (*Config, error) {
	src, ok := presets[name]
	if !ok {
		return nil, errNoPreset
	}
	return Parse(strings.NewReader(src))
}

// Default returns the configuration selected at build time with the ddr3 or
// lpddr4 build tags. DDR4 is used when neither is set.
func Default() *Config {
	cfg, err := Preset(defaultPreset)
	if err != nil {
		panic("ddrconf: bad default preset: " + err.Error())
	}
	return cfg
}
