package ddrconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/mp2ddr/regs"
)

// The configuration format is a list of C preprocessor defines, one value per
// line, as emitted by a register save dump:
//
//	#define DDR_MEM_NAME  "DDR4 2x8Gbits 2x16bits 1200MHz"
//	#define DDR_MEM_SPEED 1200000
//	#define DDR_MEM_SIZE  0x80000000
//
//	/* ctl.static */
//	#define DDR_MSTR 0x01040010

const saveBanner = "/* DDR REG VALUES TO BE SAVED */"

var errSyntax = errors.New("ddrconf: syntax error")

// Symbolic values accepted for PLL settings.
var symbols = map[string]uint32{
	"RCC_PLLSOURCE_HSI":    regs.RCC_PLLSOURCE_HSI,
	"RCC_PLLSOURCE_HSE":    regs.RCC_PLLSOURCE_HSE,
	"RCC_PLLSOURCE_MSI":    regs.RCC_PLLSOURCE_MSI,
	"RCC_PLL_OFF":          regs.RCC_PLL_OFF,
	"RCC_PLL_ON":           regs.RCC_PLL_ON,
	"RCC_PLL_INTEGER":      regs.RCC_PLL_INTEGER,
	"RCC_PLL_FRACTIONAL":   regs.RCC_PLL_FRACTIONAL,
	"RCC_PLL_CENTERSPREAD": regs.RCC_PLL_CENTERSPREAD,
	"RCC_PLL_DOWNSPREAD":   regs.RCC_PLL_DOWNSPREAD,
}

// WriteHeader writes the save banner and memory description.
func WriteHeader(w io.Writer, info Info) error {
	_, err := fmt.Fprintf(w, "\n%s\n#define DDR_MEM_NAME  %q\n#define DDR_MEM_SPEED %d\n#define DDR_MEM_SIZE  0x%08x\n\n",
		saveBanner, info.Name, info.Speed, info.Size)
	return err
}

// WriteGroupComment writes the section comment that precedes group g.
func WriteGroupComment(w io.Writer, g Group) error {
	_, err := fmt.Fprintf(w, "\n/* %s.%s */\n", g.Base(), g)
	return err
}

// WriteDefine writes a single value line.
func WriteDefine(w io.Writer, g Group, f *Field, v uint32) error {
	_, err := fmt.Fprintf(w, "#define %s 0x%08X\n", f.DefineName(g), v)
	return err
}

// Write encodes every configuration value of cfg.
func Write(w io.Writer, cfg *Config) error {
	bw := bufio.NewWriter(w)
	err := WriteHeader(bw, cfg.Info)
	for _, g := range Groups() {
		if err != nil {
			break
		}
		if g.ReadOnly() {
			continue
		}
		err = WriteGroupComment(bw, g)
		fields := g.Fields()
		for i := 0; i < len(fields) && err == nil; i++ {
			err = WriteDefine(bw, g, &fields[i], *fields[i].Param(cfg))
		}
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

type defineRef struct {
	group Group
	field *Field
}

var defines map[string]defineRef

// indexDefines maps define names to descriptors. It runs once the group
// table is built.
func indexDefines() {
	defines = make(map[string]defineRef)
	for _, g := range Groups() {
		fields := g.Fields()
		for i := range fields {
			defines[fields[i].DefineName(g)] = defineRef{group: g, field: &fields[i]}
		}
	}
}

// Parse decodes the define format. Header guards, comments, includes and
// status register lines are ignored. Values missing from the input are zero.
func Parse(r io.Reader) (*Config, error) {
	cfg := new(Config)
	scanner := bufio.NewScanner(r)
	lineno := 0
	inComment := false
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if inComment {
			if strings.Contains(line, "*/") {
				inComment = false
			}
			continue
		}
		if strings.HasPrefix(line, "/*") {
			inComment = !strings.Contains(line, "*/")
			continue
		}
		if !strings.HasPrefix(line, "#define") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue // Include guard.
		}
		name := fields[1]
		value := strings.Join(fields[2:], " ")
		if err := cfg.set(name, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) set(name, value string) (err error) {
	switch name {
	case "DDR_MEM_NAME":
		cfg.Info.Name, err = strconv.Unquote(value)
		if err != nil {
			return fmt.Errorf("%w: memory name %s", errSyntax, value)
		}
		return nil
	case "DDR_MEM_SPEED":
		cfg.Info.Speed, err = parseValue(value)
		return err
	case "DDR_MEM_SIZE":
		cfg.Info.Size, err = parseValue(value)
		return err
	}
	ref, ok := defines[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegister, name)
	}
	if ref.field.Param == nil {
		return nil
	}
	v, err := parseValue(value)
	if err != nil {
		return err
	}
	*ref.field.Param(cfg) = v
	return nil
}

// parseValue accepts C integer literals with an optional unsigned suffix,
// and the RCC PLL symbols.
func parseValue(s string) (uint32, error) {
	if v, ok := symbols[s]; ok {
		return v, nil
	}
	s = strings.TrimRight(s, "uUlL")
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: value %q", errSyntax, s)
	}
	return uint32(v), nil
}
