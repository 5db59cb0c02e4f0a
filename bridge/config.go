package bridge

import (
	"fmt"
	"iter"
	"maps"
)

const (
	DATA_WIDTH_DEFAULT   = 8 // Bits per operand and result byte.
	OPCODE_WIDTH_DEFAULT = 6 // Bits of opcode carried in the third byte.
	SAVE_COUNT_DEFAULT   = 1 // Reserved for multi-operand extension.

	WIDTH_LIMIT = 32 // Registers are modeled as uint32.
)

// Config holds the synthesis-time parameters of the bridge controller.
// The zero value selects all defaults.
type Config struct {
	DataWidth   int // Width of operand and result registers, in bits.
	OpcodeWidth int // Width of the opcode register, in bits.
	SaveCount   int // Reserved; carried but unused.
}

// WithDefaults replaces zero fields with their default values.
func (cfg Config) WithDefaults() Config {
	if cfg.DataWidth == 0 {
		cfg.DataWidth = DATA_WIDTH_DEFAULT
	}
	if cfg.OpcodeWidth == 0 {
		cfg.OpcodeWidth = OPCODE_WIDTH_DEFAULT
	}
	if cfg.SaveCount == 0 {
		cfg.SaveCount = SAVE_COUNT_DEFAULT
	}

	return cfg
}

// Validate checks the parameter set after default expansion.
// The opcode is extracted from the low bits of a single received byte,
// so its width may not exceed the data width.
func (cfg Config) Validate() (err error) {
	cfg = cfg.WithDefaults()

	if cfg.DataWidth < 1 || cfg.DataWidth > WIDTH_LIMIT {
		err = ErrDataWidth
		return
	}
	if cfg.OpcodeWidth < 1 || cfg.OpcodeWidth > cfg.DataWidth {
		err = ErrOpcodeWidth
		return
	}
	if cfg.SaveCount < 1 {
		err = ErrSaveCount
		return
	}

	return
}

// DataMask is the bit mask for operand and result registers.
func (cfg Config) DataMask() uint32 {
	cfg = cfg.WithDefaults()
	if cfg.DataWidth >= WIDTH_LIMIT {
		return ^uint32(0)
	}
	return (uint32(1) << cfg.DataWidth) - 1
}

// OpcodeMask is the bit mask for the opcode register.
func (cfg Config) OpcodeMask() uint32 {
	cfg = cfg.WithDefaults()
	if cfg.OpcodeWidth >= WIDTH_LIMIT {
		return ^uint32(0)
	}
	return (uint32(1) << cfg.OpcodeWidth) - 1
}

var _bridge_defines = map[string]string{
	"DATA_WIDTH":   fmt.Sprintf("%d", DATA_WIDTH_DEFAULT),
	"OPCODE_WIDTH": fmt.Sprintf("%d", OPCODE_WIDTH_DEFAULT),
	"SAVE_COUNT":   fmt.Sprintf("%d", SAVE_COUNT_DEFAULT),
}

// Defines for the bridge controller parameters.
func Defines() iter.Seq2[string, string] {
	return maps.All(_bridge_defines)
}
