// Package alu models the fixed-function arithmetic unit attached to the
// bridge controller. The unit is purely combinational: its output is a
// function of the operand and opcode lines only, with no internal state.
// The controller drives those lines continuously and samples the output
// when it is ready to transmit.
package alu

import (
	"fmt"
	"iter"
	"maps"
)

// Op is an arithmetic unit operation selector.
type Op uint32

const (
	OP_SET = Op(0) // set
	OP_XOR = Op(1) // xor
	OP_AND = Op(2) // and
	OP_OR  = Op(3) // or
	OP_SHL = Op(4) // shl
	OP_SHR = Op(5) // shr
	OP_ADD = Op(6) // add
	OP_SUB = Op(7) // sub
)

var _op_names = map[Op]string{
	OP_SET: "set",
	OP_XOR: "xor",
	OP_AND: "and",
	OP_OR:  "or",
	OP_SHL: "shl",
	OP_SHR: "shr",
	OP_ADD: "add",
	OP_SUB: "sub",
}

// String returns the mnemonic for the operation.
func (op Op) String() (text string) {
	text, ok := _op_names[op]
	if !ok {
		text = fmt.Sprintf("op(%d)", uint32(op))
	}
	return
}

var _alu_defines = map[string]string{
	"OP_SET": fmt.Sprintf("%d", OP_SET),
	"OP_XOR": fmt.Sprintf("%d", OP_XOR),
	"OP_AND": fmt.Sprintf("%d", OP_AND),
	"OP_OR":  fmt.Sprintf("%d", OP_OR),
	"OP_SHL": fmt.Sprintf("%d", OP_SHL),
	"OP_SHR": fmt.Sprintf("%d", OP_SHR),
	"OP_ADD": fmt.Sprintf("%d", OP_ADD),
	"OP_SUB": fmt.Sprintf("%d", OP_SUB),
}

// Defines for the arithmetic unit operations.
func Defines() iter.Seq2[string, string] {
	return maps.All(_alu_defines)
}

// Func is a combinational arithmetic unit: a pure function from the
// operand and opcode lines to the result lines.
type Func func(a uint32, b uint32, op uint32) uint32

// Eval is the reference arithmetic unit. Opcodes outside the implemented
// set evaluate to zero; the unit has no error reporting path.
func Eval(a uint32, b uint32, op uint32) (output uint32) {
	switch Op(op) {
	case OP_SET:
		output = b
	case OP_XOR:
		output = a ^ b
	case OP_AND:
		output = a & b
	case OP_OR:
		output = a | b
	case OP_SHL:
		b &= 0x1f // clamp to 31 bits of shift
		output = a << b
	case OP_SHR:
		b &= 0x1f // clamp to 31 bits of shift
		output = a >> b
	case OP_ADD:
		output = a + b
	case OP_SUB:
		output = a + ((^b) + 1)
	}

	return
}

var _ Func = Eval
