// Package bridge implements the serial-to-ALU bridge controller for the
// μBridge system.
//
// The controller is a finite state machine with an attached datapath. It
// assembles a two-operand-plus-opcode request from three individually
// arriving inbound bytes, presents the request to a combinational
// arithmetic unit, and transmits the unit's single-byte result. Six phases
// cover the request cycle: idle, the two operand waits, the opcode wait,
// the result send, and a paused phase that parks a stalled request without
// losing already latched bytes.
//
// All controller state lives in the State register set. Next computes the
// register set for the following tick as a pure function of the current
// registers and the sampled external signals; the host harness applies it
// atomically, one tick at a time.
package bridge
