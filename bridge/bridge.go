// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bridge

import (
	"fmt"
)

// Phase is the control phase of the bridge controller.
// The zero value is PHASE_IDLE, the reset phase.
type Phase int

const (
	PHASE_IDLE      = Phase(0) // idle
	PHASE_OPERAND_A = Phase(1) // opA
	PHASE_OPERAND_B = Phase(2) // opB
	PHASE_COMPUTE   = Phase(3) // compute
	PHASE_SEND      = Phase(4) // send
	PHASE_PAUSED    = Phase(5) // paused
)

var _phase_names = map[Phase]string{
	PHASE_IDLE:      "idle",
	PHASE_OPERAND_A: "opA",
	PHASE_OPERAND_B: "opB",
	PHASE_COMPUTE:   "compute",
	PHASE_SEND:      "send",
	PHASE_PAUSED:    "paused",
}

// String returns the phase name.
func (ph Phase) String() (text string) {
	text, ok := _phase_names[ph]
	if !ok {
		text = fmt.Sprintf("phase(%d)", int(ph))
	}
	return
}

// State is the complete register set of the bridge controller.
// The zero value is the reset state. Every register is replaced each tick
// by Next; nothing outside the controller mutates it.
type State struct {
	Phase  Phase // Current control phase.
	Resume Phase // Phase to re-enter when leaving PHASE_PAUSED; stale otherwise.

	A      uint32 // Operand A register.
	B      uint32 // Operand B register.
	Opcode uint32 // Opcode register, truncated to the opcode width.
	Result uint32 // Result register, held until the next completed request.

	Read  bool // Read claim register; see Consume.
	Write bool // Write strobe register; see Produce.
}

// Inputs are the external signals the controller samples each tick.
type Inputs struct {
	RxReady bool   // Inbound source has at least one byte queued.
	RxData  uint32 // Oldest queued inbound byte; stable while RxReady.
	TxFull  bool   // Outbound sink cannot accept a byte.
	TxDone  bool   // Single-tick pulse: an accepted byte finished transmission.
	Result  uint32 // Arithmetic unit output for the current A, B, Opcode lines.
}

// Consume is the read strobe output: true when the controller pops the
// inbound head byte this tick. The Read register is a claim set by the
// previous phase; it is gated off outside the byte-consuming phases, so a
// claim left set by PHASE_COMPUTE never over-reads during PHASE_SEND, and
// each consumed byte sees exactly one strobe.
func (st State) Consume() bool {
	switch st.Phase {
	case PHASE_OPERAND_A, PHASE_OPERAND_B, PHASE_COMPUTE:
		return st.Read
	}
	return false
}

// Produce is the write strobe output: true when the controller hands the
// Result register to the outbound sink this tick.
func (st State) Produce() bool {
	return st.Write
}

// TxData is the outbound byte line, driven from the Result register.
func (st State) TxData() uint32 {
	return st.Result
}

// String returns the current register set as a string.
func (st State) String() (text string) {
	regs := []string{"phase", "resume", "a", "b", "opcode", "result", "rd", "wr"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "phase":
			strval = st.Phase.String()
		case "resume":
			strval = st.Resume.String()
		case "a":
			strval = fmt.Sprintf("%02X", st.A)
		case "b":
			strval = fmt.Sprintf("%02X", st.B)
		case "opcode":
			strval = fmt.Sprintf("%02X", st.Opcode)
		case "result":
			strval = fmt.Sprintf("%02X", st.Result)
		case "rd":
			strval = "false"
			if st.Read {
				strval = "true"
			}
		case "wr":
			strval = "false"
			if st.Write {
				strval = "true"
			}
		}
		text += fmt.Sprintf("% 7s: %v\n", reg, strval)
	}

	return
}

// Next computes the register set for the following tick, as a pure
// function of the current registers and the sampled inputs.
//
// A byte is latched in the same tick its consuming read strobe pops it:
// the phase that sees RxReady latches RxData and sets the Read claim for
// the byte the successor phase will consume. Pausing never discards a
// latched register; the Resume register records which wait to re-enter.
func Next(cfg Config, st State, in Inputs) (next State) {
	cfg = cfg.WithDefaults()
	next = st

	switch st.Phase {
	case PHASE_IDLE:
		next.Write = false
		next.Read = false
		if in.RxReady {
			next.Read = true
			next.Phase = PHASE_OPERAND_A
		}
	case PHASE_OPERAND_A:
		if in.RxReady {
			next.A = in.RxData & cfg.DataMask()
			next.Read = true
			next.Phase = PHASE_OPERAND_B
		} else {
			next.Read = false
			next.Resume = PHASE_OPERAND_A
			next.Phase = PHASE_PAUSED
		}
	case PHASE_OPERAND_B:
		if in.RxReady {
			next.B = in.RxData & cfg.DataMask()
			next.Read = true
			next.Phase = PHASE_COMPUTE
		} else {
			next.Read = false
			next.Resume = PHASE_OPERAND_B
			next.Phase = PHASE_PAUSED
		}
	case PHASE_COMPUTE:
		if in.RxReady {
			next.Opcode = in.RxData & cfg.OpcodeMask()
			next.Read = true
			next.Resume = PHASE_IDLE
			next.Phase = PHASE_SEND
		} else {
			next.Read = false
			next.Resume = PHASE_COMPUTE
			next.Phase = PHASE_PAUSED
		}
	case PHASE_SEND:
		next.Read = false
		next.Write = false
		if in.TxDone {
			// Transmit completion is authoritative: it forces the
			// return to idle even while the sink reports full and
			// the pending result has not been handed over.
			next.Phase = PHASE_IDLE
			break
		}
		if !in.TxFull {
			next.Result = in.Result & cfg.DataMask()
			next.Write = true
			next.Phase = PHASE_IDLE
		}
	case PHASE_PAUSED:
		next.Write = false
		if in.RxReady {
			next.Read = true
			next.Phase = st.Resume
		} else {
			next.Read = false
		}
	default:
		// A corrupted phase register recovers to idle.
		next.Phase = PHASE_IDLE
		next.Read = false
		next.Write = false
	}

	return
}
