// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/ubridge/alu"
	"github.com/ezrec/ubridge/bridge"
	"github.com/ezrec/ubridge/internal"
	"github.com/ezrec/ubridge/serial"
)

const (
	// TICK_LIMIT_DEFAULT bounds Run when no limit is given.
	TICK_LIMIT_DEFAULT = 4096
)

// Machine is the simulation context: the bridge controller register set
// plus its three collaborators (inbound source, outbound sink, and the
// combinational arithmetic unit).
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Config bridge.Config // Controller parameters.
	State  bridge.State  // Current controller register set.

	Rx  serial.Source // Inbound byte source.
	Tx  serial.Sink   // Outbound byte sink.
	Alu alu.Func      // Arithmetic unit, evaluated continuously.

	Ticks int // Ticks since reset.
}

// NewMachine creates a machine with a Fifo source, a Transmitter sink, and
// the reference arithmetic unit, reset and ready to tick.
func NewMachine(cfg bridge.Config) (m *Machine, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	m = &Machine{
		Config: cfg.WithDefaults(),
		Rx:     &serial.Fifo{},
		Tx:     &serial.Transmitter{},
		Alu:    alu.Eval,
	}

	m.Reset()

	return
}

// Defines returns an iterator over all of the defines.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		bridge.Defines(),
		alu.Defines(),
	)
}

// Reset forces all controller registers to their zero values and rewinds
// the attached devices. Partially latched operands are discarded.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("bridge: reset")
	}

	m.State = bridge.State{}
	m.Ticks = 0

	m.Rx.Rewind()
	m.Tx.Rewind()
}

// Fifo returns the inbound source as a Fifo, or nil if it is not one.
func (m *Machine) Fifo() (fifo *serial.Fifo) {
	fifo, _ = m.Rx.(*serial.Fifo)
	return
}

// Transmitter returns the outbound sink as a Transmitter, or nil if it is
// not one.
func (m *Machine) Transmitter() (tx *serial.Transmitter) {
	tx, _ = m.Tx.(*serial.Transmitter)
	return
}

// Tick advances the simulation by one tick: the sink advances, the
// controller's current outputs act on the devices, and the register set is
// replaced atomically by its next value.
func (m *Machine) Tick() (err error) {
	m.Tx.Tick()

	st := m.State
	in := bridge.Inputs{
		RxReady: m.Rx.HasData(),
		RxData:  m.Rx.Next(),
		TxFull:  m.Tx.Full(),
		TxDone:  m.Tx.Done(),
		Result:  m.Alu(st.A, st.B, st.Opcode),
	}

	// Output decode of the current registers drives the devices. The
	// consume strobe is gated on the sampled ready signal, per the
	// source contract.
	if st.Consume() && in.RxReady {
		m.Rx.Consume()
	}
	if st.Produce() {
		err = m.Tx.Produce(st.TxData())
		if err != nil {
			err = &ErrRuntime{Tick: m.Ticks, Err: err}
			return
		}
	}

	next := bridge.Next(m.Config, st, in)
	if m.Verbose && next.Phase != st.Phase {
		log.Printf("bridge: %v -> %v", st.Phase, next.Phase)
	}

	m.State = next
	m.Ticks++

	return
}

// Idle reports whether the machine is quiescent: controller idle with no
// strobes pending, no inbound bytes queued, and the sink not transmitting.
func (m *Machine) Idle() bool {
	return m.State.Phase == bridge.PHASE_IDLE &&
		!m.State.Write &&
		!m.Rx.HasData() &&
		!m.Tx.Full()
}

// Run ticks the machine until it is quiescent, or the tick limit trips.
// A limit of zero selects TICK_LIMIT_DEFAULT.
func (m *Machine) Run(limit int) (err error) {
	if limit == 0 {
		limit = TICK_LIMIT_DEFAULT
	}

	for n := 0; n < limit; n++ {
		err = m.Tick()
		if err != nil {
			return
		}
		if m.Idle() {
			return
		}
	}

	err = &ErrRuntime{Tick: m.Ticks, Err: ErrTickLimit}

	return
}
