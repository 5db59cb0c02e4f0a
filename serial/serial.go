// Package serial provides the byte source and sink device models for the
// μBridge simulation. It includes a queue-backed source (Fifo), a
// stream-backed source (Tape), and an outbound sink with a transmit
// latency model (Transmitter).
package serial

// Source defines the inbound byte collaborator contract. The head byte is
// stable while HasData reports true and advances only on Consume; Consume
// while empty is a guarded no-op.
type Source interface {
	// Rewind resets the source to its initial state.
	Rewind()
	// HasData reports whether at least one byte is queued.
	HasData() bool
	// Next returns the oldest queued byte without consuming it.
	Next() uint32
	// Consume pops the oldest queued byte.
	Consume()
}

// Sink defines the outbound byte collaborator contract. Produce must only
// be called while Full reports false; Done pulses for a single tick when a
// previously accepted byte has finished transmission.
type Sink interface {
	// Rewind resets the sink to its initial state.
	Rewind()
	// Full reports whether the sink cannot accept a byte.
	Full() bool
	// Produce hands one byte to the sink.
	Produce(value uint32) error
	// Done reports the send-complete pulse for the current tick.
	Done() bool
	// Tick advances the sink by one tick.
	Tick()
}
