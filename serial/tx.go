package serial

import (
	"io"
)

const (
	// TX_LATENCY_DEFAULT is the default transmit time in ticks for one byte.
	TX_LATENCY_DEFAULT = 1
)

// Transmitter is the outbound byte sink. It holds a single byte at a time:
// accepting one makes the sink full for Latency ticks, after which the
// byte is written to Output (when set), appended to Sent, and the Done
// pulse is raised for exactly one tick.
//
// Hold forces the full condition without accepting anything, for driving
// the controller's blocked-send path from tests and scenarios.
type Transmitter struct {
	Latency int       // Ticks from accept to send-complete.
	Output  io.Writer // Optional byte stream for transmitted data.
	Hold    bool      // Forces Full while set.

	Sent []uint32 // Record of transmitted bytes.

	pending uint32
	busy    bool
	remain  int
	done    bool
}

var _ Sink = (*Transmitter)(nil)

// Rewind drops any in-flight byte and the transmit record.
// Sets the default latency if unset.
func (tx *Transmitter) Rewind() {
	if tx.Latency == 0 {
		tx.Latency = TX_LATENCY_DEFAULT
	}

	tx.Sent = tx.Sent[:0]
	tx.busy = false
	tx.remain = 0
	tx.done = false
}

// Full reports whether the transmitter cannot accept a byte.
func (tx *Transmitter) Full() bool {
	return tx.busy || tx.Hold
}

// Produce accepts one byte for transmission.
// Returns ErrChannelFull if a byte is already in flight.
func (tx *Transmitter) Produce(value uint32) (err error) {
	if tx.Latency == 0 {
		tx.Latency = TX_LATENCY_DEFAULT
	}

	if tx.Full() {
		err = ErrChannelFull
		return
	}

	tx.pending = value
	tx.busy = true
	tx.remain = tx.Latency

	return
}

// Done reports the send-complete pulse for the current tick.
func (tx *Transmitter) Done() bool {
	return tx.done
}

// Tick advances the transmission by one tick. The tick that finishes a
// byte writes it out and raises Done; the next tick lowers it again.
func (tx *Transmitter) Tick() {
	tx.done = false

	if !tx.busy {
		return
	}

	tx.remain--
	if tx.remain > 0 {
		return
	}

	if tx.Output != nil {
		_, _ = tx.Output.Write([]byte{byte(tx.pending)})
	}
	tx.Sent = append(tx.Sent, tx.pending)
	tx.busy = false
	tx.done = true
}
