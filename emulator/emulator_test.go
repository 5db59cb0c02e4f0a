package emulator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ubridge/alu"
	"github.com/ezrec/ubridge/bridge"
	"github.com/ezrec/ubridge/serial"
)

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	assert.False(m.Verbose)
	assert.NotNil(m.Fifo())
	assert.NotNil(m.Transmitter())
	assert.Equal(bridge.PHASE_IDLE, m.State.Phase)

	_, err = NewMachine(bridge.Config{DataWidth: 8, OpcodeWidth: 9})
	assert.ErrorIs(err, bridge.ErrOpcodeWidth)
}

func TestMachineDefines(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	defines := map[string]string{}
	for key, value := range m.Defines() {
		defines[key] = value
	}

	assert.Equal("8", defines["DATA_WIDTH"])
	assert.Equal("6", defines["OPCODE_WIDTH"])
	assert.Equal("6", defines["OP_ADD"])
}

func TestRequestTriple(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	fifo := m.Fifo()
	assert.NoError(fifo.Push(0x05))
	assert.NoError(fifo.Push(0x03))
	assert.NoError(fifo.Push(uint32(alu.OP_ADD)))

	assert.NoError(m.Run(0))

	assert.Equal(uint32(0x05), m.State.A)
	assert.Equal(uint32(0x03), m.State.B)
	assert.Equal(uint32(alu.OP_ADD), m.State.Opcode)
	assert.Equal([]uint32{0x08}, m.Transmitter().Sent)
}

func TestRequestTripleRepeats(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	// Opcode 0x21 is whatever the arithmetic unit makes of it; the
	// second identical request must reproduce the identical result.
	fifo := m.Fifo()
	for range 2 {
		assert.NoError(fifo.Push(0x05))
		assert.NoError(fifo.Push(0x03))
		assert.NoError(fifo.Push(0x21))
	}

	assert.NoError(m.Run(0))

	sent := m.Transmitter().Sent
	assert.Len(sent, 2)
	assert.Equal(sent[0], sent[1])
	assert.Equal(alu.Eval(0x05, 0x03, 0x21)&0xff, sent[0])
}

func TestStallResume(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	// Only operand A arrives.
	assert.NoError(m.Fifo().Push(0x05))
	for range 5 {
		assert.NoError(m.Tick())
	}

	assert.Equal(bridge.PHASE_PAUSED, m.State.Phase)
	assert.Equal(bridge.PHASE_OPERAND_B, m.State.Resume)
	assert.Equal(uint32(0x05), m.State.A)
	assert.Empty(m.Transmitter().Sent)

	// The next byte is consumed as operand B, not re-requested as A.
	assert.NoError(m.Fifo().Push(0x03))
	assert.NoError(m.Fifo().Push(uint32(alu.OP_XOR)))
	assert.NoError(m.Run(0))

	assert.Equal(uint32(0x05), m.State.A)
	assert.Equal(uint32(0x03), m.State.B)
	assert.Equal([]uint32{0x06}, m.Transmitter().Sent)
}

func TestBlockedSink(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	tx := m.Transmitter()
	tx.Hold = true

	fifo := m.Fifo()
	assert.NoError(fifo.Push(0x05))
	assert.NoError(fifo.Push(0x03))
	assert.NoError(fifo.Push(uint32(alu.OP_ADD)))

	for range 8 {
		assert.NoError(m.Tick())
	}

	// Busy-waiting on the full sink; nothing transmitted.
	assert.Equal(bridge.PHASE_SEND, m.State.Phase)
	assert.Empty(tx.Sent)

	// Exactly one send occurs once unblocked.
	tx.Hold = false
	assert.NoError(m.Run(0))
	assert.Equal([]uint32{0x08}, tx.Sent)
}

func TestSendCompleteOverride(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	// A slow transmitter is still sending the first result when the
	// second back-to-back request reaches the send phase. The
	// send-complete pulse for the first byte forces the return to idle,
	// and the second result is never handed over: completion wins over
	// the pending send.
	m.Transmitter().Latency = 4

	fifo := m.Fifo()
	assert.NoError(fifo.Push(0x05))
	assert.NoError(fifo.Push(0x03))
	assert.NoError(fifo.Push(uint32(alu.OP_ADD)))
	assert.NoError(fifo.Push(0x07))
	assert.NoError(fifo.Push(0x02))
	assert.NoError(fifo.Push(uint32(alu.OP_ADD)))

	assert.NoError(m.Run(0))

	assert.Equal([]uint32{0x08}, m.Transmitter().Sent)
	assert.Equal(bridge.PHASE_IDLE, m.State.Phase)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	fifo := m.Fifo()
	assert.NoError(fifo.Push(0x05))
	assert.NoError(fifo.Push(0x03))
	for range 3 {
		assert.NoError(m.Tick())
	}
	assert.NotEqual(bridge.State{}, m.State)

	// Reset discards the partially latched request.
	m.Reset()
	assert.Equal(bridge.State{}, m.State)
	assert.Zero(m.Ticks)
	assert.False(m.Rx.HasData())
}

func TestTapeSource(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	output := &bytes.Buffer{}
	m.Rx = &serial.Tape{Input: bytes.NewReader([]byte{0x05, 0x03, byte(alu.OP_ADD)})}
	m.Transmitter().Output = output
	m.Reset()

	assert.NoError(m.Run(0))
	assert.Equal([]byte{0x08}, output.Bytes())
}

func TestRunTickLimit(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMachine(bridge.Config{})
	assert.NoError(err)

	// A request parked behind a held transmitter never goes quiescent.
	m.Transmitter().Hold = true
	fifo := m.Fifo()
	assert.NoError(fifo.Push(0x05))
	assert.NoError(fifo.Push(0x03))
	assert.NoError(fifo.Push(uint32(alu.OP_ADD)))

	err = m.Run(16)
	assert.ErrorIs(err, ErrTickLimit)
}
