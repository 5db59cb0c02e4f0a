package serial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: bytes.NewReader([]byte{0x05, 0x03, 0x21})}
	tape.Rewind()

	assert.True(tape.HasData())
	assert.Equal(uint32(0x05), tape.Next())
	// Next does not consume.
	assert.Equal(uint32(0x05), tape.Next())

	tape.Consume()
	assert.Equal(uint32(0x03), tape.Next())
	tape.Consume()
	assert.Equal(uint32(0x21), tape.Next())
	tape.Consume()

	assert.False(tape.HasData())
	assert.Equal(uint32(0), tape.Next())
}

func TestTape_Rewind(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: bytes.NewReader([]byte{0x05, 0x03})}
	tape.Rewind()

	tape.Consume()
	tape.Consume()
	assert.False(tape.HasData())

	// bytes.Reader supports seeking back to the start.
	tape.Rewind()
	assert.True(tape.HasData())
	assert.Equal(uint32(0x05), tape.Next())
}

func TestTape_NoInput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	tape.Rewind()

	assert.False(tape.HasData())
	tape.Consume()
	assert.False(tape.HasData())
}
