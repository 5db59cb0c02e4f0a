package serial

const (
	// FIFO_DEFAULT_CAPACITY is the default depth in bytes for a new Fifo.
	FIFO_DEFAULT_CAPACITY = 64
)

// Fifo is a queue-backed byte source. The test bench and the scenario
// runner push bytes into it; the bridge controller consumes them.
type Fifo struct {
	Capacity int

	Data []uint32
}

var _ Source = (*Fifo)(nil)

// Rewind empties the queue. Sets the default capacity if unset.
func (fc *Fifo) Rewind() {
	if fc.Capacity == 0 {
		fc.Capacity = FIFO_DEFAULT_CAPACITY
	}

	fc.Data = fc.Data[:0]
}

// Push appends a byte to the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (fc *Fifo) Push(value uint32) (err error) {
	if fc.Capacity == 0 {
		fc.Capacity = FIFO_DEFAULT_CAPACITY
	}

	if len(fc.Data) >= fc.Capacity {
		err = ErrChannelFull
		return
	}

	fc.Data = append(fc.Data, value)

	return
}

// HasData reports whether at least one byte is queued.
func (fc *Fifo) HasData() bool {
	return len(fc.Data) > 0
}

// Next returns the oldest queued byte without consuming it.
func (fc *Fifo) Next() (value uint32) {
	if len(fc.Data) > 0 {
		value = fc.Data[0]
	}
	return
}

// Consume pops the oldest queued byte. A pop on an empty queue is ignored.
func (fc *Fifo) Consume() {
	if len(fc.Data) > 0 {
		fc.Data = fc.Data[1:]
	}
}
