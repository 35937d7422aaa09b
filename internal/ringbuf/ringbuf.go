// Package ringbuf implements the block-trigger ring accumulator used by
// each detector to assemble fixed-size analysis blocks from arbitrary-size
// input chunks.
package ringbuf

// Buffer accumulates samples into a fixed-size analysis window and reports
// when a full block is ready. It is not safe for concurrent use; a Buffer is
// owned exclusively by a single detector, matching the no-aliasing rule.
type Buffer struct {
	data        []float32
	writeOffset int
	filled      int
}

// New allocates a Buffer for an analysis block of n samples.
func New(n int) *Buffer {
	return &Buffer{data: make([]float32, n)}
}

// Len returns the configured block size N.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Push copies chunk into the ring, wrapping as needed. chunk need not divide
// evenly into N; wrap-around is handled by straightforward segmented copies.
func (b *Buffer) Push(chunk []float32) {
	n := len(b.data)
	pos := 0
	for pos < len(chunk) {
		space := n - b.writeOffset
		toCopy := len(chunk) - pos
		if toCopy > space {
			toCopy = space
		}
		copy(b.data[b.writeOffset:], chunk[pos:pos+toCopy])
		b.writeOffset += toCopy
		if b.writeOffset == n {
			b.writeOffset = 0
		}
		pos += toCopy
	}
	b.filled += len(chunk)
}

// Ready reports whether at least N samples have been pushed since the last
// block boundary (or since construction/Reset).
func (b *Buffer) Ready() bool {
	return b.filled >= len(b.data)
}

// Snapshot writes the most recent N samples, in chronological order, into
// dst (which must have length N), then takes N samples off the filled
// counter; samples pushed past the block boundary count toward the next
// block, so one block is ready per N samples pushed. The ring's underlying
// data and write position are left untouched so accumulation continues
// seamlessly for the next block.
func (b *Buffer) Snapshot(dst []float32) {
	n := len(b.data)
	copy(dst, b.data[b.writeOffset:])
	copy(dst[n-b.writeOffset:], b.data[:b.writeOffset])
	b.filled -= n
	if b.filled < 0 {
		b.filled = 0
	}
}

// Reset clears all accumulated state, returning the buffer to its
// just-constructed condition.
func (b *Buffer) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.writeOffset = 0
	b.filled = 0
}
