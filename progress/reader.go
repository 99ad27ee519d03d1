package progress

import (
	"io"
	"sync/atomic"
)

// ReadCounter wraps an io.Reader and counts bytes read through it. Wrapped
// around a subprocess's stdout pipe, its Count gives TrackCount a byte-based
// progress signal without the stage having to track position itself. No
// stage in this module wraps a pipe in it.
type ReadCounter struct {
	r     io.Reader
	count uint64
}

func NewReadCounter(r io.Reader) *ReadCounter {
	return &ReadCounter{r: r}
}

func (h *ReadCounter) Read(p []byte) (int, error) {
	n, err := h.r.Read(p)
	if n > 0 {
		atomic.AddUint64(&h.count, uint64(n))
	}
	return n, err
}

func (h *ReadCounter) Count() uint64 {
	return atomic.LoadUint64(&h.count)
}
