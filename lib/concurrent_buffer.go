package lib

import (
	"bytes"
	"sync"
)

// ConcurrentBuffer captures child process output that may still be written
// while the timeout watcher runs on another goroutine.
type ConcurrentBuffer struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

// NewConcurrentBuffer constructs a new ConcurrentBuffer.
func NewConcurrentBuffer() *ConcurrentBuffer {
	return &ConcurrentBuffer{}
}

func (b *ConcurrentBuffer) Read(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Read(p)
}

func (b *ConcurrentBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Write(p)
}

// String returns the captured output without consuming it.
func (b *ConcurrentBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.String()
}
