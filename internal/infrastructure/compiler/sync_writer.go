package compiler

import (
	"io"
	"sync"
)

// SyncWriter serializes writes to an underlying writer.
// Thread-safe: concurrent compiler processes and loggers may share one.
type SyncWriter struct {
	underlying io.Writer
	mu         sync.Mutex
}

// NewSyncWriter wraps w. A writer that is already a *SyncWriter is returned
// as is so every user ends up on the same lock.
func NewSyncWriter(w io.Writer) *SyncWriter {
	if sw, ok := w.(*SyncWriter); ok {
		return sw
	}
	return &SyncWriter{underlying: w}
}

// Write implements io.Writer.
func (w *SyncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.underlying.Write(p)
}
