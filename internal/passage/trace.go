// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package passage

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Trace collects human-readable analysis decisions. The lines feed the
// web UI's debug panel and are mirrored to the logger at debug level.
// Tracing is observational only: a nil *Trace is valid and drops
// everything.
type Trace struct {
	mu    sync.Mutex
	lines []string
	log   *zap.Logger
}

// NewTrace returns a trace mirroring to log (zap.NewNop when nil).
func NewTrace(log *zap.Logger) *Trace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Trace{log: log}
}

// Printf records one formatted line.
func (t *Trace) Printf(format string, args ...any) {
	if t == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	t.mu.Lock()
	t.lines = append(t.lines, line)
	t.mu.Unlock()
	t.log.Debug(line)
}

// Lines returns a copy of everything recorded so far.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
