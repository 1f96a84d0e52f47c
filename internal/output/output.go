// Package output implements the line-oriented progress sinks used by the
// synchronizers.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Writer writes progress lines to an io.Writer. It is safe for concurrent
// use; lines from different goroutines never interleave.
type Writer struct {
	mu     *sync.Mutex
	w      io.Writer
	prefix string
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{mu: &sync.Mutex{}, w: w}
}

// WithPrefix returns a Writer that shares w's destination and lock and
// prefixes every line with the given string.
func (w *Writer) WithPrefix(prefix string) *Writer {
	return &Writer{mu: w.mu, w: w.w, prefix: w.prefix + prefix}
}

func (w *Writer) WriteLine(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprint(w.w, w.prefix, line, "\n")
}

// Recorder keeps every line in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *Recorder) WriteLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Count returns the number of lines containing substr.
func (r *Recorder) Count(substr string) int {
	n := 0
	for _, line := range r.Lines() {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
