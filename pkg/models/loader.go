package models

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Loader loads mesh assets. The zero value is usable.
type Loader struct {
	// Log receives debug diagnostics. Nil disables logging.
	Log *zap.Logger
}

// NewLoader creates a loader with logging disabled.
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) log() *zap.Logger {
	if l == nil || l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// maxLineSize bounds a single description line.
const maxLineSize = 64 << 20

// newScanner returns a line scanner that accepts lines up to maxLineSize.
func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// splitLine returns the whitespace-separated fields of a description line.
// ok is false for blank lines and # comments.
func splitLine(line string) (fields []string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}
	return strings.Fields(trimmed), true
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}

// parseIndex parses a 1-based face index. Tokens like "3/1/2" use the
// leading vertex index.
func parseIndex(s string) (int, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}
