// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pqr

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

// WriterOptions controls PQR line layout.
type WriterOptions struct {
	// KeepChain writes the chain identifier column.
	KeepChain bool

	// Whitespace separates fixed columns with extra spaces (see SpaceColumns).
	Whitespace bool
}

// Writer emits PQR files.
type Writer struct {
	w    *bufio.Writer
	opts WriterOptions
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts WriterOptions) *Writer {
	return &Writer{w: bufio.NewWriter(w), opts: opts}
}

// Lines renders atoms as PQR lines, with a TER record wherever the chain
// changes and a closing TER and END.
func Lines(atoms []*types.Atom, keepChain bool) []string {
	lines := make([]string, 0, len(atoms)+2)
	var (
		chain   string
		started bool
	)
	for _, a := range atoms {
		if !started {
			chain, started = a.ChainID, true
		} else if a.ChainID != chain {
			chain = a.ChainID
			lines = append(lines, "TER")
		}
		lines = append(lines, FormatAtom(a, keepChain))
	}
	return append(lines, "TER", "END")
}

// Write writes the header lines followed by the atom records and flushes.
func (pw *Writer) Write(header []string, atoms []*types.Atom) error {
	for _, line := range header {
		if _, err := fmt.Fprintln(pw.w, line); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, line := range Lines(atoms, pw.opts.KeepChain) {
		if pw.opts.Whitespace {
			line = SpaceColumns(line)
		}
		if _, err := fmt.Fprintln(pw.w, line); err != nil {
			return fmt.Errorf("writing atoms: %w", err)
		}
	}
	if err := pw.w.Flush(); err != nil {
		return fmt.Errorf("flushing PQR output: %w", err)
	}
	return nil
}
