// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/baseconv/internal/convert"
)

// maxLineLen bounds a single source line.
const maxLineLen = 64 * 1024

// Line is one non-blank source line and its encoding.
type Line struct {
	// Number is the 1-based line number in the source.
	Number int
	// Source is the line with surrounding whitespace trimmed.
	Source string
	Word   uint32
	Err    error
}

// Program is the result of assembling a source file.
type Program struct {
	Lines []Line
}

// Words returns the encoded words of the lines that assembled, in order.
func (p *Program) Words() []uint32 {
	var words []uint32
	for _, l := range p.Lines {
		if l.Err == nil {
			words = append(words, l.Word)
		}
	}
	return words
}

// Failed returns the number of lines that did not assemble.
func (p *Program) Failed() int {
	n := 0
	for _, l := range p.Lines {
		if l.Err != nil {
			n++
		}
	}
	return n
}

// Assemble encodes every instruction line read from r. A line that fails to
// encode is kept with its error; only read failures stop the pass.
func Assemble(ctx context.Context, r io.Reader) (*Program, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLen)

	prog := &Program{}
	for n := 1; sc.Scan(); n++ {
		select {
		case <-ctx.Done():
			return prog, ctx.Err()
		default:
		}

		raw := sc.Text()
		mnemonic, operands, ok := ParseLine(raw)
		if !ok {
			continue
		}
		word, err := Encode(mnemonic, operands)
		prog.Lines = append(prog.Lines, Line{
			Number: n,
			Source: strings.TrimSpace(raw),
			Word:   word,
			Err:    err,
		})
	}
	if err := sc.Err(); err != nil {
		return prog, fmt.Errorf("reading source: %w", err)
	}
	return prog, nil
}

// WriteListing writes the annotated listing: each source line padded to 40
// columns followed by its word as # 0xXXXXXXXX, or "Line N: error" for a
// line that failed.
func WriteListing(w io.Writer, prog *Program) error {
	bw := bufio.NewWriter(w)
	for _, l := range prog.Lines {
		if l.Err != nil {
			fmt.Fprintf(bw, "Line %d: %v\n", l.Number, l.Err)
			continue
		}
		fmt.Fprintf(bw, "%-40s # 0x%s\n", l.Source, convert.FormatHex(l.Word))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// WriteExecutable writes each word as four lines of two lowercase hex
// digits, most significant byte first.
func WriteExecutable(w io.Writer, words []uint32) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		for shift := 24; shift >= 0; shift -= 8 {
			fmt.Fprintf(bw, "%02x\n", byte(word>>shift))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing executable: %w", err)
	}
	return nil
}
