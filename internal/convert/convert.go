// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert converts unsigned 32-bit integers between hexadecimal and
// decimal text. Input is a count followed by that many whitespace-separated
// tokens; output is one converted value per line, in input order.
//
// hex2dec prints unpadded decimal. dec2hex prints exactly 8 uppercase hex
// digits with no prefix (255 -> "000000FF").
package convert

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pdiddy/baseconv/pkg/types"
)

// Convert converts the first count tokens in mode and returns the formatted
// results in input order. Tokens past count are ignored.
func Convert(mode types.Mode, count int, tokens []string) ([]string, error) {
	if _, err := types.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrBadCount, count)
	}
	if len(tokens) < count {
		return nil, fmt.Errorf("%w: got %d of %d tokens", ErrShortInput, len(tokens), count)
	}

	out := make([]string, count)
	for i, tok := range tokens[:count] {
		s, err := ConvertToken(mode, tok)
		if err != nil {
			return nil, &TokenError{Index: i + 1, Token: tok, Mode: mode, Err: err}
		}
		out[i] = s
	}
	return out, nil
}

// Options controls a streaming Run.
type Options struct {
	// KeepGoing reports malformed tokens to Errors and continues. The run
	// still returns an error wrapping ErrMalformedToken at the end.
	KeepGoing bool

	// Errors receives one line per skipped token. Nil discards them.
	Errors io.Writer

	// JSON writes each result as a JSON Conversion object instead of the
	// bare value.
	JSON bool

	// OnConvert, if set, is called after each result is written. An error
	// stops the run.
	OnConvert func(types.Conversion) error
}

// Result holds the outcome of a Run.
type Result struct {
	Converted int
	Failed    int
}

// Total returns the number of tokens processed.
func (r Result) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any token was malformed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run reads a count and then count tokens from r, converts each in mode and
// writes one line per result to w. Output already written stays written when
// a later token fails.
func Run(ctx context.Context, mode types.Mode, r io.Reader, w io.Writer, opts Options) (res Result, err error) {
	if _, err := types.ParseMode(string(mode)); err != nil {
		return res, err
	}

	errW := opts.Errors
	if errW == nil {
		errW = io.Discard
	}

	sc := newTokenScanner(r, MaxTokenLen)

	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("writing output: %w", ferr)
		}
	}()

	count, err := readCount(sc)
	if err != nil {
		return res, err
	}

	for i := 1; i <= count; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if !sc.Scan() {
			if serr := sc.Err(); serr != nil {
				return res, fmt.Errorf("reading input: %w", serr)
			}
			return res, fmt.Errorf("%w: read %d of %d tokens", ErrShortInput, i-1, count)
		}
		tok := sc.Text()

		var (
			value uint32
			perr  error
		)
		if sc.TooLong() {
			perr = fmt.Errorf("%w: longer than %d bytes", ErrMalformedToken, MaxTokenLen)
			tok = abbreviate(tok)
		} else {
			value, perr = ParseToken(mode, tok)
		}
		if perr != nil {
			terr := &TokenError{Index: i, Token: tok, Mode: mode, Err: perr}
			if !opts.KeepGoing {
				return res, terr
			}
			fmt.Fprintf(errW, "skipped: %v\n", terr)
			res.Failed++
			continue
		}

		c := types.Conversion{
			Mode:   mode,
			Input:  tok,
			Output: Format(mode, value),
			Value:  value,
			At:     time.Now().UTC(),
		}
		if err := writeResult(bw, c, opts.JSON); err != nil {
			return res, err
		}
		if opts.OnConvert != nil {
			if err := opts.OnConvert(c); err != nil {
				return res, err
			}
		}
		res.Converted++
	}

	if res.HasFailures() {
		return res, fmt.Errorf("%d of %d tokens skipped: %w", res.Failed, res.Total(), ErrMalformedToken)
	}
	return res, nil
}

func readCount(sc *tokenScanner) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("reading input: %w", err)
		}
		return 0, fmt.Errorf("%w: missing", ErrBadCount)
	}
	if sc.TooLong() {
		return 0, fmt.Errorf("%w: longer than %d bytes", ErrBadCount, MaxTokenLen)
	}
	tok := sc.Text()
	count, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadCount, tok)
	}
	if count < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrBadCount, count)
	}
	return count, nil
}

// abbreviate shortens a truncated token for diagnostics.
func abbreviate(tok string) string {
	const keep = 32
	if len(tok) <= keep {
		return tok
	}
	return tok[:keep] + "..."
}

func writeResult(w io.Writer, c types.Conversion, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(w, c.Output); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
