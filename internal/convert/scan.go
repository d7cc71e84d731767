// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"io"
)

// MaxTokenLen is the longest token Run reads in full. Longer words are
// consumed without buffering and reported as malformed.
const MaxTokenLen = 1024

// tokenScanner splits input into whitespace-separated words like
// bufio.ScanWords, but never fails with bufio.ErrTooLong: a word longer than
// limit is drained and returned as its first limit bytes with tooLong set.
type tokenScanner struct {
	sc    *bufio.Scanner
	limit int

	skipping bool
	prefix   []byte
	tooLong  bool
}

func newTokenScanner(r io.Reader, limit int) *tokenScanner {
	s := &tokenScanner{sc: bufio.NewScanner(r), limit: limit}
	s.sc.Split(s.split)
	return s
}

func (s *tokenScanner) Scan() bool   { return s.sc.Scan() }
func (s *tokenScanner) Text() string { return s.sc.Text() }
func (s *tokenScanner) Err() error   { return s.sc.Err() }

// TooLong reports whether the current token was truncated to limit bytes.
func (s *tokenScanner) TooLong() bool { return s.tooLong }

func (s *tokenScanner) split(data []byte, atEOF bool) (int, []byte, error) {
	if s.skipping {
		for i, b := range data {
			if isSpace(b) {
				return i + 1, s.finishLong(), nil
			}
		}
		if atEOF {
			return len(data), s.finishLong(), nil
		}
		return len(data), nil, nil
	}

	advance, token, err := bufio.ScanWords(data, atEOF)
	if err != nil {
		return advance, token, err
	}
	if token != nil {
		s.tooLong = len(token) > s.limit
		if s.tooLong {
			token = token[:s.limit]
		}
		return advance, token, nil
	}

	// A partial word is pending in data[advance:]. Drain it once it exceeds
	// limit so the scanner buffer never has to hold the whole thing.
	if len(data)-advance > s.limit {
		s.skipping = true
		s.prefix = append(s.prefix[:0], data[advance:advance+s.limit]...)
		return len(data), nil, nil
	}
	return advance, nil, nil
}

func (s *tokenScanner) finishLong() []byte {
	s.skipping = false
	s.tooLong = true
	return s.prefix
}

// isSpace matches the ASCII separators. Multi-byte Unicode spaces inside an
// over-long word do not end it.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
