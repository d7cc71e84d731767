// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/baseconv/pkg/types"
)

var (
	// ErrMalformedToken marks a token that is not a valid unsigned 32-bit
	// integer in the source base.
	ErrMalformedToken = errors.New("malformed token")

	// ErrBadCount marks a missing, non-numeric, or negative count.
	ErrBadCount = errors.New("bad count")

	// ErrShortInput marks input that ended before count tokens were read.
	ErrShortInput = errors.New("short input")
)

// TokenError reports a token that could not be converted.
type TokenError struct {
	// Index is the 1-based position of the token after the count.
	Index int
	Token string
	Mode  types.Mode
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %d %q: %v", e.Index, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// ParseToken parses token as an unsigned 32-bit integer in the source base
// of mode. Hex tokens are case-insensitive and may carry a 0x or 0X prefix.
func ParseToken(mode types.Mode, token string) (uint32, error) {
	digits := token
	if mode.SourceBase() == 16 {
		digits = trimHexPrefix(token)
	}
	if digits == "" {
		return 0, fmt.Errorf("%w: no digits", ErrMalformedToken)
	}

	n, err := strconv.ParseUint(digits, mode.SourceBase(), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	return uint32(n), nil
}

// FormatHex renders n as exactly 8 uppercase hex digits with no prefix.
func FormatHex(n uint32) string {
	return fmt.Sprintf("%08X", n)
}

// FormatDec renders n in base 10 with no padding.
func FormatDec(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

// Format renders n in the target base of mode.
func Format(mode types.Mode, n uint32) string {
	if mode.TargetBase() == 16 {
		return FormatHex(n)
	}
	return FormatDec(n)
}

// ConvertToken parses token in the source base of mode and formats it in
// the target base.
func ConvertToken(mode types.Mode, token string) (string, error) {
	n, err := ParseToken(mode, token)
	if err != nil {
		return "", err
	}
	return Format(mode, n), nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
