// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for baseconv: the conversion
// mode, the record of a converted token, and the configuration structs read
// by the CLI.
package types

import (
	"fmt"
	"time"
)

// Mode selects the conversion direction.
type Mode string

const (
	// ModeHexToDec parses base-16 tokens and prints them in base 10.
	ModeHexToDec Mode = "hex2dec"
	// ModeDecToHex parses base-10 tokens and prints them as 8 uppercase hex digits.
	ModeDecToHex Mode = "dec2hex"
)

// Modes lists every supported mode in a stable order.
var Modes = []Mode{ModeHexToDec, ModeDecToHex}

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHexToDec, ModeDecToHex:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeHexToDec, ModeDecToHex)
}

// SourceBase returns the radix tokens are parsed in.
func (m Mode) SourceBase() int {
	if m == ModeDecToHex {
		return 10
	}
	return 16
}

// TargetBase returns the radix results are printed in.
func (m Mode) TargetBase() int {
	if m == ModeDecToHex {
		return 16
	}
	return 10
}

// Conversion records one converted token.
type Conversion struct {
	// Mode is the direction the token was converted in.
	Mode Mode `json:"mode" yaml:"mode"`

	// Input is the token exactly as read.
	Input string `json:"input" yaml:"input"`

	// Output is the formatted result.
	Output string `json:"output" yaml:"output"`

	// Value is the parsed quantity.
	Value uint32 `json:"value" yaml:"value"`

	// At is when the conversion happened (UTC).
	At time.Time `json:"at" yaml:"at"`
}
