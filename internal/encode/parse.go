// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var abiRegisters = map[string]uint32{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

// memOperand matches offset(base), e.g. 8(sp) or -16(x5).
var memOperand = regexp.MustCompile(`^([^()\s]+)\(\s*([A-Za-z][0-9A-Za-z]*)\s*\)$`)

// ParseRegister accepts x0-x31 and the standard ABI names, case-insensitively.
func ParseRegister(s string) (uint32, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if n, ok := abiRegisters[name]; ok {
		return n, nil
	}
	if digits, ok := strings.CutPrefix(name, "x"); ok && digits != "" {
		n, err := strconv.ParseUint(digits, 10, 8)
		if err == nil && n <= regFieldMax {
			return uint32(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrRegister, s)
}

func parseRegisters(ops ...string) ([]uint32, error) {
	regs := make([]uint32, len(ops))
	for i, op := range ops {
		r, err := ParseRegister(op)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	return regs, nil
}

// ParseImmediate parses a decimal, 0x hex, or 0b binary integer with an
// optional sign. A leading zero does not mean octal.
func ParseImmediate(s string) (int64, error) {
	t := strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(t, "-"):
		neg = true
		t = t[1:]
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	}

	base := 10
	switch {
	case len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X"):
		base, t = 16, t[2:]
	case len(t) > 2 && (t[:2] == "0b" || t[:2] == "0B"):
		base, t = 2, t[2:]
	}

	n, err := strconv.ParseInt(t, base, 64)
	if err != nil || t == "" || t[0] == '-' || t[0] == '+' {
		return 0, fmt.Errorf("%w: %q", ErrImmediate, s)
	}
	if neg {
		n = -n
	}
	return n, nil
}

func parseImm12(s string) (int32, error) {
	n, err := ParseImmediate(s)
	if err != nil {
		return 0, err
	}
	if n < minImm12 || n > maxImm12 {
		return 0, fmt.Errorf("%w: %s outside [%d, %d]", ErrImmediate, s, minImm12, maxImm12)
	}
	return int32(n), nil
}

func parseBranchOffset(s string) (int32, error) {
	n, err := ParseImmediate(s)
	if err != nil {
		return 0, err
	}
	if n < minBranch || n > maxBranch {
		return 0, fmt.Errorf("%w: %s outside [%d, %d]", ErrImmediate, s, minBranch, maxBranch)
	}
	if n%2 != 0 {
		return 0, fmt.Errorf("%w: branch offset %s is odd", ErrImmediate, s)
	}
	return int32(n), nil
}

func parseMemOperand(s string) (int32, uint32, error) {
	m := memOperand.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q is not offset(register)", ErrImmediate, s)
	}
	off, err := parseImm12(m[1])
	if err != nil {
		return 0, 0, err
	}
	base, err := ParseRegister(m[2])
	if err != nil {
		return 0, 0, err
	}
	return off, base, nil
}

// ParseLine splits one line of assembly into a lowercase mnemonic and its
// comma-separated operands. Text after # is a comment. ok is false for
// blank and comment-only lines.
func ParseLine(line string) (mnemonic string, operands []string, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, false
	}

	head, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i:])
	}
	mnemonic = strings.ToLower(head)
	if rest == "" {
		return mnemonic, nil, true
	}
	for _, op := range strings.Split(rest, ",") {
		operands = append(operands, strings.TrimSpace(op))
	}
	return mnemonic, operands, true
}
