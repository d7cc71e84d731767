// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encode assembles a small subset of RV64I into 32-bit instruction
// words: add, sub, and, or (R-type), addi and ld (I-type), sd (S-type), and
// beq (B-type).
package encode

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported marks a mnemonic outside the supported subset.
	ErrUnsupported = errors.New("unsupported instruction")

	// ErrOperandCount marks an instruction with the wrong number of operands.
	ErrOperandCount = errors.New("wrong operand count")

	// ErrRegister marks an operand that is not x0-x31 or an ABI register name.
	ErrRegister = errors.New("invalid register")

	// ErrImmediate marks an unparsable or out-of-range immediate or offset.
	ErrImmediate = errors.New("invalid immediate")
)

// Format is an instruction encoding format.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatS
	FormatB
)

// Opcode describes how one mnemonic is encoded.
type Opcode struct {
	Format Format
	Opcode uint32
	Funct3 uint32
	Funct7 uint32

	// Mem marks I/S forms whose last operand is offset(base).
	Mem bool
}

var opcodes = map[string]Opcode{
	"add":  {Format: FormatR, Opcode: 0b0110011, Funct3: 0b000, Funct7: 0b0000000},
	"sub":  {Format: FormatR, Opcode: 0b0110011, Funct3: 0b000, Funct7: 0b0100000},
	"and":  {Format: FormatR, Opcode: 0b0110011, Funct3: 0b111, Funct7: 0b0000000},
	"or":   {Format: FormatR, Opcode: 0b0110011, Funct3: 0b110, Funct7: 0b0000000},
	"addi": {Format: FormatI, Opcode: 0b0010011, Funct3: 0b000},
	"ld":   {Format: FormatI, Opcode: 0b0000011, Funct3: 0b011, Mem: true},
	"sd":   {Format: FormatS, Opcode: 0b0100011, Funct3: 0b011, Mem: true},
	"beq":  {Format: FormatB, Opcode: 0b1100011, Funct3: 0b000},
}

// Lookup returns the encoding of mnemonic, which must be lowercase.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := opcodes[mnemonic]
	return op, ok
}

// Immediate ranges. I and S take a signed 12-bit value; B takes an even
// signed 13-bit byte offset.
const (
	minImm12    = -2048
	maxImm12    = 2047
	minBranch   = -4096
	maxBranch   = 4094
	regFieldMax = 31
)

// EncodeR packs funct7 | rs2 | rs1 | funct3 | rd | opcode.
func EncodeR(op Opcode, rd, rs1, rs2 uint32) uint32 {
	return op.Funct7<<25 | rs2<<20 | rs1<<15 | op.Funct3<<12 | rd<<7 | op.Opcode
}

// EncodeI packs imm[11:0] | rs1 | funct3 | rd | opcode.
func EncodeI(op Opcode, rd, rs1 uint32, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	return u<<20 | rs1<<15 | op.Funct3<<12 | rd<<7 | op.Opcode
}

// EncodeS packs imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | opcode.
func EncodeS(op Opcode, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	return hi<<25 | rs2<<20 | rs1<<15 | op.Funct3<<12 | lo<<7 | op.Opcode
}

// EncodeB packs imm[12] | imm[10:5] | rs2 | rs1 | funct3 | imm[4:1] | imm[11] | opcode.
func EncodeB(op Opcode, rs1, rs2 uint32, offset int32) uint32 {
	u := uint32(offset)
	b12 := (u >> 12) & 0x1
	b11 := (u >> 11) & 0x1
	b10to5 := (u >> 5) & 0x3F
	b4to1 := (u >> 1) & 0xF
	return b12<<31 | b10to5<<25 | rs2<<20 | rs1<<15 | op.Funct3<<12 | b4to1<<8 | b11<<7 | op.Opcode
}

// Encode encodes one instruction. mnemonic is matched case-insensitively by
// ParseLine; here it must already be lowercase.
func Encode(mnemonic string, operands []string) (uint32, error) {
	op, ok := Lookup(mnemonic)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, mnemonic)
	}

	switch op.Format {
	case FormatR:
		if err := wantOperands(mnemonic, operands, "rd, rs1, rs2"); err != nil {
			return 0, err
		}
		regs, err := parseRegisters(operands...)
		if err != nil {
			return 0, err
		}
		return EncodeR(op, regs[0], regs[1], regs[2]), nil

	case FormatI:
		if op.Mem {
			if err := wantOperands(mnemonic, operands, "rd, offset(rs1)"); err != nil {
				return 0, err
			}
			rd, err := ParseRegister(operands[0])
			if err != nil {
				return 0, err
			}
			off, rs1, err := parseMemOperand(operands[1])
			if err != nil {
				return 0, err
			}
			return EncodeI(op, rd, rs1, off), nil
		}
		if err := wantOperands(mnemonic, operands, "rd, rs1, imm"); err != nil {
			return 0, err
		}
		regs, err := parseRegisters(operands[:2]...)
		if err != nil {
			return 0, err
		}
		imm, err := parseImm12(operands[2])
		if err != nil {
			return 0, err
		}
		return EncodeI(op, regs[0], regs[1], imm), nil

	case FormatS:
		if err := wantOperands(mnemonic, operands, "rs2, offset(rs1)"); err != nil {
			return 0, err
		}
		rs2, err := ParseRegister(operands[0])
		if err != nil {
			return 0, err
		}
		off, rs1, err := parseMemOperand(operands[1])
		if err != nil {
			return 0, err
		}
		return EncodeS(op, rs1, rs2, off), nil

	case FormatB:
		if err := wantOperands(mnemonic, operands, "rs1, rs2, offset"); err != nil {
			return 0, err
		}
		regs, err := parseRegisters(operands[:2]...)
		if err != nil {
			return 0, err
		}
		off, err := parseBranchOffset(operands[2])
		if err != nil {
			return 0, err
		}
		return EncodeB(op, regs[0], regs[1], off), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupported, mnemonic)
}

func wantOperands(mnemonic string, operands []string, shape string) error {
	want := 1
	for _, c := range shape {
		if c == ',' {
			want++
		}
	}
	if len(operands) != want {
		return fmt.Errorf("%w: %s requires %d operands: %s", ErrOperandCount, mnemonic, want, shape)
	}
	return nil
}
