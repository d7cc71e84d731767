// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"strconv"
	"testing"
	"testing/quick"

	"github.com/pdiddy/baseconv/pkg/types"
)

func TestFormatHex(t *testing.T) {
	tests := []struct {
		n    uint32
		want string
	}{
		{0, "00000000"},
		{16, "00000010"},
		{255, "000000FF"},
		{0xDEADBEEF, "DEADBEEF"},
		{4294967295, "FFFFFFFF"},
	}
	for _, tt := range tests {
		if got := FormatHex(tt.n); got != tt.want {
			t.Errorf("FormatHex(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDec(t *testing.T) {
	tests := []struct {
		n    uint32
		want string
	}{
		{0x0, "0"},
		{0x10, "16"},
		{0xFF, "255"},
		{0xFFFFFFFF, "4294967295"},
	}
	for _, tt := range tests {
		if got := FormatDec(tt.n); got != tt.want {
			t.Errorf("FormatDec(%#x) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name    string
		mode    types.Mode
		token   string
		want    uint32
		wantErr bool
	}{
		{name: "hex upper", mode: types.ModeHexToDec, token: "FF", want: 255},
		{name: "hex lower", mode: types.ModeHexToDec, token: "ff", want: 255},
		{name: "hex prefix", mode: types.ModeHexToDec, token: "0x1A", want: 26},
		{name: "hex upper prefix", mode: types.ModeHexToDec, token: "0XdeadBEEF", want: 0xDEADBEEF},
		{name: "hex zero-padded", mode: types.ModeHexToDec, token: "000000FF", want: 255},
		{name: "hex max", mode: types.ModeHexToDec, token: "FFFFFFFF", want: 4294967295},
		{name: "hex overflow", mode: types.ModeHexToDec, token: "100000000", wantErr: true},
		{name: "hex bad digit", mode: types.ModeHexToDec, token: "G1", wantErr: true},
		{name: "hex prefix only", mode: types.ModeHexToDec, token: "0x", wantErr: true},
		{name: "hex negative", mode: types.ModeHexToDec, token: "-1", wantErr: true},
		{name: "dec zero", mode: types.ModeDecToHex, token: "0", want: 0},
		{name: "dec", mode: types.ModeDecToHex, token: "255", want: 255},
		{name: "dec max", mode: types.ModeDecToHex, token: "4294967295", want: 4294967295},
		{name: "dec overflow", mode: types.ModeDecToHex, token: "4294967296", wantErr: true},
		{name: "dec hex digits", mode: types.ModeDecToHex, token: "FF", wantErr: true},
		{name: "dec sign", mode: types.ModeDecToHex, token: "+5", wantErr: true},
		{name: "dec prefix not allowed", mode: types.ModeDecToHex, token: "0x10", wantErr: true},
		{name: "dec underscore", mode: types.ModeDecToHex, token: "1_000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.mode, tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedToken) {
					t.Fatalf("ParseToken(%q) err = %v, want ErrMalformedToken", tt.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseToken(%q): %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseToken(%q) = %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseToken_RangeErrorUnwraps(t *testing.T) {
	_, err := ParseToken(types.ModeDecToHex, "99999999999")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("err = %v, want strconv.ErrRange in chain", err)
	}
}

func TestRoundTrip(t *testing.T) {
	hexRoundTrip := func(n uint32) bool {
		got, err := ParseToken(types.ModeHexToDec, FormatHex(n))
		return err == nil && got == n
	}
	decRoundTrip := func(n uint32) bool {
		got, err := ParseToken(types.ModeDecToHex, FormatDec(n))
		return err == nil && got == n
	}
	if err := quick.Check(hexRoundTrip, nil); err != nil {
		t.Error(err)
	}
	if err := quick.Check(decRoundTrip, nil); err != nil {
		t.Error(err)
	}

	for _, n := range []uint32{0, 1, 255, 1 << 31, 4294967295} {
		hex, err := ConvertToken(types.ModeDecToHex, FormatDec(n))
		if err != nil {
			t.Fatalf("dec2hex %d: %v", n, err)
		}
		dec, err := ConvertToken(types.ModeHexToDec, hex)
		if err != nil {
			t.Fatalf("hex2dec %s: %v", hex, err)
		}
		if dec != FormatDec(n) {
			t.Errorf("round trip %d -> %s -> %s", n, hex, dec)
		}
	}
}
