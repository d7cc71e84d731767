// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/baseconv/pkg/types"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		mode   types.Mode
		count  int
		tokens []string
		want   []string
		errIs  error
	}{
		{
			name:   "dec2hex",
			mode:   types.ModeDecToHex,
			count:  3,
			tokens: []string{"255", "16", "0"},
			want:   []string{"000000FF", "00000010", "00000000"},
		},
		{
			name:   "hex2dec",
			mode:   types.ModeHexToDec,
			count:  3,
			tokens: []string{"FF", "10", "0"},
			want:   []string{"255", "16", "0"},
		},
		{
			name:   "zero count",
			mode:   types.ModeHexToDec,
			count:  0,
			tokens: nil,
			want:   []string{},
		},
		{
			name:   "extra tokens ignored",
			mode:   types.ModeHexToDec,
			count:  1,
			tokens: []string{"A", "B"},
			want:   []string{"10"},
		},
		{
			name:  "negative count",
			mode:  types.ModeHexToDec,
			count: -1,
			errIs: ErrBadCount,
		},
		{
			name:   "too few tokens",
			mode:   types.ModeDecToHex,
			count:  2,
			tokens: []string{"1"},
			errIs:  ErrShortInput,
		},
		{
			name:   "malformed",
			mode:   types.ModeDecToHex,
			count:  2,
			tokens: []string{"1", "x"},
			errIs:  ErrMalformedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.mode, tt.count, tt.tokens)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_TokenErrorPosition(t *testing.T) {
	_, err := Convert(types.ModeHexToDec, 3, []string{"1", "2", "ZZ"})
	var terr *TokenError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 3, terr.Index)
	assert.Equal(t, "ZZ", terr.Token)
	assert.Equal(t, types.ModeHexToDec, terr.Mode)
	assert.Contains(t, err.Error(), `token 3 "ZZ"`)
}

func TestConvert_UnknownMode(t *testing.T) {
	_, err := Convert(types.Mode("oct2dec"), 1, []string{"7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		mode  types.Mode
		input string
		want  string
	}{
		{name: "dec2hex", mode: types.ModeDecToHex, input: "3\n255\n16\n0\n", want: "000000FF\n00000010\n00000000\n"},
		{name: "hex2dec", mode: types.ModeHexToDec, input: "3\nFF\n10\n0\n", want: "255\n16\n0\n"},
		{name: "zero count", mode: types.ModeHexToDec, input: "0\n", want: ""},
		{name: "tokens on one line", mode: types.ModeHexToDec, input: "2 ff 0x7fffffff", want: "255\n2147483647\n"},
		{name: "trailing tokens ignored", mode: types.ModeDecToHex, input: "1\n10\n20\n", want: "0000000A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			res, err := Run(context.Background(), tt.mode, strings.NewReader(tt.input), &out, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
			assert.False(t, res.HasFailures())
			assert.Equal(t, strings.Count(tt.want, "\n"), res.Converted)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errIs   error
		wantOut string
	}{
		{name: "empty input", input: "", errIs: ErrBadCount},
		{name: "non-numeric count", input: "three\n1\n", errIs: ErrBadCount},
		{name: "negative count", input: "-2\n1\n", errIs: ErrBadCount},
		{name: "short input", input: "3\n1\n2\n", errIs: ErrShortInput, wantOut: "00000001\n00000002\n"},
		{name: "malformed stops run", input: "3\n1\nabc\n3\n", errIs: ErrMalformedToken, wantOut: "00000001\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Run(context.Background(), types.ModeDecToHex, strings.NewReader(tt.input), &out, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.errIs)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestRun_KeepGoing(t *testing.T) {
	var out, diag bytes.Buffer
	res, err := Run(context.Background(), types.ModeHexToDec,
		strings.NewReader("4\nFF\nXYZ\n10\n100000000\n"), &out,
		Options{KeepGoing: true, Errors: &diag})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.Equal(t, "255\n16\n", out.String())
	assert.Equal(t, Result{Converted: 2, Failed: 2}, res)
	assert.Equal(t, 4, res.Total())
	assert.Contains(t, diag.String(), `token 2 "XYZ"`)
	assert.Contains(t, diag.String(), `token 4 "100000000"`)
}

func TestRun_OversizedToken(t *testing.T) {
	huge := strings.Repeat("A", 70000)
	input := "3\nFF\n" + huge + "\n10\n"

	var out, diag bytes.Buffer
	res, err := Run(context.Background(), types.ModeHexToDec, strings.NewReader(input), &out,
		Options{KeepGoing: true, Errors: &diag})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.Equal(t, "255\n16\n", out.String())
	assert.Equal(t, Result{Converted: 2, Failed: 1}, res)
	assert.Contains(t, diag.String(), "token 2")
	assert.Contains(t, diag.String(), "longer than")
	assert.Less(t, diag.Len(), 200, "diagnostic should not echo the whole token")

	out.Reset()
	_, err = Run(context.Background(), types.ModeHexToDec, strings.NewReader(input), &out, Options{})
	var terr *TokenError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 2, terr.Index)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.Equal(t, "255\n", out.String())
}

func TestRun_LongZeroPaddedTokenIsMalformed(t *testing.T) {
	// Fits in 32 bits numerically, but exceeds the token length cap.
	tok := strings.Repeat("0", MaxTokenLen) + "1"
	_, err := Run(context.Background(), types.ModeDecToHex, strings.NewReader("1 "+tok), io.Discard, Options{})
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestRun_ReadError(t *testing.T) {
	diskErr := errors.New("disk gone")
	r := io.MultiReader(strings.NewReader("3\n1 "), iotest.ErrReader(diskErr))

	var out bytes.Buffer
	_, err := Run(context.Background(), types.ModeDecToHex, r, &out, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, diskErr)
	assert.NotErrorIs(t, err, ErrShortInput)
	assert.Contains(t, err.Error(), "reading input")
	assert.Equal(t, "00000001\n", out.String())
}

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), types.ModeDecToHex, strings.NewReader("1 255"), &out, Options{JSON: true})
	require.NoError(t, err)

	var c types.Conversion
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &c))
	assert.Equal(t, types.ModeDecToHex, c.Mode)
	assert.Equal(t, "255", c.Input)
	assert.Equal(t, "000000FF", c.Output)
	assert.Equal(t, uint32(255), c.Value)
	assert.False(t, c.At.IsZero())
}

func TestRun_OnConvert(t *testing.T) {
	var seen []types.Conversion
	opts := Options{OnConvert: func(c types.Conversion) error {
		seen = append(seen, c)
		return nil
	}}
	var out bytes.Buffer
	_, err := Run(context.Background(), types.ModeHexToDec, strings.NewReader("2 a b"), &out, opts)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, "10", seen[0].Output)
	assert.Equal(t, "11", seen[1].Output)

	boom := errors.New("disk full")
	opts.OnConvert = func(types.Conversion) error { return boom }
	_, err = Run(context.Background(), types.ModeHexToDec, strings.NewReader("2 a b"), &out, opts)
	assert.ErrorIs(t, err, boom)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Run(ctx, types.ModeHexToDec, strings.NewReader("1 a"), &out, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
