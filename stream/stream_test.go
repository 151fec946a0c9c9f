package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quantsignal/tbbocodec/errs"
)

func TestCompressDecompress_WithLogger(t *testing.T) {
	input := "AAPL,N,A,@,100,100,150.25,500\r\n"

	var compressed bytes.Buffer
	require.NoError(t, Compress(bytes.NewReader([]byte(input)), &compressed, WithLogger(zerolog.Nop())))

	var decompressed bytes.Buffer
	require.NoError(t, Decompress(bytes.NewReader(compressed.Bytes()), &decompressed, WithLogger(zerolog.Nop())))

	require.Equal(t, input, decompressed.String())
}

func TestDecompress_TruncatedStream(t *testing.T) {
	input := "AAPL,N,A,@,100,100,150.25,500\r\n"

	var compressed bytes.Buffer
	require.NoError(t, Compress(bytes.NewReader([]byte(input)), &compressed))

	truncated := compressed.Bytes()[:compressed.Len()-2]

	var out bytes.Buffer
	err := Decompress(bytes.NewReader(truncated), &out)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestCompress_MalformedLine(t *testing.T) {
	input := "AAPL,N,A,@,100,100,150.25\r\n" // missing size field

	var compressed bytes.Buffer
	err := Compress(bytes.NewReader([]byte(input)), &compressed)
	require.ErrorIs(t, err, errs.ErrMalformedRecord)
}

// TestCompress_BlankLinesSkipped documents a deliberate divergence from the
// original encoder, which would fatal-error on a line with no ticker field:
// blank lines (e.g. from a trailing newline) are tolerated and skipped in
// both dictionary-building and encoding passes.
func TestCompress_BlankLinesSkipped(t *testing.T) {
	input := strings.Join([]string{
		"AAPL,N,A,@,100,100,150.25,500",
		"",
		"MSFT,O,B,@,101,101,300.00,1000",
		"",
	}, "\r\n")

	var compressed bytes.Buffer
	require.NoError(t, Compress(bytes.NewReader([]byte(input)), &compressed))

	var decompressed bytes.Buffer
	require.NoError(t, Decompress(bytes.NewReader(compressed.Bytes()), &decompressed))

	want := "AAPL,N,A,@,100,100,150.25,500\r\n" + "MSFT,O,B,@,101,101,300.00,1000\r\n"
	require.Equal(t, want, decompressed.String())
}
