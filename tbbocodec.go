// Package tbbocodec provides a codec for trade-tick CSV streams: a two-pass
// compressor that builds a ticker dictionary and emits a compact bit-packed
// binary encoding, and a decompressor that reverses it. The round trip is
// lossless except that price text comes back normalized (for example "12."
// decodes as "12" and ".5" as "0.5").
//
// # Basic Usage
//
//	import "github.com/quantsignal/tbbocodec"
//
//	in, _ := os.Open("ticks.csv")
//	out, _ := os.Create("ticks.bin")
//	err := tbbocodec.Compress(in, out)
//
//	compressed, _ := os.Open("ticks.bin")
//	csv, _ := os.Create("ticks.csv")
//	err = tbbocodec.Decompress(compressed, csv)
//
// # Package Structure
//
// This package wraps the stream package, which drives the lower-level
// record, dict, codec, and price packages. Reach for stream directly when
// you need WithDebug or WithLogger; the wrappers here cover the common
// zero-configuration path.
package tbbocodec

import (
	"io"

	"github.com/quantsignal/tbbocodec/stream"
)

// Option configures a Compress or Decompress call. See stream.WithDebug and
// stream.WithLogger.
type Option = stream.Option

// Compress reads CSV records from r and writes tbbocodec's compact binary
// encoding to w. r must support seeking back to the start, since the format
// requires a dictionary-building pass before the encoding pass.
func Compress(r io.ReadSeeker, w io.Writer, opts ...Option) error {
	return stream.Compress(r, w, opts...)
}

// Decompress reads tbbocodec's binary encoding from r and writes the
// original CSV records to w.
func Decompress(r io.Reader, w io.Writer, opts ...Option) error {
	return stream.Decompress(r, w, opts...)
}
