// Package stream orchestrates the two-pass compressor and single-pass
// decompressor: the "driver" that ties the record parser, ticker
// dictionary, and record codec together into the on-disk format.
package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/quantsignal/tbbocodec/codec"
	"github.com/quantsignal/tbbocodec/dict"
	"github.com/quantsignal/tbbocodec/endian"
	"github.com/quantsignal/tbbocodec/internal/options"
	"github.com/quantsignal/tbbocodec/record"
)

// compressConfig holds the options collected for one Compress call.
type compressConfig struct {
	debug  bool
	logger zerolog.Logger
}

// Option configures a Compress or Decompress call.
type Option = options.Option[*compressConfig]

// WithDebug enables debug mode: the serialized dictionary is routed to a
// discardable scratch sink instead of the real output, so the output file
// holds only the encoded records. That output is NOT decodable; debug mode
// exists to measure the size of the record stream alone.
func WithDebug() Option {
	return options.NoError(func(c *compressConfig) {
		c.debug = true
	})
}

// WithLogger overrides the zerolog.Logger used for status reporting. The
// default is a disabled logger, so Compress/Decompress are silent unless a
// caller opts in.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *compressConfig) {
		c.logger = logger
	})
}

func newConfig(opts ...Option) (*compressConfig, error) {
	cfg := &compressConfig{logger: zerolog.Nop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// discardSink is an io.Writer that always succeeds and is never read back,
// used for WithDebug's scratch dictionary sink.
type discardSink struct {
	bytes.Buffer
}

// Compress runs the two-pass compressor over r, writing the dictionary and
// encoded records to w. r must support Seek(0, io.SeekStart) so Pass 2 can
// re-read the same lines Pass 1 used to build the dictionary.
func Compress(r io.ReadSeeker, w io.Writer, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}

	d := dict.New()
	scanner := bufio.NewScanner(r)

	cfg.logger.Debug().Msg("pass 1 - building dictionary")

	var recordCount int
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		rec, err := record.ParseLine(line)
		if err != nil {
			return err
		}

		if id := d.LookupBySymbol(rec.Ticker); id != 0 {
			d.Increment(rec.Ticker)
		} else if _, err := d.Insert(rec.Ticker); err != nil {
			return err
		}
		recordCount++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream: pass 1 scan: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("stream: rewind input: %w", err)
	}

	cfg.logger.Debug().Int("records", recordCount).Msg("pass 2 - encoding data")

	dictWriter := w
	if cfg.debug {
		dictWriter = &discardSink{}
		if sum, err := d.Checksum(); err == nil {
			cfg.logger.Debug().Uint64("checksum", sum).Msg("debug mode: dictionary diverted to scratch sink")
		}
	}
	if err := d.Serialize(dictWriter); err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	enc := codec.NewEncoder(w, engine)

	scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		rec, err := record.ParseLine(line)
		if err != nil {
			return err
		}

		tickerID := d.LookupBySymbol(rec.Ticker)
		if err := enc.EncodeRecord(tickerID, rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream: pass 2 scan: %w", err)
	}

	return nil
}

// Decompress reads a compressed stream from r (dictionary followed by
// encoded records) and writes the decoded CSV lines to w.
func Decompress(r io.Reader, w io.Writer, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}

	cfg.logger.Debug().Msg("decompressing")

	// One shared bufio.Reader for both phases: bufio reads ahead in chunks,
	// so wrapping r a second time after the dictionary read would strand
	// any record bytes already pulled into the first reader's buffer.
	br := bufio.NewReader(r)

	d, err := dict.Deserialize(br)
	if err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	dec := codec.NewDecoder(br, engine, d)

	var recordCount int
	for {
		symbol, rec, err := dec.DecodeRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, record.FormatLine(symbol, rec)); err != nil {
			return fmt.Errorf("stream: write record: %w", err)
		}
		recordCount++
	}

	cfg.logger.Debug().Int("records", recordCount).Msg("decompress complete")

	return nil
}
