// Command compress is the CLI entry point for tbbocodec: compress a CSV
// trade-tick stream into the bit-packed binary format, or decompress it back.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantsignal/tbbocodec"
	"github.com/quantsignal/tbbocodec/errs"
	"github.com/quantsignal/tbbocodec/stream"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	var (
		doCompress   bool
		doDecompress bool
		debug        bool
	)

	cmd := &cobra.Command{
		Use:           "compress [-c|-d|-x] <inputfile> <outputfile>",
		Short:         "Compress or decompress a trade-tick CSV stream",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

			mode := modeCompress
			if doDecompress {
				mode = modeDecompress
			}

			return run(args[0], args[1], mode, debug, logger)
		},
	}

	cmd.Flags().BoolVarP(&doCompress, "compress", "c", true, "compress mode (default)")
	cmd.Flags().BoolVarP(&doDecompress, "decompress", "d", false, "decompress mode")
	cmd.Flags().BoolVarP(&debug, "debug", "x", false, "debug mode: divert the dictionary to a scratch sink when compressing")

	return cmd
}

type mode int

const (
	modeCompress mode = iota
	modeDecompress
)

func run(inputPath, outputPath string, m mode, debug bool, logger zerolog.Logger) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer output.Close()

	opts := []tbbocodec.Option{stream.WithLogger(logger)}
	if debug {
		opts = append(opts, stream.WithDebug())
	}

	switch m {
	case modeCompress:
		logger.Info().Str("input", inputPath).Str("output", outputPath).Msg("compressing")
		return tbbocodec.Compress(input, output, opts...)
	default:
		logger.Info().Str("input", inputPath).Str("output", outputPath).Msg("decompressing")
		return tbbocodec.Decompress(input, output, opts...)
	}
}

// exitCodeFor maps tbbocodec's sentinel errors to distinct process exit
// codes, an enrichment over the original's uniform EXIT_FAILURE so scripts
// invoking this binary can branch on failure kind.
func exitCodeFor(err error) int {
	fmt.Fprintln(os.Stderr, "compress:", err)

	switch {
	case errors.Is(err, errs.ErrMalformedRecord):
		return 2
	case errors.Is(err, errs.ErrDictionaryFull):
		return 3
	case errors.Is(err, errs.ErrUnknownTicker):
		return 4
	case errors.Is(err, errs.ErrTruncatedInput):
		return 5
	default:
		return 1
	}
}
