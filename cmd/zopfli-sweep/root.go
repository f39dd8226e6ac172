package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/discochess/sweep"
	"github.com/discochess/sweep/internal/engine/zopfliengine"
)

// flagValues holds everything the command line configures.
type flagValues struct {
	minIterations     uint64
	maxIterations     uint64
	step              uint64
	repetitions       uint32
	file              string
	format            string
	blockSplittingMax int
	verify            bool
	baseline          bool
	decodeInput       bool
	output            string
	metricsAddr       string
	logFormat         string
	verbose           bool
}

var flags flagValues

var rootCmd = &cobra.Command{
	Use:   "zopfli-sweep",
	Short: "Sweep zopfli's iteration count and report time and size",
	Long: `zopfli-sweep compresses one input file repeatedly with zopfli, stepping the
iteration count from a minimum to a maximum, and logs the elapsed time and
resulting size of every run.

Inputs may be local paths, http(s) URLs, gs://bucket/key or s3://bucket/key.

Examples:
  # Default sweep: 100 to 500 iterations in steps of 25
  zopfli-sweep -f enwik8

  # Three runs per value, JSON logs
  zopfli-sweep -f enwik8 --min_iterations 5 --max_iterations 50 -s 5 -r 3 --log-format json

  # Markdown table, verifying every output decodes
  zopfli-sweep -f corpus.tar --output markdown --verify

  # Unpack a zstd corpus first and expose Prometheus metrics
  zopfli-sweep -f s3://corpora/silesia.tar.zst --decode-input --metrics-addr :9090`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runSweep,
}

func init() {
	f := rootCmd.Flags()
	f.Uint64Var(&flags.minIterations, "min_iterations", sweep.DefaultMinIterations, "the initial number of iterations to perform when compressing the data")
	f.Uint64Var(&flags.maxIterations, "max_iterations", sweep.DefaultMaxIterations, "the final number of iterations to perform when compressing the data")
	f.Uint64VarP(&flags.step, "step", "s", sweep.DefaultStep, "how many iterations to increase by each time until the maximum is reached")
	f.StringVarP(&flags.file, "file", "f", "", "the file to compress (path, URL, gs://bucket/key or s3://bucket/key)")
	f.Uint32VarP(&flags.repetitions, "repetitions", "r", sweep.DefaultRepetitions, "the number of times to repeat each number of iterations")
	f.StringVar(&flags.format, "format", "gzip", "output format: gzip, zlib, deflate")
	f.IntVar(&flags.blockSplittingMax, "block-splitting-max", zopfliengine.DefaultBlockSplittingMax, "maximum number of deflate blocks (0 for unlimited)")
	f.BoolVar(&flags.verify, "verify", false, "decode every output and fail if it does not match the input")
	f.BoolVar(&flags.baseline, "baseline", false, "log the size of a conventional best-level encoder before sweeping")
	f.BoolVar(&flags.decodeInput, "decode-input", false, "decompress .zst, .gz, .zz or .deflate inputs before sweeping")
	f.StringVarP(&flags.output, "output", "o", outputLog, "record output: log, markdown")
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the sweep")
	f.StringVar(&flags.logFormat, "log-format", logFormatConsole, "log encoding: console, json")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	if err := rootCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
