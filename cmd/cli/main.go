package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"contentsearch/internal/scan"
)

var (
	ignoreCase bool
	dedupe     bool
	mmapMin    int64
	noProgress bool
)

// parseMode converts the optional positional mode argument
// (0 = literal substring, 1 = regex)
func parseMode(arg string) (scan.Mode, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: expected 0 (literal) or 1 (regex)", arg)
	}
	switch n {
	case 0:
		return scan.ModeLiteral, nil
	case 1:
		return scan.ModeRegex, nil
	default:
		return 0, fmt.Errorf("invalid mode %d: expected 0 (literal) or 1 (regex)", n)
	}
}

// parseThreads converts the thread count argument, coercing
// non-positive values to 1
func parseThreads(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid thread count %q", arg)
	}
	if n <= 0 {
		n = 1
	}
	return n, nil
}

// buildOptions resolves the positional arguments and flags into scan options.
// An invalid pattern or malformed numeric argument is a configuration error
// reported before any worker starts.
func buildOptions(args []string) (scan.Options, error) {
	root := args[0]
	pattern := args[1]

	workers, err := parseThreads(args[2])
	if err != nil {
		return scan.Options{}, err
	}

	mode := scan.ModeLiteral
	if len(args) == 4 {
		mode, err = parseMode(args[3])
		if err != nil {
			return scan.Options{}, err
		}
	}

	pred, err := scan.NewPredicate(mode, pattern, ignoreCase)
	if err != nil {
		return scan.Options{}, err
	}

	return scan.Options{
		Root:        root,
		Predicate:   pred,
		Workers:     workers,
		UseMMap:     mmapMin > 0,
		MinMMapSize: mmapMin,
		Dedupe:      dedupe,
	}, nil
}

func main() {
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:   "contentsearch <root_path> <pattern> <thread_count> [<mode>]",
		Short: "Concurrent file content search",
		Long: `Searches a directory tree for files whose contents match a literal
keyword or a regular expression, scanning files with concurrent workers.
Mode 0 (default) matches a raw byte substring; mode 1 matches a regex.
Example: contentsearch /var/log "connection refused" 8 0`,
		Version:       scan.Version,
		Args:          cobra.RangeArgs(3, 4),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(args)
			if err != nil {
				exitCode = 1
				return err
			}

			var bar *progressbar.ProgressBar
			if !noProgress && isatty.IsTerminal(os.Stderr.Fd()) {
				bar = progressbar.NewOptions64(-1,
					progressbar.OptionSetDescription("Scanning"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSpinnerType(14),
				)
				opts.OnScan = func() { bar.Add(1) }
			}

			summary := scan.Run(opts)
			scan.CloseLogger()

			if bar != nil {
				bar.Clear()
			}
			if summary.WalkErr != nil {
				fmt.Fprintf(os.Stderr, "[walk error] %v\n", summary.WalkErr)
			}

			fmt.Printf("\nScanned %d files in %d ms.\n",
				summary.FilesScanned, summary.Elapsed.Milliseconds())
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Ignore case when matching")
	rootCmd.Flags().BoolVar(&dedupe, "dedupe", false, "Report only one match per distinct file content")
	rootCmd.Flags().Int64Var(&mmapMin, "mmap-min", 1<<20, "Minimum file size in bytes for mmap reads (0 disables mmap)")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress spinner")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			// Argument validation failed before the command ran.
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
			exitCode = 2
		}
	}
	os.Exit(exitCode)
}
