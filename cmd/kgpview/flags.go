// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -verbose, -version, -log, -filter, -workers, -tmux and positional paths

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/mauromedda/kgpview/internal/config"
)

type cliArgs struct {
	verbose bool
	version bool
	logFile string
	filter  string
	workers int
	tmux    string
	paths   []string
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("kgpview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: kgpview [flags] <image or directory>...\n\n")
		fs.PrintDefaults()
	}

	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.StringVar(&args.logFile, "log", "", "Append log output to this file")
	fs.StringVar(&args.filter, "filter", "", "Only show files whose name fuzzy-matches this query")
	fs.IntVar(&args.workers, "workers", 0, "Number of background image encoders")
	fs.StringVar(&args.tmux, "tmux", "", "tmux passthrough: auto, on or off")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	args.paths = fs.Args()
	return args, nil
}

// apply layers the command-line values over loaded settings.
func (a cliArgs) apply(s *config.Settings) error {
	if a.verbose {
		s.Verbose = true
	}
	if a.logFile != "" {
		s.LogFile = a.logFile
	}
	if a.workers < 0 {
		return fmt.Errorf("-workers must not be negative, got %d", a.workers)
	}
	if a.workers > 0 {
		s.EncodeWorkers = a.workers
	}
	if a.tmux != "" {
		s.Tmux = a.tmux
	}
	return s.Validate()
}
