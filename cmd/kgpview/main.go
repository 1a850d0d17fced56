// ABOUTME: CLI entry point for kgpview with terminal crash recovery
// ABOUTME: Parses flags, loads config, collects images and runs the viewer on the tty

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mauromedda/kgpview/internal/config"
	"github.com/mauromedda/kgpview/internal/log"
	"github.com/mauromedda/kgpview/internal/viewer"
	"github.com/mauromedda/kgpview/pkg/tui/fuzzy"
	"github.com/mauromedda/kgpview/pkg/tui/image"
	"github.com/mauromedda/kgpview/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("kgpview %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the full initialization sequence and runs the viewer.
func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	root := config.FindProjectRoot(cwd)

	settings, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := args.apply(settings); err != nil {
		return err
	}

	if settings.Verbose {
		log.SetLevel(log.LevelDebug)
	}
	// The tty belongs to the viewer while it runs; stderr shares it.
	if settings.LogFile != "" {
		closeLog, err := log.OpenFile(settings.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	if len(args.paths) == 0 {
		return errors.New("no images given (usage: kgpview [flags] <image or directory>...)")
	}
	paths, err := collectImages(args.paths)
	if err != nil {
		return err
	}
	paths = fuzzy.Filter(args.filter, paths)
	if len(paths) == 0 {
		return errors.New("no images to show")
	}

	capability := image.Detect()
	switch {
	case !capability.Graphics:
		log.Warn("terminal does not advertise the Kitty graphics protocol; images may not appear")
	case !capability.Placeholders:
		log.Warn("%s has no Unicode placeholder support; images may not appear", capability.Terminal)
	}

	term := terminal.NewProcessTerminal()
	defer terminal.RestoreOnPanic(term)

	if err := term.EnterRawMode(); err != nil {
		return err
	}
	defer func() {
		if err := term.ExitRawMode(); err != nil {
			log.Error("%v", err)
		}
	}()

	v := viewer.New(term, paths, viewer.Options{
		Settings:    settings,
		Multiplexed: settings.Multiplexed(capability.Multiplexed),
	})
	v.OnShown(func(s viewer.Shown) {
		log.Debug("shown %d/%d %s as image %d", s.Index+1, len(paths), s.Path, s.ImageID)
	})

	watcher := config.NewWatcher(root, v.Reload)
	watcher.Start()
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := v.Run(ctx, term); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
