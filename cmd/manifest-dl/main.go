package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/manifest-fetcher/internal/audio"
	"github.com/handiism/manifest-fetcher/internal/config"
	"github.com/handiism/manifest-fetcher/internal/download"
	"github.com/handiism/manifest-fetcher/internal/logging"
	"github.com/spf13/pflag"
)

func main() {
	// Command line flags
	var (
		configFlag   = pflag.StringP("config", "c", "", "Path to config file")
		classifyFlag = pflag.String("classify-by", "", "How to detect entry kind: line or extension")
		noPlayFlag   = pflag.Bool("no-play", false, "Download audio entries without playing them")
		playlistFlag = pflag.Bool("playlist", false, "Write a playlist of the tracks played")
		previewFlag  = pflag.Int("preview", 0, "Write image previews fitting in NxN pixels (0 disables)")
		verboseFlag  = pflag.BoolP("verbose", "v", false, "Show verbose output")
		noColorFlag  = pflag.Bool("no-color", false, "Disable colored output")
	)

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Manifest Fetcher - download images and audio listed in a manifest")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  manifest-dl [options] [manifest]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "The manifest defaults to %s. Each line is \"<url> <destination-dir>\".\n", config.DefaultManifestPath)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: manifest-tui")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := logging.NewConsole(os.Stderr, *verboseFlag, *noColorFlag)

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			logger.Error().Err(err).Str("path", *configFlag).Msg("Error loading config")
			os.Exit(1)
		}
	}

	// Apply flags
	if pflag.NArg() > 0 {
		settings.ManifestPath = pflag.Arg(0)
	}
	if *classifyFlag != "" {
		settings.ClassifyBy = *classifyFlag
	}
	if *noPlayFlag {
		settings.PlayAudio = false
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *previewFlag > 0 {
		settings.ImagePreviewMaxSize = *previewFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn().Msg("Interrupted, stopping...")
		cancel()
	}()

	player := audio.NewPlayer(audio.NewOtoEngine())
	orch := download.NewOrchestrator(settings, player, logging.Sink(logger))

	// The orchestrator has already logged the terminating error.
	if err := orch.Run(ctx); err != nil {
		if ctx.Err() != nil {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
