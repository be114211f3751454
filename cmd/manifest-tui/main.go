package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/handiism/manifest-fetcher/internal/audio"
	"github.com/handiism/manifest-fetcher/internal/config"
	"github.com/handiism/manifest-fetcher/internal/tui"
	"github.com/spf13/pflag"
)

func main() {
	configFlag := pflag.StringP("config", "c", "", "Path to config file")
	pflag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if pflag.NArg() > 0 {
		settings.ManifestPath = pflag.Arg(0)
	}

	err := tui.Run(settings, audio.NewPlayer(audio.NewOtoEngine()))
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrCancelled):
		os.Exit(130)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
