package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/clashclient/clash"
	"github.com/briangreenhill/clashclient/internal/config"
	"github.com/briangreenhill/clashclient/lookups"
)

const version = "v0.1.0"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	if err := runCLI(os.Args[1:], os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("clashclient failed")
	}
}

func usage(w io.Writer, names []string) {
	fmt.Fprintln(w, "Usage: clashclient <lookup> <tag|name>")
	fmt.Fprintln(w, "Lookups:")
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --help, -h             Show this help message")
	fmt.Fprintln(w, "  --version, -v          Show the version")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CLASH_API_TOKEN        Your API token (required)")
	fmt.Fprintln(w, "  CLASH_API_URL          API base URL (default https://api.clashofclans.com)")
	fmt.Fprintln(w, "  CLASH_API_VERSION      API version (default v1)")
	fmt.Fprintln(w, "  CLASH_CACHE_ENABLED    Cache responses in memory (default false)")
	fmt.Fprintln(w, "  LOG_LEVEL              debug, info, warn or error (default info)")
}

func runCLI(args []string, out io.Writer, logger zerolog.Logger) error {
	if len(args) == 0 {
		usage(out, nil)
		return fmt.Errorf("no lookup given")
	}

	switch args[0] {
	case "help", "--help", "-h":
		usage(out, lookups.Default(nil).List())
		return nil
	case "version", "--version", "-v":
		fmt.Fprintf(out, "clashclient %s\n", version)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.HasToken() {
		return fmt.Errorf("CLASH_API_TOKEN is not set")
	}
	logger = logger.Level(cfg.Level())

	registry, err := setupRegistry(cfg, logger)
	if err != nil {
		return err
	}

	lookup, exists := registry.Get(args[0])
	if !exists {
		return fmt.Errorf("unknown command: %s (available: %s)", args[0], strings.Join(registry.List(), ", "))
	}
	if len(args) < 2 {
		return fmt.Errorf("%s needs an argument: %s", lookup.Name(), lookup.Description())
	}

	result, err := lookup.Run(context.Background(), strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("%s failed: %w", lookup.Name(), err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// setupRegistry builds the client and its lookups from configuration
func setupRegistry(cfg *config.Config, logger zerolog.Logger) (*lookups.Registry, error) {
	store, err := cfg.NewStore(logger.With().Str("component", "cache").Logger())
	if err != nil {
		return nil, err
	}
	client, err := clash.New(cfg, clash.WithCache(store), clash.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return lookups.Default(client), nil
}
