package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sashakarcz/genpass/internal/config"
	"github.com/sashakarcz/genpass/internal/hasher"
	"github.com/sashakarcz/genpass/internal/logger"
	"github.com/sashakarcz/genpass/internal/webconfig"
)

const version = "1.0.0"

var errMissingArguments = errors.New("username and password are required")

// verify checks the generated hash before anything is printed
var verify = hasher.Verify

func main() {
	fs := flag.NewFlagSet("genpass", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: genpass [flags] [--] <username> <password>\n")
		fmt.Fprintf(fs.Output(), "Use -- before a username that starts with '-'.\n")
		fs.PrintDefaults()
	}

	cfg, args, err := config.Parse(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Printf("genpass v%s\n", version)
		os.Exit(0)
	}

	if err := logger.Setup(logger.Config{
		Level:  cfg.Observability.LogLevel,
		Format: cfg.Observability.LogFormat,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, args, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Failed to generate basic auth user")
	}
}

// run hashes the password from args and writes the web config snippet to w.
// Nothing is written to w unless the hash was generated and verified.
func run(cfg *config.Config, args []string, w io.Writer) error {
	if len(args) < 2 {
		return errMissingArguments
	}
	username, password := args[0], args[1]

	h := hasher.New(cfg.Hash.Cost)

	logger.Debug().
		Str("username", username).
		Int("cost", h.Cost()).
		Msg("Hashing password")

	hash, err := h.Hash(password)
	if err != nil {
		return err
	}

	if err := verify(hash, password); err != nil {
		return fmt.Errorf("generated hash failed verification: %w", err)
	}

	return webconfig.Render(w, cfg.Output.Key, webconfig.Entry{
		Username: username,
		Hash:     hash,
	})
}
