package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardents-project/tlock/beacon"
	"github.com/ardents-project/tlock/errs"
	"github.com/ardents-project/tlock/internal/obslog"
	"github.com/ardents-project/tlock/internal/ratelimit"
	"github.com/ardents-project/tlock/tlock"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const (
	exitOK          = 0
	exitUserError   = 1
	exitTooEarly    = 2
	exitNetworkIO   = 3
	exitAuthFailure = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := slog.New(obslog.Wrap(slog.NewTextHandler(os.Stderr, nil)))
	slog.SetDefault(logger)

	if len(args) > 0 && (args[0] == "-version" || args[0] == "--version") {
		fmt.Printf("tlock version=%s commit=%s build_date=%s\n", version, commit, buildDate)
		return exitOK
	}
	if len(args) < 1 {
		usage()
		return exitUserError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "encrypt":
		return runEncrypt(ctx, args[1:])
	case "decrypt":
		return runDecrypt(ctx, args[1:])
	default:
		usage()
		return exitUserError
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  tlock encrypt [-config path] [-armor] <round> <input> <output>")
	fmt.Fprintln(os.Stderr, "  tlock decrypt [-config path] <input> <output>")
}

func runEncrypt(ctx context.Context, args []string) int {
	fs := newFlagSet("encrypt")
	configPath := fs.String("config", "", "path to beacon config.yaml")
	armored := fs.Bool("armor", false, "ASCII-armor the output")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	if fs.NArg() != 3 {
		usage()
		return exitUserError
	}
	round, err := parseRound(fs.Arg(0))
	if err != nil {
		slog.Error("invalid round argument", "error", err)
		return exitUserError
	}
	inputPath, outputPath := fs.Arg(1), fs.Arg(2)

	client, err := newBeaconClient(*configPath)
	if err != nil {
		slog.Error("failed to build beacon client", "error", err)
		return exitUserError
	}

	chain, err := client.ChainInfo(ctx)
	if err != nil {
		slog.Error("failed to fetch chain info", "error", err)
		return classifyExit(err)
	}

	plaintext, err := os.ReadFile(inputPath)
	if err != nil {
		slog.Error("failed to read input", "error", err)
		return exitNetworkIO
	}

	var out []byte
	if *armored {
		out, err = tlock.EncryptArmored(plaintext, round, chain)
	} else {
		out, err = tlock.Encrypt(plaintext, round, chain)
	}
	if err != nil {
		slog.Error("encryption failed", "error", err)
		return classifyExit(err)
	}

	if err := os.WriteFile(outputPath, out, 0o600); err != nil {
		slog.Error("failed to write output", "error", err)
		return exitNetworkIO
	}
	slog.Info("encrypted", "round", round, "output", outputPath)
	return exitOK
}

func runDecrypt(ctx context.Context, args []string) int {
	fs := newFlagSet("decrypt")
	configPath := fs.String("config", "", "path to beacon config.yaml")
	if err := fs.Parse(args); err != nil {
		return exitUserError
	}
	if fs.NArg() != 2 {
		usage()
		return exitUserError
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	client, err := newBeaconClient(*configPath)
	if err != nil {
		slog.Error("failed to build beacon client", "error", err)
		return exitUserError
	}

	chain, err := client.ChainInfo(ctx)
	if err != nil {
		slog.Error("failed to fetch chain info", "error", err)
		return classifyExit(err)
	}

	ciphertext, err := os.ReadFile(inputPath)
	if err != nil {
		slog.Error("failed to read input", "error", err)
		return exitNetworkIO
	}

	plaintext, err := tlock.Decrypt(ctx, ciphertext, chain, client)
	if err != nil {
		slog.Error("decryption failed", "error", err)
		return classifyExit(err)
	}

	if err := os.WriteFile(outputPath, plaintext, 0o600); err != nil {
		slog.Error("failed to write output", "error", err)
		return exitNetworkIO
	}
	slog.Info("decrypted", "output", outputPath)
	return exitOK
}

func newBeaconClient(configPath string) (*beacon.HTTPClient, error) {
	cfg := beacon.LoadFromPath(configPath)
	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	return beacon.NewHTTPClient(cfg.BaseURL, cfg.Timeout, limiter), nil
}

func classifyExit(err error) int {
	kind, ok := errs.KindOf(err)
	if !ok {
		return exitUserError
	}
	switch kind {
	case errs.TooEarly:
		return exitTooEarly
	case errs.Network:
		return exitNetworkIO
	case errs.Authentication, errs.InvalidCiphertext:
		return exitAuthFailure
	default:
		return exitUserError
	}
}
