package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// setupLogger configures and returns a structured logger with source information.
// Verbose mode forces the debug level.
func setupLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     lvl,
	}
	logger := slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(logger)
	return logger
}

// newCommander registers every command on a fresh commander sharing one app.
func newCommander(fs *flag.FlagSet, name string, a *app) *subcommands.Commander {
	commander := subcommands.NewCommander(fs, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&exchangesCmd{app: a}, "tables")
	commander.Register(&instrumentsCmd{app: a}, "tables")
	commander.Register(&portfolioCmd{app: a}, "tables")
	commander.Register(&positionCmd{app: a}, "tables")
	commander.Register(&ordersCmd{app: a}, "tables")

	commander.Register(&codesCmd{app: a}, "lookup")
	commander.Register(&exchangeCmd{app: a}, "lookup")
	commander.Register(&tickersCmd{app: a}, "lookup")

	commander.Register(&serveCmd{app: a}, "server")
	return commander
}

func main() {
	setupLogger(os.Stderr, "info", false)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	a := &app{out: os.Stdout}
	flag.StringVar(&a.modeOverride, "mode", "", "comma separated client flags (verbose,debug,dump); overrides T212_MODE")

	commander := newCommander(flag.CommandLine, path.Base(os.Args[0]), a)
	flag.Parse()

	status := commander.Execute(context.Background())
	a.Close()
	os.Exit(int(status))
}
