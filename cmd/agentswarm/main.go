// Command agentswarm runs swarm style multi-agent conversations in the
// terminal.
//
// Usage:
//
//	agentswarm                                   chat with a single helpful agent
//	agentswarm chat --agents agents.yaml --stream
//	agentswarm index ./data --qdrant-host localhost
//	agentswarm graph agents.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/hupe1980/agentswarm/config"
	"github.com/hupe1980/agentswarm/logging"
)

// CLI defines the command-line interface.
type CLI struct {
	Chat    ChatCmd    `cmd:"" default:"withargs" help:"Start an interactive conversation (default)."`
	Index   IndexCmd   `cmd:"" help:"Embed help-center articles into a Qdrant collection."`
	Graph   GraphCmd   `cmd:"" help:"Print the handoff graph of an agents file."`
	Version VersionCmd `cmd:"" help:"Show version information."`

	EnvFile   []string `name:"env-file" help:"Additional .env files to load." type:"path"`
	LogLevel  string   `help:"Log level (debug, info, warn, error)." default:"warn" env:"LOG_LEVEL"`
	LogFormat string   `help:"Log format (text, json)." default:"text" enum:"text,json" env:"LOG_FORMAT"`
}

// Logger builds the process logger. Logs go to stderr so they never
// interleave with the transcript on stdout.
func (c *CLI) Logger() (logging.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewSlogLogger(level, c.LogFormat, os.Stderr), nil
}

// AfterApply loads the env files given on the command line.
func (c *CLI) AfterApply() error {
	if len(c.EnvFile) == 0 {
		return nil
	}
	return config.LoadEnvFiles(c.EnvFile...)
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run prints the module version.
func (c *VersionCmd) Run(out io.Writer) error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	_, err := fmt.Fprintf(out, "agentswarm %s\n", version)
	return err
}

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("agentswarm"),
		kong.Description("Swarm style multi-agent conversations in the terminal."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)

	err := kctx.Run(&cli)
	kctx.FatalIfErrorf(err)
}
