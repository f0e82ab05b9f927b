package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/coda/internal/cli"
	"github.com/semmy-space/coda/internal/output"
)

var (
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("coda"),
		kong.Description("Credential store, GPA calculator and bank simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	// Answers shell completion requests and exits when COMP_LINE is set
	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		exit(err, output.ExitUsage)
	}

	if err := kctx.Run(); err != nil {
		exit(err, output.ExitGeneral)
	}
}

// exit prints err and terminates with its CLIError code, or fallback.
func exit(err error, fallback int) {
	formatter := output.New("plain")

	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		formatter.PrintError(cliErr)
		if cliErr.Hint != "" {
			formatter.PrintHint(cliErr.Hint)
		}
		os.Exit(cliErr.ExitCode)
	}

	var parseErr *kong.ParseError
	if errors.As(err, &parseErr) {
		fmt.Fprintf(os.Stderr, "coda: %v\n", parseErr)
		if parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		os.Exit(output.ExitUsage)
	}

	formatter.PrintError(err)
	os.Exit(fallback)
}
