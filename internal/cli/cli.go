package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"
	"go.uber.org/zap"

	"github.com/semmy-space/coda/internal/config"
	"github.com/semmy-space/coda/internal/credstore"
	"github.com/semmy-space/coda/internal/logging"
	"github.com/semmy-space/coda/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
	Mode      string
}

// CLI is the root command structure
type CLI struct {
	Globals

	Auth       AuthCmd                      `cmd:"" help:"Register, log in and manage the credential store"`
	GPA        GPACmd                       `cmd:"" name:"gpa" help:"Calculate semester GPA and cumulative CGPA"`
	Bank       BankCmd                      `cmd:"" help:"Run the interactive bank simulator"`
	Config     ConfigCmd                    `cmd:"" help:"Configuration commands"`
	Completion kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
	Version    VersionCmd                   `cmd:"" help:"Show version information"`
}

// AfterApply runs once flags are parsed. It loads config, resolves the store
// path, builds the logger, formatter and console, and binds them for Run.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return output.Wrap(output.ExitConfigError, err.Error(), err).
			WithHint("Check " + config.ConfigPath())
	}

	level := cfg.ResolvedLogLevel()
	if c.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return output.Wrap(output.ExitConfigError, err.Error(), err).
			WithHint("Run: coda config set log_level warn")
	}

	// Store path: --store flag > config > XDG default
	storePath := c.Store
	if storePath == "" {
		storePath = cfg.StorePath
	}
	if storePath == "" {
		storePath = config.DefaultStorePath()
	}
	logger.Debug("credential store", zap.String("path", storePath))

	mode := c.ResolvedOutput(cfg.DefaultOutput)
	formatter := &FormatterProvider{
		Formatter: output.New(mode),
		Mode:      mode,
	}
	service := credstore.NewService(credstore.NewFileStore(storePath, logger), logger)

	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)
	ctx.Bind(logger)
	ctx.Bind(service)
	ctx.Bind(NewSessionProvider())
	ctx.Bind(NewTerminalConsole(c.NoInput))

	return nil
}

// AuthCmd holds credential store subcommands
type AuthCmd struct {
	Register AuthRegisterCmd `cmd:"" help:"Register a new user"`
	Login    AuthLoginCmd    `cmd:"" help:"Log in as an existing user"`
	Users    AuthUsersCmd    `cmd:"" help:"List registered users"`
	Whoami   AuthWhoamiCmd   `cmd:"" help:"Show the logged-in user"`
	Logout   AuthLogoutCmd   `cmd:"" help:"End the current session"`
	Menu     AuthMenuCmd     `cmd:"" help:"Interactive register/login menu"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Fprintf(ctx.Stdout, "coda version %s\n", ctx.Model.Vars()["version"])
	return nil
}
