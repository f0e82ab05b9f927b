package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/semmy-space/coda/internal/config"
	"github.com/semmy-space/coda/internal/logging"
	"github.com/semmy-space/coda/internal/output"
)

var validOutputs = []string{"json", "plain", "rich", "auto"}

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., store_path, log_level)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(cfg *config.Config) error {
	value, err := cfg.Get(cmd.Key)
	if err != nil {
		return unknownKey(cmd.Key, output.ExitNotFound)
	}

	fmt.Println(value)
	return nil
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := cfg.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key, output.ExitUsage)
	}

	switch cmd.Key {
	case "default_output":
		if !slices.Contains(validOutputs, cmd.Value) {
			return output.NewCLIError(output.ExitUsage,
				fmt.Sprintf("Invalid output format: %s. Valid formats: %s", cmd.Value, strings.Join(validOutputs, ", ")))
		}
	case "log_level":
		if _, err := logging.New(cmd.Value, os.Stderr); err != nil {
			return output.Wrap(output.ExitUsage, err.Error(), err).
				WithHint("Valid levels: debug, info, warn, error")
		}
	}

	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		return output.Wrap(output.ExitConfigError, fmt.Sprintf("Failed to set config: %v", err), err)
	}

	fp.Formatter.PrintSuccess(fmt.Sprintf("Set %s = %s", cmd.Key, cmd.Value))
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := cfg.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key, output.ExitUsage)
	}

	if err := cfg.Unset(cmd.Key); err != nil {
		return output.Wrap(output.ExitConfigError, fmt.Sprintf("Failed to unset config: %v", err), err)
	}

	fp.Formatter.PrintSuccess("Unset " + cmd.Key)
	return nil
}

// ConfigListConfigCmd implements config list command
type ConfigListConfigCmd struct{}

type configItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Run executes the list command
func (cmd *ConfigListConfigCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	keys := config.Keys()
	items := make([]configItem, 0, len(keys))
	for _, key := range keys {
		value, err := cfg.Get(key)
		if err != nil {
			return output.Wrap(output.ExitConfigError, err.Error(), err)
		}
		items = append(items, configItem{Key: key, Value: value})
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
	}

	return fp.Formatter.PrintList(items, cols)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(cfg *config.Config) error {
	path := cfg.Path()

	fmt.Println(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "(file does not exist yet - will be created on first write)\n")
	} else {
		fmt.Fprintf(os.Stderr, "(file exists)\n")
	}

	return nil
}

func unknownKey(key string, code int) error {
	return output.NewCLIError(code, fmt.Sprintf("Unknown config key: %s", key)).
		WithHint("Valid keys: " + strings.Join(config.Keys(), ", "))
}
