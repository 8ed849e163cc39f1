package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names for laxar-assemble's log configuration. Unlike a library that
// embeds several independent loggers under different flag prefixes in one
// binary, this CLI exposes exactly one logger, so the names are fixed
// rather than a field callers customize per instance.
const (
	flagLevel  = "log-level"
	flagFormat = "log-format"
)

// Config holds the parsed --log-level/--log-format values for the CLI.
// Build one with NewConfig, register its flags before Execute, then call
// NewHandler once cobra has parsed the command line.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a Config with its fields left at the zero value;
// RegisterFlags fills in the "info"/"text" defaults when it registers the
// flags.
func NewConfig() *Config {
	return &Config{}
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, flagLevel, "info",
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, flagFormat, "text",
		fmt.Sprintf("log format, one of: %s", GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for the log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	if err := cmd.RegisterFlagCompletionFunc(flagLevel,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return fmt.Errorf("registering %s completion: %w", flagLevel, err)
	}

	if err := cmd.RegisterFlagCompletionFunc(flagFormat,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return fmt.Errorf("registering %s completion: %w", flagFormat, err)
	}

	return nil
}

// NewHandler builds a slog.Handler writing to w from the parsed flag
// values.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	return CreateHandlerWithStrings(w, c.Level, c.Format)
}
