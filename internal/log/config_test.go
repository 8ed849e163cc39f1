package log

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStartsAtZeroValue(t *testing.T) {
	cfg := NewConfig()
	assert.Empty(t, cfg.Level)
	assert.Empty(t, cfg.Format)
}

func TestRegisterFlagsSetsDefaultsAndParsesOverrides(t *testing.T) {
	cfg := NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "text", cfg.Format)

	require.NoError(t, flags.Parse([]string{"--log-level", "debug", "--log-format", "json"}))
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestRegisterCompletionsSucceeds(t *testing.T) {
	cfg := NewConfig()
	cmd := &cobra.Command{Use: "root"}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)
	cmd.Flags().AddFlagSet(flags)

	assert.NoError(t, cfg.RegisterCompletions(cmd))
}

func TestConfigNewHandlerBuildsWorkingHandler(t *testing.T) {
	cfg := NewConfig()
	cfg.RegisterFlags(pflag.NewFlagSet("test", pflag.ContinueOnError))
	var buf bytes.Buffer
	handler, err := cfg.NewHandler(&buf)
	require.NoError(t, err)
	assert.NotNil(t, handler)
}
