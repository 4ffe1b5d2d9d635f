package main

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec2inventory/internal/config"
	configMocks "ec2inventory/internal/config/mocks"
)

func parseArgs(t *testing.T, args ...string) (*cobra.Command, options) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	var opts options
	addFlags(cmd, &opts)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, opts
}

func TestLoadConfig_Defaults(t *testing.T) {
	cmd, opts := parseArgs(t, "--list")

	// No --config, so the parser must not be consulted
	parser := configMocks.NewIProvider(t)

	cfg, err := loadConfig(cmd, opts, parser)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_Flags(t *testing.T) {
	cmd, opts := parseArgs(t,
		"--region", "eu-west-1",
		"--tag-key", "Role",
		"--tag-values", "web, db",
		"--key-mode", "content",
		"--output", "yaml",
		"--hostvars",
		"--timeout", "30s",
	)

	cfg, err := loadConfig(cmd, opts, configMocks.NewIProvider(t))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "Role", cfg.TagKey)
	assert.Equal(t, []string{"web", "db"}, cfg.TagValues)
	assert.Equal(t, config.KeyModeContent, cfg.KeyMode)
	assert.Equal(t, config.OutputYAML, cfg.OutputFormat)
	assert.True(t, cfg.HostVars)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	cmd, opts := parseArgs(t,
		"--config", "inventory.hcl",
		"--region", "eu-central-1",
		"--key-mode", "none",
	)

	fromFile := config.Default()
	fromFile.Region = "us-west-2"
	fromFile.User = "ubuntu"
	fromFile.KeyMode = config.KeyModeAgent
	fromFile.TagKey = "Role"
	fromFile.TagValues = []string{"web", "worker"}
	fromFile.KeyLifetime = time.Hour

	parser := configMocks.NewIProvider(t)
	parser.On("ParseFile", "inventory.hcl", config.Default()).Return(fromFile, nil).Once()

	cfg, err := loadConfig(cmd, opts, parser)
	require.NoError(t, err)

	// Explicit flags win
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, config.KeyModeNone, cfg.KeyMode)
	// Everything else comes from the file
	assert.Equal(t, "ubuntu", cfg.User)
	assert.Equal(t, "Role", cfg.TagKey)
	assert.Equal(t, []string{"web", "worker"}, cfg.TagValues)
	assert.Equal(t, time.Hour, cfg.KeyLifetime)
}

func TestLoadConfig_HCLFile(t *testing.T) {
	cmd, opts := parseArgs(t, "--config", "../../internal/config/testdata/full.hcl", "--user", "admin")

	cfg, err := loadConfig(cmd, opts, config.NewDefaultParser())
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, "prod/ssh/deploy-key", cfg.SecretID)
}

func TestLoadConfig_FileError(t *testing.T) {
	cmd, opts := parseArgs(t, "--config", "broken.hcl")

	parser := configMocks.NewIProvider(t)
	parser.On("ParseFile", "broken.hcl", config.Default()).Return(config.Default(), errors.New("failed to parse HCL file broken.hcl")).Once()

	_, err := loadConfig(cmd, opts, parser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad key mode", args: []string{"--key-mode", "magic"}},
		{name: "empty tag values", args: []string{"--tag-values", " , "}},
		{name: "bad output", args: []string{"--output", "xml"}},
		{name: "missing config file", args: []string{"--config", "testdata/missing.hcl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, opts := parseArgs(t, tt.args...)
			_, err := loadConfig(cmd, opts, config.NewDefaultParser())
			assert.Error(t, err)
		})
	}
}

func TestRootCommand_ListAndHostExclusive(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--list", "--host", "1.2.3.4"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
