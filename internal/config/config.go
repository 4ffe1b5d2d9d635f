package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// KeyMode selects what the inventory carries for SSH authentication.
type KeyMode string

const (
	// KeyModeNone emits only the remote user.
	KeyModeNone KeyMode = "none"
	// KeyModeContent embeds the private key text as ansible_ssh_private_key_content.
	KeyModeContent KeyMode = "content"
	// KeyModeAgent loads the key into a fresh ssh-agent and emits its coordinates.
	KeyModeAgent KeyMode = "agent"
)

// Output formats understood by the inventory printer
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Defaults
const (
	DefaultRegion   = "ap-southeast-2"
	DefaultTagKey   = "Name"
	DefaultSecretID = "AnsChallengeEC2KeyPairSecret"
	DefaultUser     = "ec2-user"
)

// Config contains all the parameters needed to build an inventory.
type Config struct {
	Region       string   // AWS region queried
	TagKey       string   // Tag key instances are filtered on
	TagValues    []string // Accepted values for TagKey
	SecretID     string   // Secrets Manager identifier of the SSH private key
	User         string   // ansible_user
	KeyMode      KeyMode  // none, content or agent
	OutputFormat string   // json or yaml
	HostVars     bool     // Emit _meta.hostvars

	VerifyAgent     bool          // Check the key is listed by the agent after ssh-add
	KeyLifetime     time.Duration // ssh-add -t, zero for no limit
	StopAgentOnExit bool          // Stop the agent even after a successful run
	AgentPath       string        // ssh-agent binary
	AddPath         string        // ssh-add binary

	Timeout  time.Duration // Bound on the whole run, zero for none
	LogLevel string
}

// Default returns the configuration used when neither a file nor flags override it.
func Default() Config {
	return Config{
		Region:       DefaultRegion,
		TagKey:       DefaultTagKey,
		TagValues:    []string{"ansible_vm1", "ansible_vm2"},
		SecretID:     DefaultSecretID,
		User:         DefaultUser,
		KeyMode:      KeyModeAgent,
		OutputFormat: OutputJSON,
		AgentPath:    "ssh-agent",
		AddPath:      "ssh-add",
		LogLevel:     "info",
	}
}

// ParseKeyMode converts a user supplied string to a KeyMode.
func ParseKeyMode(s string) (KeyMode, error) {
	mode := KeyMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case KeyModeNone, KeyModeContent, KeyModeAgent:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported key mode %q (want none, content or agent)", s)
	}
}

// NeedsSecret reports whether the run has to fetch the private key.
func (c Config) NeedsSecret() bool {
	return c.KeyMode == KeyModeContent || c.KeyMode == KeyModeAgent
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.TagKey == "" {
		return fmt.Errorf("tag key is required")
	}
	if len(c.TagValues) == 0 {
		return fmt.Errorf("at least one tag value is required")
	}
	if slices.Contains(c.TagValues, "") {
		return fmt.Errorf("tag values must not be empty")
	}
	if c.User == "" {
		return fmt.Errorf("ansible user is required")
	}
	if _, err := ParseKeyMode(string(c.KeyMode)); err != nil {
		return err
	}
	if c.NeedsSecret() && c.SecretID == "" {
		return fmt.Errorf("secret id is required for key mode %s", c.KeyMode)
	}
	switch strings.ToLower(c.OutputFormat) {
	case OutputJSON, OutputYAML, "yml":
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", c.OutputFormat)
	}
	if c.KeyLifetime < 0 {
		return fmt.Errorf("key lifetime must not be negative")
	}
	if c.KeyLifetime > 0 && c.KeyLifetime < time.Second {
		return fmt.Errorf("key lifetime must be at least one second")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// SplitList splits a comma separated flag value, trimming blanks.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
