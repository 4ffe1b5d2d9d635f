package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"ec2inventory/pkg/logging"
)

type DefaultParser struct {
	logger logging.Logger
}

// NewDefaultParser creates a new instance of DefaultParser
func NewDefaultParser() *DefaultParser {
	return NewParserWithLogger(
		logging.NewDefaultLogger(),
	)
}

// NewParserWithLogger creates a new instance of DefaultParser with a specific logger
func NewParserWithLogger(logger logging.Logger) *DefaultParser {
	return &DefaultParser{
		logger: logger,
	}
}

// ParseFile parses an HCL configuration file and overlays every value it sets on base.
func (p DefaultParser) ParseFile(path string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	if file == nil || file.Body == nil {
		return base, fmt.Errorf("parsed HCL file is empty or invalid: %s", path)
	}

	var fc FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to decode HCL body %s: %s", path, diags.Error())
	}

	cfg, err := apply(base, &fc)
	if err != nil {
		return base, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	p.logger.Debug("Loaded configuration from %s: region=%s tag=%s mode=%s", path, cfg.Region, cfg.TagKey, cfg.KeyMode)
	return cfg, nil
}

// apply copies the values present in fc onto cfg
func apply(cfg Config, fc *FileConfig) (Config, error) {
	if fc.Region != "" {
		cfg.Region = fc.Region
	}
	if fc.User != "" {
		cfg.User = fc.User
	}
	if fc.KeyMode != "" {
		mode, err := ParseKeyMode(fc.KeyMode)
		if err != nil {
			return cfg, err
		}
		cfg.KeyMode = mode
	}
	if fc.Output != "" {
		cfg.OutputFormat = fc.Output
	}
	if fc.HostVars {
		cfg.HostVars = true
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}

	if fc.Filter != nil {
		cfg.TagKey = fc.Filter.TagKey
		cfg.TagValues = fc.Filter.TagValues
	}

	if fc.Secret != nil {
		cfg.SecretID = fc.Secret.ID
	}

	if a := fc.Agent; a != nil {
		if a.Verify {
			cfg.VerifyAgent = true
		}
		if a.StopOnExit {
			cfg.StopAgentOnExit = true
		}
		if a.AgentPath != "" {
			cfg.AgentPath = a.AgentPath
		}
		if a.AddPath != "" {
			cfg.AddPath = a.AddPath
		}
		if a.KeyLifetime != "" {
			d, err := time.ParseDuration(a.KeyLifetime)
			if err != nil {
				return cfg, fmt.Errorf("agent.key_lifetime: %w", err)
			}
			cfg.KeyLifetime = d
		}
	}

	return cfg, nil
}
