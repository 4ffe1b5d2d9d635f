package config

// FileConfig is the top-level structure of an HCL configuration file.
type FileConfig struct {
	Region   string       `hcl:"region,optional"`
	User     string       `hcl:"user,optional"`
	KeyMode  string       `hcl:"key_mode,optional"`
	Output   string       `hcl:"output,optional"`
	HostVars bool         `hcl:"hostvars,optional"`
	Timeout  string       `hcl:"timeout,optional"`
	LogLevel string       `hcl:"log_level,optional"`
	Filter   *FilterBlock `hcl:"filter,block"`
	Secret   *SecretBlock `hcl:"secret,block"`
	Agent    *AgentBlock  `hcl:"agent,block"`
}

// FilterBlock selects instances by tag.
type FilterBlock struct {
	TagKey    string   `hcl:"tag_key"`
	TagValues []string `hcl:"tag_values"`
}

// SecretBlock names the Secrets Manager entry holding the private key.
type SecretBlock struct {
	ID string `hcl:"id"`
}

// AgentBlock tunes ssh-agent handling.
type AgentBlock struct {
	Verify      bool   `hcl:"verify,optional"`
	KeyLifetime string `hcl:"key_lifetime,optional"`
	StopOnExit  bool   `hcl:"stop_on_exit,optional"`
	AgentPath   string `hcl:"agent_path,optional"`
	AddPath     string `hcl:"add_path,optional"`
}
