package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"ec2inventory/internal/config"
	"ec2inventory/internal/orchestrator"
	"ec2inventory/pkg/logging"
)

// options holds the raw flag values before they are merged into a config.Config.
type options struct {
	configPath  string
	region      string
	tagKey      string
	tagValues   string
	secretID    string
	user        string
	keyMode     string
	output      string
	hostVars    bool
	verifyAgent bool
	keyLifetime time.Duration
	stopAgent   bool
	agentPath   string
	addPath     string
	timeout     time.Duration
	logLevel    string
	list        bool
	host        string
}

func main() {
	// Wipe any key material left in protected memory on every exit path
	defer memguard.Purge()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		memguard.Purge()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "ec2inventory",
		Short: "Ansible dynamic inventory for tag-filtered AWS EC2 instances",
		Long: `ec2inventory lists running EC2 instances matching a tag filter and prints
an Ansible dynamic inventory on stdout. The SSH private key is fetched from
AWS Secrets Manager and either loaded into a fresh ssh-agent or embedded in
the inventory, depending on --key-mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list && opts.host != "" {
				return errors.New("--list and --host are mutually exclusive")
			}

			cfg, err := loadConfig(cmd, opts, config.NewDefaultParser())
			if err != nil {
				return err
			}

			logger := logging.NewDefaultLogger()
			logger.SetLevel(logging.StringToLogLevel(cfg.LogLevel))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			service, err := orchestrator.NewDefaultService(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize the service: %w", err)
			}

			if opts.host != "" {
				if err := service.RunHost(ctx, opts.host); err != nil {
					return fmt.Errorf("failed to describe host %s: %w", opts.host, err)
				}
				return nil
			}

			result, err := service.Run(ctx)
			if err != nil {
				return fmt.Errorf("failed to build inventory: %w", err)
			}
			if result.Session != nil {
				logger.Info("ssh-agent pid=%s left running at %s", result.Session.AgentPID, result.Session.AuthSock)
			}
			return nil
		},
	}

	addFlags(rootCmd, &opts)

	return rootCmd
}

// addFlags registers the command line flags, bound to opts.
func addFlags(cmd *cobra.Command, opts *options) {
	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to an HCL configuration file")
	flags.StringVar(&opts.region, "region", defaults.Region, "AWS region to query")
	flags.StringVar(&opts.tagKey, "tag-key", defaults.TagKey, "Tag key instances are filtered on")
	flags.StringVar(&opts.tagValues, "tag-values", "ansible_vm1,ansible_vm2", "Comma-separated list of accepted tag values")
	flags.StringVar(&opts.secretID, "secret-id", defaults.SecretID, "Secrets Manager ID of the SSH private key")
	flags.StringVar(&opts.user, "user", defaults.User, "Remote user set as ansible_user")
	flags.StringVar(&opts.keyMode, "key-mode", string(defaults.KeyMode), "How the key is handed to Ansible: none, content or agent")
	flags.StringVar(&opts.output, "output", defaults.OutputFormat, "Output format: json or yaml")
	flags.BoolVar(&opts.hostVars, "hostvars", false, "Include _meta.hostvars for every host")
	flags.BoolVar(&opts.verifyAgent, "verify-agent", false, "Check the key is listed by ssh-agent after loading it")
	flags.DurationVar(&opts.keyLifetime, "key-lifetime", 0, "Lifetime of the key in the agent (ssh-add -t), 0 for no limit")
	flags.BoolVar(&opts.stopAgent, "stop-agent", false, "Stop the ssh-agent before exiting, even on success")
	flags.StringVar(&opts.agentPath, "ssh-agent", defaults.AgentPath, "Path to the ssh-agent binary")
	flags.StringVar(&opts.addPath, "ssh-add", defaults.AddPath, "Path to the ssh-add binary")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Bound on the whole run, 0 for none")
	flags.StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.list, "list", false, "Print the whole inventory (default)")
	flags.StringVar(&opts.host, "host", "", "Print the variables of a single host")
}

// loadConfig starts from the defaults, overlays the config file if given,
// then overlays every flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command, opts options, parser config.IProvider) (config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error
		cfg, err = parser.ParseFile(opts.configPath, cfg)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("region") {
		cfg.Region = opts.region
	}
	if flags.Changed("tag-key") {
		cfg.TagKey = opts.tagKey
	}
	if flags.Changed("tag-values") {
		cfg.TagValues = config.SplitList(opts.tagValues)
	}
	if flags.Changed("secret-id") {
		cfg.SecretID = opts.secretID
	}
	if flags.Changed("user") {
		cfg.User = opts.user
	}
	if flags.Changed("key-mode") {
		mode, err := config.ParseKeyMode(opts.keyMode)
		if err != nil {
			return cfg, err
		}
		cfg.KeyMode = mode
	}
	if flags.Changed("output") {
		cfg.OutputFormat = opts.output
	}
	if flags.Changed("hostvars") {
		cfg.HostVars = opts.hostVars
	}
	if flags.Changed("verify-agent") {
		cfg.VerifyAgent = opts.verifyAgent
	}
	if flags.Changed("key-lifetime") {
		cfg.KeyLifetime = opts.keyLifetime
	}
	if flags.Changed("stop-agent") {
		cfg.StopAgentOnExit = opts.stopAgent
	}
	if flags.Changed("ssh-agent") {
		cfg.AgentPath = opts.agentPath
	}
	if flags.Changed("ssh-add") {
		cfg.AddPath = opts.addPath
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	return cfg, cfg.Validate()
}
