package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"golang.org/x/sync/errgroup"

	"ec2inventory/internal/config"
	"ec2inventory/internal/inventory"
	"ec2inventory/internal/models"
	aws "ec2inventory/internal/providers/aws"
	"ec2inventory/internal/secure"
	"ec2inventory/internal/sshagent"
	"ec2inventory/pkg/logging"
)

// agentStopTimeout bounds cleanup, which must still run after the run context is cancelled.
const agentStopTimeout = 10 * time.Second

// Service orchestrates inventory generation.
type Service struct {
	config    config.Config
	instances aws.InstanceServiceAPI
	secrets   aws.SecretServiceAPI
	agent     sshagent.ManagerAPI
	printer   inventory.IPrinter
	logger    logging.Logger
	out       io.Writer
}

// NewService creates a new orchestrator service with the given configuration.
func NewService(
	cfg config.Config,
	instances aws.InstanceServiceAPI,
	secrets aws.SecretServiceAPI,
	agent sshagent.ManagerAPI,
	printer inventory.IPrinter,
	logger logging.Logger,
	out io.Writer,
) *Service {
	return &Service{
		config:    cfg,
		instances: instances,
		secrets:   secrets,
		agent:     agent,
		printer:   printer,
		logger:    logger,
		out:       out,
	}
}

// NewDefaultService creates a new service backed by the AWS SDK and the local OpenSSH tools
func NewDefaultService(ctx context.Context, cfg config.Config, logger logging.Logger) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, aws.ClassifyAWSError(fmt.Errorf("unable to load AWS SDK config: %w", err), "", "")
	}

	agent := sshagent.NewManager(logger,
		sshagent.WithAgentPath(cfg.AgentPath),
		sshagent.WithAddPath(cfg.AddPath),
		sshagent.WithKeyLifetime(cfg.KeyLifetime),
	)

	return NewService(
		cfg,
		aws.NewInstanceServiceWithConfig(awsCfg, logger),
		aws.NewSecretServiceWithConfig(awsCfg, logger),
		agent,
		inventory.DefaultPrinter{},
		logger,
		os.Stdout,
	), nil
}

// Run builds the inventory and writes it. Nothing is written unless every step succeeds.
// An agent started during the run is stopped on every failure path, and on success
// only when StopAgentOnExit is set.
func (s *Service) Run(ctx context.Context) (result *Result, err error) {
	if err := s.validateConfig(); err != nil {
		return nil, err
	}
	format, err := inventory.ParseOutputFormat(s.config.OutputFormat)
	if err != nil {
		return nil, err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	instances, secret, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer secret.Destroy()

	var session *sshagent.Session
	defer func() {
		if session == nil {
			return
		}
		if err != nil || s.config.StopAgentOnExit {
			s.stopAgent(ctx, session)
			if result != nil {
				result.Session = nil
			}
		}
	}()

	vars, session, err := s.authVars(ctx, secret)
	if err != nil {
		return nil, err
	}

	doc := inventory.Build(instances, s.config.User, vars)
	if s.config.HostVars {
		doc.AddHostVars(instances)
	}

	var buf bytes.Buffer
	if err := s.printer.Print(&buf, doc, format); err != nil {
		return nil, fmt.Errorf("error rendering inventory: %w", err)
	}
	// The context may have expired while rendering
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.out.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("error writing inventory: %w", err)
	}

	s.logger.Info("Inventory written: %d hosts from %d running instances, key mode %s",
		len(doc.All.Hosts), len(instances), s.config.KeyMode)

	return &Result{Instances: instances, Document: doc, Session: session}, nil
}

// RunHost writes the variables of a single host. No secret or agent is involved.
func (s *Service) RunHost(ctx context.Context, host string) error {
	if err := s.validateConfig(); err != nil {
		return err
	}
	format, err := inventory.ParseOutputFormat(s.config.OutputFormat)
	if err != nil {
		return err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	instances, err := s.instances.ListRunningInstances(ctx, s.config.TagKey, s.config.TagValues)
	if err != nil {
		return fmt.Errorf("error listing instances: %w", err)
	}

	doc := inventory.Build(instances, s.config.User, nil)
	doc.AddHostVars(instances)

	var buf bytes.Buffer
	if err := s.printer.PrintHost(&buf, doc, host, format); err != nil {
		return fmt.Errorf("error rendering host %s: %w", host, err)
	}
	_, err = s.out.Write(buf.Bytes())
	return err
}

// fetch lists instances and, when the key mode needs it, fetches the secret.
// The two calls are independent and run concurrently.
func (s *Service) fetch(ctx context.Context) ([]models.Instance, *secure.Secret, error) {
	var (
		instances []models.Instance
		secret    *secure.Secret
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		instances, err = s.instances.ListRunningInstances(gctx, s.config.TagKey, s.config.TagValues)
		if err != nil {
			return fmt.Errorf("error listing instances: %w", err)
		}
		s.logger.Debug("Found %d running instances tagged %s", len(instances), s.config.TagKey)
		return nil
	})

	if s.config.NeedsSecret() {
		g.Go(func() error {
			var err error
			secret, err = s.secrets.GetSecret(gctx, s.config.SecretID)
			if err != nil {
				return fmt.Errorf("error fetching secret %s: %w", s.config.SecretID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		secret.Destroy()
		return nil, nil, err
	}

	return instances, secret, nil
}

// authVars returns the inventory variables for the configured key mode.
// In agent mode the returned session is running and owned by the caller.
func (s *Service) authVars(ctx context.Context, secret *secure.Secret) (map[string]string, *sshagent.Session, error) {
	switch s.config.KeyMode {
	case config.KeyModeContent:
		var key string
		if err := secret.Reveal(func(plaintext []byte) error {
			key = string(plaintext)
			return nil
		}); err != nil {
			return nil, nil, fmt.Errorf("error reading secret: %w", err)
		}
		s.logger.Debug("Embedding private key %s (%d bytes) in inventory vars", logging.Redacted(key), len(key))
		return inventory.KeyContentVars(key), nil, nil

	case config.KeyModeAgent:
		session, err := s.agent.Start(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := s.agent.AddKey(ctx, session, secret); err != nil {
			return nil, session, err
		}
		if s.config.VerifyAgent {
			if err := s.agent.Verify(ctx, session, secret); err != nil {
				return nil, session, err
			}
		}
		s.logger.Debug("Key registered with ssh-agent pid=%s", session.AgentPID)
		return inventory.AgentVars(session), session, nil

	default:
		return nil, nil, nil
	}
}

// stopAgent releases the agent, even if ctx has been cancelled.
func (s *Service) stopAgent(ctx context.Context, session *sshagent.Session) {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), agentStopTimeout)
	defer cancel()

	if err := s.agent.Stop(stopCtx, session); err != nil {
		s.logger.Warn("Failed to stop ssh-agent pid=%s: %v", session.AgentPID, err)
		return
	}
	s.logger.Debug("Stopped ssh-agent pid=%s", session.AgentPID)
}

// validateConfig checks if the required configuration is provided.
func (s *Service) validateConfig() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
