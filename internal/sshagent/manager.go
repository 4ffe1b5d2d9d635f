package sshagent

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"ec2inventory/internal/secure"
	"ec2inventory/pkg/logging"
)

const (
	defaultAgentPath = "ssh-agent"
	defaultAddPath   = "ssh-add"
)

// ManagerAPI defines the agent lifecycle used by the orchestrator
//
//go:generate mockery --name=ManagerAPI --output=./mocks
type ManagerAPI interface {
	Start(ctx context.Context) (*Session, error)
	AddKey(ctx context.Context, session *Session, key *secure.Secret) error
	Verify(ctx context.Context, session *Session, key *secure.Secret) error
	Stop(ctx context.Context, session *Session) error
}

// Manager drives ssh-agent and ssh-add. It never touches the process
// environment: the session is passed to every subprocess explicitly.
type Manager struct {
	runner      Runner
	logger      logging.Logger
	agentPath   string
	addPath     string
	keyLifetime time.Duration
	dial        func(ctx context.Context, network, address string) (net.Conn, error)
	environ     func() []string
}

// Option configures a Manager
type Option func(*Manager)

// WithRunner replaces the subprocess runner (for testing)
func WithRunner(r Runner) Option {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithAgentPath sets the ssh-agent binary
func WithAgentPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.agentPath = path
		}
	}
}

// WithAddPath sets the ssh-add binary
func WithAddPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.addPath = path
		}
	}
}

// WithKeyLifetime makes the agent forget the key after d. Zero keeps it indefinitely.
func WithKeyLifetime(d time.Duration) Option {
	return func(m *Manager) {
		m.keyLifetime = d
	}
}

// WithDialer replaces how the agent socket is reached during verification
func WithDialer(dial func(ctx context.Context, network, address string) (net.Conn, error)) Option {
	return func(m *Manager) {
		m.dial = dial
	}
}

// WithEnviron replaces the base environment given to subprocesses
func WithEnviron(environ func() []string) Option {
	return func(m *Manager) {
		m.environ = environ
	}
}

// NewManager creates a Manager that shells out to ssh-agent and ssh-add from PATH
func NewManager(logger logging.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	var d net.Dialer
	m := &Manager{
		runner:    ExecRunner{},
		logger:    logger,
		agentPath: defaultAgentPath,
		addPath:   defaultAddPath,
		dial:      d.DialContext,
		environ:   os.Environ,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches a new agent and returns its coordinates. The caller owns
// the agent and must call Stop when it is no longer wanted.
func (m *Manager) Start(ctx context.Context) (*Session, error) {
	stdout, stderr, err := m.runner.Execute(ctx, Command{
		Name: m.agentPath,
		Args: []string{"-s"},
		Env:  m.environ(),
	})
	if err != nil {
		return nil, commandError(ErrAgentStart, err, stderr)
	}

	vars := parseAssignments(string(stdout))
	session, err := sessionFromAssignments(vars)
	if err != nil {
		// The agent may be running even though its output was unreadable
		if pid := vars[EnvAgentPID]; pid != "" {
			if stopErr := m.Stop(ctx, &Session{AgentPID: pid}); stopErr != nil {
				m.logger.Warn("Could not stop agent %s after malformed output: %v", pid, stopErr)
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrAgentStart, err)
	}

	m.logger.Debug("Started ssh-agent pid=%s sock=%s", session.AgentPID, session.AuthSock)
	return session, nil
}

// AddKey pipes key into ssh-add, pointed at session.
func (m *Manager) AddKey(ctx context.Context, session *Session, key *secure.Secret) error {
	if session == nil {
		return fmt.Errorf("%w: no agent session", ErrKeyRegistration)
	}

	args := make([]string, 0, 3)
	if m.keyLifetime > 0 {
		args = append(args, "-t", strconv.Itoa(int(m.keyLifetime.Seconds())))
	}
	args = append(args, "-")

	return key.Reveal(func(plaintext []byte) error {
		_, stderr, err := m.runner.Execute(ctx, Command{
			Name:  m.addPath,
			Args:  args,
			Env:   session.Environ(m.environ()),
			Stdin: bytes.NewReader(plaintext),
		})
		if err != nil {
			return commandError(ErrKeyRegistration, err, stderr)
		}
		m.logger.Debug("Registered key with ssh-agent pid=%s", session.AgentPID)
		return nil
	})
}

// Verify connects to the agent socket and checks that key's public half is listed.
func (m *Manager) Verify(ctx context.Context, session *Session, key *secure.Secret) error {
	if session == nil {
		return fmt.Errorf("%w: no agent session", ErrKeyNotLoaded)
	}

	var want []byte
	err := key.Reveal(func(plaintext []byte) error {
		signer, err := ssh.ParsePrivateKey(plaintext)
		if err != nil {
			return fmt.Errorf("failed to parse private key: %w", err)
		}
		want = signer.PublicKey().Marshal()
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyNotLoaded, err)
	}

	conn, err := m.dial(ctx, "unix", session.AuthSock)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to %s: %w", ErrKeyNotLoaded, session.AuthSock, err)
	}
	defer conn.Close()

	keys, err := agent.NewClient(conn).List()
	if err != nil {
		return fmt.Errorf("%w: failed to list agent keys: %w", ErrKeyNotLoaded, err)
	}
	for _, k := range keys {
		if bytes.Equal(k.Blob, want) {
			m.logger.Debug("Verified key %s is loaded", ssh.FingerprintSHA256(k))
			return nil
		}
	}

	return fmt.Errorf("%w: %d keys listed, none match", ErrKeyNotLoaded, len(keys))
}

// Stop terminates the agent identified by session.
func (m *Manager) Stop(ctx context.Context, session *Session) error {
	if session == nil || session.AgentPID == "" {
		return nil
	}

	_, stderr, err := m.runner.Execute(ctx, Command{
		Name: m.agentPath,
		Args: []string{"-k"},
		Env:  session.Environ(m.environ()),
	})
	if err != nil {
		return commandError(ErrAgentStop, err, stderr)
	}

	m.logger.Debug("Stopped ssh-agent pid=%s", session.AgentPID)
	return nil
}
