package sshagent

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAgentStart is returned when ssh-agent cannot be launched or exits non-zero.
	ErrAgentStart = errors.New("failed to start ssh-agent")

	// ErrKeyRegistration is returned when ssh-add rejects the key or exits non-zero.
	ErrKeyRegistration = errors.New("failed to register key with ssh-agent")

	// ErrAgentStop is returned when the agent cannot be terminated.
	ErrAgentStop = errors.New("failed to stop ssh-agent")

	// ErrKeyNotLoaded is returned when verification cannot find the key in the agent.
	ErrKeyNotLoaded = errors.New("key is not loaded in ssh-agent")
)

// commandError wraps sentinel and cause, appending whatever the command wrote to stderr.
func commandError(sentinel, cause error, stderr []byte) error {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return fmt.Errorf("%w: %w: %s", sentinel, cause, msg)
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
