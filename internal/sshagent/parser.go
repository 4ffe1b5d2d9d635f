package sshagent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedAgentOutput matches every *MalformedOutputError.
var ErrMalformedAgentOutput = errors.New("malformed agent output")

// MalformedOutputError reports which variable could not be read from the agent output.
type MalformedOutputError struct {
	Variable string
	Reason   string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrMalformedAgentOutput, e.Variable, e.Reason)
}

// Is lets errors.Is match against ErrMalformedAgentOutput.
func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedAgentOutput
}

// ParseAgentOutput reads the startup script printed by ssh-agent.
//
// The output is a sequence of statements separated by ';' or newlines.
// Recognised statements are
//
//	NAME=VALUE          (sh)
//	export NAME=VALUE   (sh)
//	setenv NAME VALUE   (csh)
//	export NAME | unset NAME | echo ...
//
// Anything else is ignored. Both SSH_AUTH_SOCK and a numeric SSH_AGENT_PID
// must be present.
func ParseAgentOutput(output string) (*Session, error) {
	return sessionFromAssignments(parseAssignments(output))
}

// parseAssignments collects every variable assignment in output. Later
// assignments win.
func parseAssignments(output string) map[string]string {
	vars := make(map[string]string)

	statements := strings.FieldsFunc(output, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		fields := strings.Fields(stmt)
		switch fields[0] {
		case "export":
			if !strings.Contains(stmt, "=") {
				continue
			}
			stmt = strings.TrimSpace(strings.TrimPrefix(stmt, "export"))
		case "unset", "echo":
			continue
		case "setenv":
			if len(fields) >= 3 && isIdentifier(fields[1]) {
				vars[fields[1]] = unquote(strings.Join(fields[2:], " "))
			}
			continue
		}

		name, value, ok := strings.Cut(stmt, "=")
		if !ok || !isIdentifier(name) {
			continue
		}
		vars[name] = unquote(strings.TrimSpace(value))
	}

	return vars
}

func sessionFromAssignments(vars map[string]string) (*Session, error) {
	sock, ok := vars[EnvAuthSock]
	if !ok || sock == "" {
		return nil, &MalformedOutputError{Variable: EnvAuthSock, Reason: "is missing"}
	}

	pid, ok := vars[EnvAgentPID]
	if !ok || pid == "" {
		return nil, &MalformedOutputError{Variable: EnvAgentPID, Reason: "is missing"}
	}
	if n, err := strconv.Atoi(pid); err != nil || n <= 0 {
		return nil, &MalformedOutputError{Variable: EnvAgentPID, Reason: fmt.Sprintf("is not a process id: %q", pid)}
	}

	return &Session{AuthSock: sock, AgentPID: pid}, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
