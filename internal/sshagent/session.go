package sshagent

import "strings"

// Environment variables published by ssh-agent
const (
	EnvAuthSock = "SSH_AUTH_SOCK"
	EnvAgentPID = "SSH_AGENT_PID"
)

// Session identifies a running agent by its socket path and process id.
type Session struct {
	AuthSock string
	AgentPID string
}

// Environ returns base with any inherited agent variables replaced by the
// session's own, ready to be used as a subprocess environment.
func (s Session) Environ(base []string) []string {
	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		if strings.HasPrefix(kv, EnvAuthSock+"=") || strings.HasPrefix(kv, EnvAgentPID+"=") {
			continue
		}
		env = append(env, kv)
	}
	if s.AuthSock != "" {
		env = append(env, EnvAuthSock+"="+s.AuthSock)
	}
	if s.AgentPID != "" {
		env = append(env, EnvAgentPID+"="+s.AgentPID)
	}
	return env
}
