// Package secure keeps secret material encrypted in memory between the
// moment it is fetched and the moment it is handed to ssh-add or rendered
// into the inventory.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

var (
	// ErrEmptySecret is returned when a secret with no content is stored.
	ErrEmptySecret = errors.New("secret is empty")

	// ErrDestroyed is returned when a destroyed secret is read.
	ErrDestroyed = errors.New("secret has been destroyed")
)

// Secret holds sensitive bytes in a memguard enclave.
type Secret struct {
	mu        sync.Mutex
	enclave   *memguard.Enclave
	destroyed bool
}

// NewSecret moves data into an encrypted enclave. The caller's slice is wiped.
func NewSecret(data []byte) (*Secret, error) {
	if len(data) == 0 {
		return nil, ErrEmptySecret
	}
	return &Secret{enclave: memguard.NewEnclave(data)}, nil
}

// Reveal decrypts the secret for the duration of fn. The slice passed to fn
// is wiped when fn returns and must not be retained.
func (s *Secret) Reveal(fn func(plaintext []byte) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrDestroyed
	}

	locked, err := s.enclave.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()

	return fn(locked.Bytes())
}

// String never exposes the value.
func (s *Secret) String() string {
	return "[REDACTED]"
}

// Destroy drops the enclave. Safe to call more than once and on a nil Secret.
func (s *Secret) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enclave = nil
	s.destroyed = true
}
