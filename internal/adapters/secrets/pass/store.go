// Package pass reads and writes bridge credentials through the pass password manager.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
)

var ErrUnavailable = errors.New("pass command not found in PATH")

const notInStoreMarker = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

// NewStore uses the default password store, or storeDir when it is not empty.
func NewStore(storeDir string) *Store {
	return &Store{run: passRunner(storeDir)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", key)
	if err != nil {
		return formatError(fmt.Sprintf("store credential %q in pass", key), err, stderr)
	}

	return nil
}

// Get returns the first line of the entry, so multi-line pass entries can carry notes below the secret.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err != nil {
		return "", formatError(fmt.Sprintf("read credential %q from pass", key), err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", key)
	if err != nil && !strings.Contains(stderr, notInStoreMarker) {
		return formatError(fmt.Sprintf("remove credential %q from pass", key), err, stderr)
	}

	return nil
}

func passRunner(storeDir string) runFunc {
	return func(ctx context.Context, input string, args ...string) (string, string, error) {
		path, err := exec.LookPath("pass")
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrUnavailable
			}
			return "", "", fmt.Errorf("locate pass command: %w", err)
		}

		cmd := exec.CommandContext(ctx, path, args...)
		if storeDir != "" {
			cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+storeDir)
		}
		if input != "" {
			cmd.Stdin = strings.NewReader(input)
		}

		var stdout bytes.Buffer
		var stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}

// formatError maps pass's "not in the password store" stderr to ErrSecretNotFound and keeps any other stderr for the operator.
func formatError(action string, err error, stderr string) error {
	switch {
	case strings.Contains(stderr, notInStoreMarker):
		return fmt.Errorf("%s: %w", action, domain.ErrSecretNotFound)
	case stderr == "":
		return fmt.Errorf("%s: %w", action, err)
	default:
		return fmt.Errorf("%s: %w: %s", action, err, stderr)
	}
}
