package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
)

// CredentialResolver prefers an explicit value (env or config) and falls back to the secret store.
type CredentialResolver struct {
	store ports.SecretStore
}

func NewCredentialResolver(store ports.SecretStore) *CredentialResolver {
	return &CredentialResolver{store: store}
}

func (r *CredentialResolver) Resolve(ctx context.Context, name domain.SecretName, explicit string) (string, error) {
	if value := strings.TrimSpace(explicit); value != "" {
		return value, nil
	}
	if r.store == nil {
		return "", fmt.Errorf("resolve %s credential: %w", name, domain.ErrSecretNotFound)
	}

	value, err := r.store.Get(ctx, name.Key())
	if err != nil {
		return "", fmt.Errorf("resolve %s credential: %w", name, err)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("resolve %s credential: %w", name, domain.ErrSecretNotFound)
	}

	return strings.TrimSpace(value), nil
}

func (r *CredentialResolver) Store(ctx context.Context, name domain.SecretName, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	if err := r.store.Put(ctx, name.Key(), strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("store %s credential: %w", name, err)
	}

	return nil
}

func (r *CredentialResolver) Remove(ctx context.Context, name domain.SecretName) error {
	if err := r.store.Delete(ctx, name.Key()); err != nil {
		return fmt.Errorf("remove %s credential: %w", name, err)
	}

	return nil
}
