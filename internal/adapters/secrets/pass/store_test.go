package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKeyName = "gptbridge/openai/api_key"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "--multiline", "--force", apiKeyName}, args)
			assert.Equal(t, "sk-test\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), apiKeyName, "sk-test"))
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		stdout string
		want   string
	}{
		{name: "single line", stdout: "sk-test\n", want: "sk-test"},
		{name: "with notes", stdout: "sk-test\nrotated 2024-03-01\n", want: "sk-test"},
		{name: "crlf", stdout: "sk-test\r\n", want: "sk-test"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &Store{
				run: func(ctx context.Context, input string, args ...string) (string, string, error) {
					assert.Equal(t, []string{"show", apiKeyName}, args)
					assert.Empty(t, input)
					return tc.stdout, "", nil
				},
			}

			value, err := store.Get(context.Background(), apiKeyName)
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}
}

func TestStoreGetMapsMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: gptbridge/openai/api_key is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), apiKeyName)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), apiKeyName)
	require.Error(t, err)
	assert.ErrorContains(t, err, `read credential "gptbridge/openai/api_key" from pass`)
	assert.ErrorContains(t, err, "gpg: decryption failed")
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "--force", apiKeyName}, args)
			return "", "Error: gptbridge/openai/api_key is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), apiKeyName))
}

func TestStoreUnavailable(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "", ErrUnavailable
		},
	}

	_, err := store.Get(context.Background(), apiKeyName)
	assert.ErrorIs(t, err, ErrUnavailable)
}
