package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/gptbridge/internal/adapters/repo/atomicfile"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botTokenKey = "gptbridge/discord/bot_token"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "credential key is empty"},
		{name: "whitespace", key: "   ", wantErr: "credential key is empty"},
		{name: "absolute", key: "/etc/passwd", wantErr: `credential key "/etc/passwd" escapes`},
		{name: "parent", key: "..", wantErr: `credential key ".." escapes`},
		{name: "traversal", key: "../../token", wantErr: `credential key "../../token" escapes`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), botTokenKey, "bot-token"))

	got, err := store.Get(context.Background(), botTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "bot-token", got)

	info, err := os.Stat(filepath.Join(root, botTokenKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(atomicfile.FileMode), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Join(root, "gptbridge", "discord"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(atomicfile.DirMode), dirInfo.Mode().Perm())
}

func TestStoreGetTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "gptbridge", "openai", "api_key")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("sk-test\n"), 0o600))

	got, err := NewStore(root).Get(context.Background(), "gptbridge/openai/api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", got)
}

func TestStoreGetMissingSecret(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := NewStore(root).Get(context.Background(), botTokenKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, `credential "gptbridge/discord/bot_token" has no file under `+root)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), botTokenKey, "bot-token"))

	require.NoError(t, store.Delete(context.Background(), botTokenKey))
	require.NoError(t, store.Delete(context.Background(), botTokenKey))

	_, err := store.Get(context.Background(), botTokenKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Put(ctx, botTokenKey, "bot-token")
	assert.ErrorIs(t, err, context.Canceled)
}
