package domain

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupQuotaStates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value int64
		ok    bool
		want  Quota
	}{
		{name: "absent entry has no access", value: 5, ok: false, want: Quota{State: QuotaNoAccess}},
		{name: "zero is exhausted", value: 0, ok: true, want: Quota{State: QuotaExhausted}},
		{name: "positive is remaining", value: 3, ok: true, want: Quota{State: QuotaRemaining, Remaining: 3}},
		{name: "negative is unlimited", value: -1, ok: true, want: Quota{State: QuotaUnlimited, Remaining: UnlimitedQuota}},
		{name: "any negative is unlimited", value: -42, ok: true, want: Quota{State: QuotaUnlimited, Remaining: UnlimitedQuota}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, LookupQuota(tc.value, tc.ok))
		})
	}
}

func TestQuotaConsumeNeverGoesNegative(t *testing.T) {
	t.Parallel()

	quota := LookupQuota(3, true)
	for i := 0; i < 3; i++ {
		next, ok := quota.Consume()
		require.True(t, ok)
		quota = next
	}

	assert.Equal(t, QuotaExhausted, quota.State)
	assert.Equal(t, int64(0), quota.Stored())

	next, ok := quota.Consume()
	assert.False(t, ok)
	assert.Equal(t, quota, next)
}

func TestQuotaConsumeUnlimitedKeepsSentinel(t *testing.T) {
	t.Parallel()

	quota := LookupQuota(UnlimitedQuota, true)
	next, ok := quota.Consume()
	require.True(t, ok)
	assert.Equal(t, UnlimitedQuota, next.Stored())
	assert.Equal(t, "unlimited", next.String())
}

func TestParseQuota(t *testing.T) {
	t.Parallel()

	value, err := ParseQuota("unlimited")
	require.NoError(t, err)
	assert.Equal(t, UnlimitedQuota, value)

	value, err = ParseQuota(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), value)

	_, err = ParseQuota("-3")
	assert.ErrorContains(t, err, "must not be negative")

	_, err = ParseQuota("lots")
	assert.ErrorContains(t, err, "parse quota")
}

func TestSessionIsExpiredBoundary(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	session := Session{ID: "c1", LastActivity: created}

	assert.False(t, session.IsExpired(created.Add(24*time.Hour-time.Second), 24*time.Hour))
	assert.True(t, session.IsExpired(created.Add(24*time.Hour), 24*time.Hour))
	assert.True(t, session.IsExpired(created.Add(25*time.Hour), 24*time.Hour))
	assert.False(t, session.IsExpired(created.Add(48*time.Hour), 0))
}

func TestChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		maxLength int
		want      []string
	}{
		{name: "empty text yields nothing", text: "", maxLength: 5, want: nil},
		{name: "short text is one chunk", text: "hello", maxLength: 5, want: []string{"hello"}},
		{name: "fixed stride", text: "abcdefghij", maxLength: 3, want: []string{"abc", "def", "ghi", "j"}},
		{name: "exact multiple", text: "abcdef", maxLength: 2, want: []string{"ab", "cd", "ef"}},
		{name: "multibyte characters are not split", text: "привет", maxLength: 4, want: []string{"прив", "ет"}},
		{name: "non-positive size keeps text whole", text: "abc", maxLength: 0, want: []string{"abc"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Chunk(tc.text, tc.maxLength))
		})
	}
}

func TestChunkReassemblesAndRespectsLimit(t *testing.T) {
	t.Parallel()

	inputs := []string{
		strings.Repeat("a", 4001),
		strings.Repeat("ж", 2000),
		strings.Repeat("🙂x", 1500),
		"broken \xff utf8 \xfe bytes",
	}

	for _, text := range inputs {
		for _, size := range []int{1, 7, 2000} {
			chunks := Chunk(text, size)
			require.NotEmpty(t, chunks)
			assert.Equal(t, text, strings.Join(chunks, ""))
			for _, chunk := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(chunk), size)
				assert.NotEmpty(t, chunk)
			}
		}
	}
}

func TestParseSecretName(t *testing.T) {
	t.Parallel()

	name, err := ParseSecretName(" Discord ")
	require.NoError(t, err)
	assert.Equal(t, SecretDiscordToken, name)
	assert.Equal(t, "gptbridge/discord/bot_token", name.Key())

	name, err = ParseSecretName("openai")
	require.NoError(t, err)
	assert.Equal(t, "gptbridge/openai/api_key", name.Key())

	_, err = ParseSecretName("slack")
	assert.ErrorContains(t, err, "unknown secret")
}
