package domain

import (
	"fmt"
	"strings"
)

// SecretName identifies one of the credentials the bridge needs at runtime.
type SecretName string

const (
	SecretDiscordToken SecretName = "discord"
	SecretOpenAIKey    SecretName = "openai"
)

var secretKeys = map[SecretName]string{
	SecretDiscordToken: "gptbridge/discord/bot_token",
	SecretOpenAIKey:    "gptbridge/openai/api_key",
}

func ParseSecretName(raw string) (SecretName, error) {
	name := SecretName(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := secretKeys[name]; !ok {
		return "", fmt.Errorf("unknown secret %q (want discord or openai)", raw)
	}

	return name, nil
}

// Key is the secret store path for the credential.
func (n SecretName) Key() string {
	return secretKeys[n]
}
