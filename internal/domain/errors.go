package domain

import "errors"

var (
	ErrAccessDenied      = errors.New("access denied")
	ErrQuotaExhausted    = errors.New("quota exhausted")
	ErrUpstreamTransient = errors.New("upstream transient failure")
	ErrUpstreamFatal     = errors.New("upstream fatal failure")
	ErrMalformedHistory  = errors.New("malformed conversation history")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSecretNotFound    = errors.New("secret not found")
)
