// Package version holds the build version, set with -ldflags "-X github.com/bnema/gptbridge/internal/version.Version=...".
package version

var Version = "dev"
