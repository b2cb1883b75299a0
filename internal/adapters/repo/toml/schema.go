package toml

import (
	"fmt"
	"time"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int                  `toml:"version"`
	Quotas   map[string]int64     `toml:"quotas"`
	Sessions map[string]time.Time `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Quotas == nil {
		s.Quotas = map[string]int64{}
	}
	if s.Sessions == nil {
		s.Sessions = map[string]time.Time{}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
