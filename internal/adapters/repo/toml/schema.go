package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Streams []streamSchema `toml:"streams"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported streams schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// Amounts are decimal strings; times are epoch milliseconds as produced by
// the stream indexer.
type streamSchema struct {
	ID              string `toml:"id"`
	Sender          string `toml:"sender"`
	Recipient       string `toml:"recipient"`
	TokenSymbol     string `toml:"token_symbol"`
	TotalAmount     string `toml:"total_amount"`
	WithdrawnAmount string `toml:"withdrawn_amount,omitempty"`
	StartTimeMs     int64  `toml:"start_time_ms"`
	EndTimeMs       int64  `toml:"end_time_ms"`
	Status          string `toml:"status"`
}
