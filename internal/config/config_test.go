package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/ingest", cfg.Ingest.DataDir)
	assert.Equal(t, "coverage-cli", cfg.Ingest.Source)
	assert.Equal(t, "sqlite", cfg.Runs.Driver)
	assert.Equal(t, "data/runs.db", cfg.Runs.SQLitePath)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.ClassifierModel)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.SummarizerModel)
	assert.EqualValues(t, 1024, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 50, cfg.Anthropic.RequestsPerMinute)
	assert.InDelta(t, 0.5, cfg.Routing.ConfidenceFloor, 0.001)
	assert.False(t, cfg.Assembler.Strict)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrentArticles)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/reports", cfg.Report.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("COVERAGE_LOG_LEVEL", "debug")
	t.Setenv("COVERAGE_INGEST_DATA_DIR", "/tmp/records")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/records", cfg.Ingest.DataDir)
}

func TestAssemblerConfig_UnprefixedExecNotes(t *testing.T) {
	tests := []struct {
		mode   string
		expect bool
	}{
		{"prefixed", false},
		{"", false},
		{"unprefixed", true},
		{"Unprefixed", true},
		{"unprefixed_followon", true},
		{"something_else", false},
	}

	for _, tt := range tests {
		c := AssemblerConfig{ExecChangeNoteMode: tt.mode}
		assert.Equal(t, tt.expect, c.UnprefixedExecNotes(), tt.mode)
	}
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
