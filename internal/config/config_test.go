package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebtf/relic/pkg/dedupe"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesEngineBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relic.yaml")
	content := `
listen: "0.0.0.0:9000"
db_path: "/var/lib/relic/relic.db"
engine:
  cluster_threshold: 0.7
  suggestion_threshold: 0.55
  missing_field_policy: penalize
  weights:
    title: 5
    entities: 4
    collection: 2
    category: 2
    description: 3
    keywords: 2
    gis_zone: 1.5
    gps: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "/var/lib/relic/relic.db", cfg.DBPath)

	opts := cfg.EngineOptions()
	assert.InDelta(t, 0.7, opts.ClusterThreshold, 0.0001)
	assert.InDelta(t, 0.55, opts.SuggestionThreshold, 0.0001)
	assert.Equal(t, dedupe.PolicyPenalize, opts.Policy)
	assert.InDelta(t, 5.0, opts.Weights.Title, 0.0001)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEngineOptions_UnknownPolicyFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Engine.MissingFieldPolicy = "strict"

	assert.Equal(t, dedupe.PolicyIgnore, cfg.EngineOptions().Policy)
}
