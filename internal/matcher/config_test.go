package matcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Compiles(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	buyer, _ := m.Infer(article("Netflix renews flagship drama", "details follow"))
	assert.Equal(t, "Netflix", buyer)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buyers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
buyers:
  - buyer: HGTV
    terms: [hgtv, home & garden]
  - buyer: Netflix
    terms: [netflix]
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Buyers, 2)
	assert.Equal(t, "HGTV", cfg.Buyers[0].Buyer)
	assert.Equal(t, []string{"hgtv", "home & garden"}, cfg.Buyers[0].Terms)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("buyers: []\n"), 0o644))
	_, err = LoadConfig(empty)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("buyers: {not a list\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}
