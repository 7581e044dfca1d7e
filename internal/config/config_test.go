package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsUsable(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "dummy", cfg.DefaultProver)
	assert.Equal(t, 5, cfg.TimeLimitSecs)
	assert.Len(t, cfg.Provers, 1)
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vernac.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_limit_secs: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TimeLimitSecs)
	assert.Equal(t, "dummy", cfg.DefaultProver)
}
