package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Server.Timezone)
	assert.True(t, cfg.Workflow.EnforceTransitions)
	assert.Equal(t, "PROJ", cfg.Workflow.DefaultProjectPrefix)
	assert.Equal(t, 7, cfg.Workflow.StaleAfterDays)
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprintly.yaml")
	content := []byte(`
server:
  port: 9090
database:
  driver: sqlite
  sqlite_path: /tmp/sprintly-test.db
workflow:
  enforce_transitions: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("SPRINTLY_WORKFLOW_ENFORCE_TRANSITIONS", "false")

	cfg, err := Load("release", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/sprintly-test.db", cfg.Database.GetDSN())
	assert.False(t, cfg.Workflow.EnforceTransitions)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load("", path)
	assert.Error(t, err)
}
