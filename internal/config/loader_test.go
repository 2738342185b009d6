package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "ollama", cfg.LLM.Backend)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.GenTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.True(t, cfg.Auth.AllowGuest)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INTERVIEW_ADDR", ":9090")
	t.Setenv("INTERVIEW_LLM__BACKEND", "mock")
	t.Setenv("INTERVIEW_STORAGE__BACKEND", "sqlite")
	t.Setenv("INTERVIEW_STORAGE__SQLITE_PATH", "/tmp/test.db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "mock", cfg.LLM.Backend)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.SQLitePath)
}

func TestLoadRejectsFirestoreWithoutProject(t *testing.T) {
	t.Setenv("INTERVIEW_STORAGE__BACKEND", "firestore")

	_, err := Load()

	require.ErrorIs(t, err, ErrInvalidConfig)
}
