package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result and that earlier sources win.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: "first:1111"}},
		&StructuredConfig{
			Server:  Server{HTTPAddress: "second:2222", RequestTimeout: 15 * time.Second},
			Storage: Storage{DB: DB{DSN: "postgres://example/db"}},
		},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "first:1111", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "postgres://example/db", cfg.Storage.DB.DSN)
}

// TestBuild_DefaultsApplied verifies that withDefaults fills every field not
// provided by a higher-priority source.
func TestBuild_DefaultsApplied(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultConnectTimeout, cfg.Storage.DB.ConnectTimeout)
	assert.Equal(t, defaultQueryTimeout, cfg.Storage.DB.QueryTimeout)
	assert.Equal(t, defaultNamedMaxAge, cfg.Cache.NamedMaxAge)
	assert.Equal(t, defaultDefaultMaxAge, cfg.Cache.DefaultMaxAge)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_MergesFileValues verifies that a JSON config referenced by an
// earlier source is parsed and merged as a lower-priority source.
func TestWithJSON_MergesFileValues(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{
			"http_address":    "json:9999",
			"request_timeout": "45s",
		},
		"storage": map[string]any{
			"sqlite": map[string]any{"path": "/tmp/configs.db"},
		},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Server:       Server{HTTPAddress: "env:1234"},
		JSONFilePath: path,
	})

	cfg, err := b.withJSON().withDefaults().build()
	require.NoError(t, err)

	// env source wins over JSON for the address; JSON supplies the rest
	assert.Equal(t, "env:1234", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/configs.db", cfg.Storage.SQLite.Path)
}

// TestWithJSON_InvalidFile verifies that an unreadable JSON file surfaces as
// a builder error.
func TestWithJSON_InvalidFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	cfg, err := b.withJSON().build()
	assert.Nil(t, cfg)
	require.Error(t, err)
}

// ── validate ──────────────────────────────────────────────────────────────────

// TestValidate_AmbiguousStorage verifies that configuring both durable
// backends at once is rejected.
func TestValidate_AmbiguousStorage(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{
			DB:     DB{DSN: "postgres://example/db"},
			SQLite: SQLite{Path: "/tmp/configs.db"},
		},
	})

	_, err := b.withDefaults().build()
	require.ErrorIs(t, err, ErrAmbiguousStorageConfigs)
}
