package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoheat/internal/heat"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
geometry:
  path: regions.geojson
  name_property: iso
frames:
  path: metrics.prom
  format: prometheus
  group_label: tenant
style:
  alpha: 0.5
  include_unmatched: true
group: edge
`
	cfg := loadFromString(t, yaml)

	assert.Equal(t, "regions.geojson", cfg.Geometry.Path)
	assert.Equal(t, "iso", cfg.Geometry.NameProperty)
	assert.Equal(t, "prometheus", cfg.Frames.Format)
	assert.Equal(t, "edge", cfg.Group)

	opts := cfg.Frames.SourceOptions()
	assert.Equal(t, "tenant", opts.GroupLabel)
	assert.Equal(t, "region", opts.RegionLabel, "default label kept")

	assert.Equal(t, 0.5, cfg.Style.Alpha)
	assert.True(t, cfg.Style.IncludeUnmatched)
	assert.Equal(t, 120.0, cfg.Style.HueLow, "default hue kept")
	assert.Equal(t, 2, cfg.Style.ZIndex)
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "geometry:\n  path: regions.kml\n")
	assert.Equal(t, heat.DefaultStyle(), cfg.Style)
	assert.Equal(t, "name", cfg.Geometry.NameProperty)
	assert.Equal(t, "", cfg.Group)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing geometry path": "frames:\n  path: x.json\n",
		"unknown format":        "geometry:\n  path: a.geojson\nframes:\n  format: xml\n",
		"alpha out of range":    "geometry:\n  path: a.geojson\nstyle:\n  alpha: 3\n",
		"not yaml":              "geometry: [",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 8)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, func(p string) { changed <- p }, path) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"g r","values":[1]}]`), 0o644))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}
	cancel()
	assert.NoError(t, <-done)
}

func loadFromString(t *testing.T, yaml string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geoheat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	return cfg
}
