package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/kiln/config"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/loader"
	"github.com/plus3/kiln/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleResources(t *testing.T) {
	cfg, err := config.Load("kiln.toml")
	require.NoError(t, err)

	res, err := openResources(cfg.Game.Resources)
	require.NoError(t, err)

	state := ecs.NewState()
	ids, err := loader.New(res).Load(cfg.Game.Main, state)
	require.NoError(t, err)
	assert.Len(t, ids, 4)

	r := props.New(state, nil)
	hero := state.EntitiesByName("main/hero")
	require.Len(t, hero, 1)
	walking, err := r.PropertyValue(hero[0], "walking")
	require.NoError(t, err)
	assert.Equal(t, ecs.Boolean(true), walking)

	var textures []string
	for _, c := range state.VisibleNativeComponents("spriteDisplay") {
		if name, ok := r.String(c, "texture"); ok {
			textures = append(textures, name)
		}
	}
	images, err := resources.DecodeImages(res, textures)
	require.NoError(t, err)
	assert.NotEmpty(t, images)
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		t.Setenv("KILN_CONFIG", "kiln.toml")
		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "kiln sample", cfg.Window.Title)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		t.Setenv("KILN_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
		_, err := loadConfig()
		assert.Error(t, err)
	})
}

func TestOpenArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("main.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`[{"name": "hero"}]`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	res, err := openResources(path)
	require.NoError(t, err)

	state := ecs.NewState()
	_, err = loader.New(res).Load("main", state)
	require.NoError(t, err)
	assert.Len(t, state.EntitiesByName("main/hero"), 1)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			log, err := newLogger(config.LoggingConfig{Level: "nonsense", Format: format})
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(0), "unknown levels fall back to info")
		})
	}
}
