package resources_test

import (
	"archive/zip"
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/plus3/kiln/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSLoader(t *testing.T) {
	loader := resources.NewFSLoader(fstest.MapFS{
		"main.json":          {Data: []byte(`[]`)},
		"levels/intro.yaml":  {Data: []byte(`- name: a`)},
		"levels/intro/x.txt": {Data: []byte(`nested`)},
		"textures/hero.png":  {Data: []byte(`png`)},
		"raw":                {Data: []byte(`exact`)},
	})

	tests := []struct {
		name string
		want string
	}{
		{"main", `[]`},
		{"levels/intro", `- name: a`},
		{"textures/hero.png", `png`},
		{"raw", `exact`},
		{"/main", `[]`},
		{"levels/intro/x", `nested`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := resources.ReadAll(loader, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}

	t.Run("not found", func(t *testing.T) {
		for _, name := range []string{"missing", "levels", "", "textures/villain"} {
			_, err := loader.Load(name)
			assert.ErrorIs(t, err, resources.ErrNotFound, name)
			assert.True(t, resources.IsNotFound(err))
		}
	})
}

func TestArchiveLoader(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"main.json":        `[{"name": "hero"}]`,
		"sprites/hero.png": `png`,
	} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	loader, err := resources.NewArchiveLoader(buf.Bytes())
	require.NoError(t, err)

	data, err := resources.ReadAll(loader, "main")
	require.NoError(t, err)
	assert.Equal(t, `[{"name": "hero"}]`, string(data))

	data, err = resources.ReadAll(loader, "sprites/hero")
	require.NoError(t, err)
	assert.Equal(t, `png`, string(data))

	_, err = loader.Load("sprites/villain")
	assert.ErrorIs(t, err, resources.ErrNotFound)

	_, err = resources.NewArchiveLoader([]byte("not a zip"))
	assert.Error(t, err)
}
