package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMaterial(t *testing.T) {
	p, err := DefaultMaterial()
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.NucleusAttraction)
	assert.Equal(t, 6.0, p.ElectronSpeed)
	assert.True(t, p.InBounds(false))
}

func TestParseMaterialPartialOverride(t *testing.T) {
	p, err := ParseMaterial([]byte("parameters:\n  electronSpeed: 12.5\n"))
	require.NoError(t, err)

	assert.Equal(t, 12.5, p.ElectronSpeed)
	assert.Equal(t, 90.0, p.RadialModifier)
}

func TestParseMaterialInvalid(t *testing.T) {
	_, err := ParseMaterial([]byte("parameters: [1, 2"))
	assert.Error(t, err)
}

func TestLoadMaterial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "material.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parameters:\n  electronCount: 100\n"), 0o644))

	p, err := LoadMaterial(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.ElectronCount)

	_, err = LoadMaterial(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := LoadMaterial("")
	require.NoError(t, err)
	assert.Equal(t, 24.0, def.ElectronCount)
}
