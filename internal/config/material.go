package config

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
)

//go:embed material.yaml
var defaultMaterial []byte

// MaterialFile is the on-disk form of the atom material's numeric defaults.
type MaterialFile struct {
	Version    string            `yaml:"version"`
	Parameters atom.ParameterSet `yaml:"parameters"`
}

// DefaultMaterial returns the built-in material values.
func DefaultMaterial() (atom.ParameterSet, error) {
	return ParseMaterial(defaultMaterial)
}

// ParseMaterial decodes a material YAML document. Keys left out keep the built-in values.
func ParseMaterial(data []byte) (atom.ParameterSet, error) {
	file := MaterialFile{}
	if err := yaml.Unmarshal(defaultMaterial, &file); err != nil {
		return atom.ParameterSet{}, fmt.Errorf("failed to parse built-in material: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return atom.ParameterSet{}, fmt.Errorf("failed to parse material: %w", err)
	}
	return file.Parameters, nil
}

// LoadMaterial reads material values from path, falling back to the built-in
// values when path is empty.
func LoadMaterial(path string) (atom.ParameterSet, error) {
	if path == "" {
		return DefaultMaterial()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[MaterialConfig] Warning: Failed to read material file '%s': %v", path, err)
		return atom.ParameterSet{}, err
	}

	params, err := ParseMaterial(data)
	if err != nil {
		log.Printf("[MaterialConfig] Error: %v", err)
		return atom.ParameterSet{}, err
	}

	log.Printf("[MaterialConfig] Loaded material from %s", path)
	return params, nil
}
