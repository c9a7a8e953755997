package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
)

// ErrInvalidColor is returned when a color string is not #RRGGBB or #RRGGBBAA.
var ErrInvalidColor = errors.New("invalid color")

// Settings are the user-facing randomizer options kept between runs.
type Settings struct {
	ForegroundColor     string  `yaml:"foregroundColor"`
	BackgroundColor     string  `yaml:"backgroundColor"`
	RandomizeForeground bool    `yaml:"randomizeForeground"`
	RandomizeBackground bool    `yaml:"randomizeBackground"`
	RandomizeAtomFields bool    `yaml:"randomizeAtomFields"`
	StressTest          bool    `yaml:"stressTest"`
	RandomFactor        float64 `yaml:"randomFactor"`
	// MaterialPath optionally overrides the built-in material values.
	MaterialPath string `yaml:"materialPath"`
}

// DefaultSettings matches the stock component configuration.
func DefaultSettings() *Settings {
	return &Settings{
		ForegroundColor:     "#ff0000ff",
		BackgroundColor:     "#000000ff",
		RandomizeForeground: true,
		RandomizeBackground: false,
		RandomizeAtomFields: true,
		StressTest:          false,
		RandomFactor:        atom.DefaultRandomFactor,
	}
}

// Colors converts the settings into a color pair. Unparseable colors fall back to the defaults.
func (s *Settings) Colors() atom.ColorPair {
	pair := atom.DefaultColors()
	if c, err := ParseColor(s.ForegroundColor); err == nil {
		pair.Foreground = c
	}
	if c, err := ParseColor(s.BackgroundColor); err == nil {
		pair.Background = c
	}
	pair.RandomizeForeground = s.RandomizeForeground
	pair.RandomizeBackground = s.RandomizeBackground
	return pair
}

// Flags converts the settings into animator flags.
func (s *Settings) Flags() atom.Flags {
	return atom.Flags{
		AtomFields:   s.RandomizeAtomFields,
		StressTest:   s.StressTest,
		RandomFactor: atom.ClampRandomFactor(s.RandomFactor),
	}
}

// Capture copies the animator's current configuration into s.
func (s *Settings) Capture(a *atom.Animator) {
	colors := a.Colors()
	s.ForegroundColor = FormatColor(colors.Foreground)
	s.BackgroundColor = FormatColor(colors.Background)
	s.RandomizeForeground = colors.RandomizeForeground
	s.RandomizeBackground = colors.RandomizeBackground
	s.RandomizeAtomFields = a.AtomFieldsEnabled()
	s.StressTest = a.StressTest()
	s.RandomFactor = a.RandomFactor()
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// SettingsManager loads and saves Settings through a gdata store.
type SettingsManager struct {
	gdataManager *gdata.Manager // nil means in-memory only
	settings     *Settings
}

const (
	settingsObject   = "settings"
	settingsProperty = "randomizer"
)

// NewSettingsManager creates a manager and loads saved settings. A load failure is
// logged and leaves the defaults in place.
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// OpenSettings opens the per-user gdata store and returns a manager over it. When the
// store cannot be opened the manager keeps settings in memory.
func OpenSettings() *SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: Failed to open data store: %v (settings will not persist)", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(m)
}

func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.RandomFactor = atom.ClampRandomFactor(loaded.RandomFactor)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}
