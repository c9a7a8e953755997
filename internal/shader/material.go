package shader

import (
	_ "embed"
	"fmt"
	"image/color"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
)

// Source is the Kage program that renders the atom effect.
//
//go:embed atom.kage
var Source []byte

// Parameter block slot names shared by the material and the shader uniforms.
const (
	ForegroundColor       = "ForegroundColor"
	BackgroundColor       = "BackgroundColor"
	RandomForegroundColor = "RandomForegroundColor"
	RandomBackgroundColor = "RandomBackgroundColor"
	NucleusAttraction     = "NucleusAttraction"
	NucleusRepulsion      = "NucleusRepulsion"
	NucleusSize           = "NucleusSize"
	ElectronCount         = "ElectronCount"
	ElectronSize          = "ElectronSize"
	ElectronSpeed         = "ElectronSpeed"
	RadialModifier        = "RadialModifier"
)

// Material is the GPU-facing parameter block the atom shader reads from.
type Material struct {
	floats map[string]float64
	colors map[string]color.RGBA

	// Writes counts SetFloat/SetColor calls, so callers can see what a frame pushed.
	Writes int
}

// NewMaterial creates a material holding params and colors.
func NewMaterial(params atom.ParameterSet, colors atom.ColorPair) *Material {
	m := &Material{
		floats: make(map[string]float64),
		colors: make(map[string]color.RGBA),
	}
	m.setParameters(params)
	m.setColors(colors)
	m.Writes = 0
	return m
}

func (m *Material) SetFloat(name string, v float64) {
	m.floats[name] = v
	m.Writes++
}

// GetFloat returns the named value, or 0 when unset.
func (m *Material) GetFloat(name string) float64 {
	return m.floats[name]
}

func (m *Material) SetColor(name string, c color.RGBA) {
	m.colors[name] = c
	m.Writes++
}

func (m *Material) GetColor(name string) color.RGBA {
	return m.colors[name]
}

// Parameters reads the seven numeric slots back as a parameter set.
func (m *Material) Parameters() atom.ParameterSet {
	var p atom.ParameterSet
	for _, f := range atom.Fields {
		f.Set(&p, m.floats[f.Name])
	}
	return p
}

// Apply pushes one animator output. Numeric slots are written only while the
// animator is interpolating; colors and toggles only when they changed.
func (m *Material) Apply(out atom.Output) {
	if out.ColorsChanged {
		m.setColors(out.Colors)
	}
	if out.Phase == atom.PhaseInterpolating {
		m.setParameters(out.Parameters)
	}
}

func (m *Material) setParameters(p atom.ParameterSet) {
	for _, f := range atom.Fields {
		m.SetFloat(f.Name, f.Value(p))
	}
}

func (m *Material) setColors(c atom.ColorPair) {
	m.SetColor(ForegroundColor, c.Foreground)
	m.SetColor(BackgroundColor, c.Background)
	m.SetFloat(RandomForegroundColor, boolToFloat(c.RandomizeForeground))
	m.SetFloat(RandomBackgroundColor, boolToFloat(c.RandomizeBackground))
}

// Uniforms builds the ebiten uniform map. cycleFg and cycleBg are the renderer's
// hue-cycling colors, blended in where the random flags are set.
func (m *Material) Uniforms(time float64, width, height int, cycleFg, cycleBg color.RGBA) map[string]any {
	u := map[string]any{
		"Time":            float32(time),
		"Resolution":      []float32{float32(width), float32(height)},
		"CycleForeground": colorVec(cycleFg),
		"CycleBackground": colorVec(cycleBg),
	}
	for name, v := range m.floats {
		u[name] = float32(v)
	}
	for name, c := range m.colors {
		u[name] = colorVec(c)
	}
	return u
}

func (m *Material) String() string {
	p := m.Parameters()
	return fmt.Sprintf("attr=%.2f repl=%.2f size=%.1f count=%.0f esize=%.2f speed=%.2f radial=%.1f",
		p.NucleusAttraction, p.NucleusRepulsion, p.NucleusSize, p.ElectronCount,
		p.ElectronSize, p.ElectronSpeed, p.RadialModifier)
}

// colorVec converts 8-bit channels to a normalized vec4.
func colorVec(c color.RGBA) []float32 {
	return []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
