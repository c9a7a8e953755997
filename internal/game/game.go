package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
	"github.com/iburimskiy/atom-randomizer/internal/config"
	"github.com/iburimskiy/atom-randomizer/internal/shader"
)

// Game hosts the atom animator inside an ebiten window: it ticks the animator once
// per Update, pushes the result into the material and renders the atom shader.
type Game struct {
	animator *atom.Animator
	material *shader.Material
	settings *config.SettingsManager
	shader   *ebiten.Shader

	player *player
	onsets *onsetDetector

	time       float64
	colorPhase float64
	last       atom.Output

	buttonHovered bool
	buttonPressed bool

	lastErr error
}

// New compiles the atom shader and wires the host around an initialized animator.
func New(animator *atom.Animator, material *shader.Material, settings *config.SettingsManager) (*Game, error) {
	s, err := ebiten.NewShader(shader.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile atom shader: %w", err)
	}
	return &Game{
		animator: animator,
		material: material,
		settings: settings,
		shader:   s,
		player:   &player{},
		onsets:   newOnsetDetector(config.OnsetRatio, config.OnsetFloor, config.SmoothingFactor, config.OnsetCooldown),
	}, nil
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if g.handleInput() {
		g.saveSettings()
		return ebiten.Termination
	}

	if g.player.tap != nil && g.onsets.observe(g.player.tap.rms(config.OnsetWindow), time.Now()) {
		g.animator.RequestRandomize()
	}
	if g.player.advance(time.Duration(dt * float64(time.Second))) {
		g.onsets.reset()
	}

	g.last = g.animator.Tick(dt)
	g.material.Apply(g.last)

	g.time += dt
	g.colorPhase += config.ColorShiftSpeed * dt
	return nil
}

// handleInput applies key and mouse bindings and reports whether the app should quit.
func (g *Game) handleInput() bool {
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.openAudio()
		}
		g.buttonPressed = false
	}

	a := g.animator
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.RequestRandomize()
		log.Printf("[Game] Randomizing...")
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		a.SetAtomFieldsEnabled(!a.AtomFieldsEnabled())
		log.Printf("[Game] Toggled Randomizer (atom fields %v)", a.AtomFieldsEnabled())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.SetStressTest(!a.StressTest())
		log.Printf("[Game] Stress test %v", a.StressTest())
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		a.SetRandomizeForeground(!a.Colors().RandomizeForeground)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		a.SetRandomizeBackground(!a.Colors().RandomizeBackground)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.stepRandomFactor(config.RandomFactorStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.stepRandomFactor(-config.RandomFactorStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.pickChannelColor(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pickChannelColor(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openAudio()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.player.togglePause()
	}
	return false
}

// stepRandomFactor is inert while stress test is on, as in the inspector.
func (g *Game) stepRandomFactor(delta float64) {
	if g.animator.StressTest() {
		return
	}
	g.animator.SetRandomFactor(g.animator.RandomFactor() + delta)
}

// pickChannelColor only edits a channel the renderer is not randomizing.
func (g *Game) pickChannelColor(foreground bool) {
	colors := g.animator.Colors()
	title, initial, randomized := "Background Color", colors.Background, colors.RandomizeBackground
	if foreground {
		title, initial, randomized = "Foreground Color", colors.Foreground, colors.RandomizeForeground
	}
	if randomized {
		return
	}

	c, ok, err := pickColor(title, initial)
	if err != nil {
		g.lastErr = err
		return
	}
	if !ok {
		return
	}
	if foreground {
		g.animator.SetForegroundColor(c)
	} else {
		g.animator.SetBackgroundColor(c)
	}
}

func (g *Game) openAudio() {
	path, err := pickAudioFile()
	if err != nil {
		g.lastErr = err
		return
	}
	if path == "" {
		return
	}
	if err := g.player.loadAndPlay(path); err != nil {
		g.lastErr = err
		return
	}
	g.onsets.reset()
}

func (g *Game) saveSettings() {
	g.settings.Settings().Capture(g.animator)
	if err := g.settings.Save(); err != nil {
		log.Printf("[Game] Warning: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cycleFg := cycleColor(g.colorPhase, config.CycleSaturation, config.CycleValue)
	cycleBg := cycleColor(g.colorPhase+0.5, config.CycleSaturation, config.CycleValue*0.3)

	screen.DrawRectShader(w, h, g.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: g.material.Uniforms(g.time, w, h, cycleFg, cycleBg),
	})

	g.drawButton(screen)
	g.drawGauges(screen)

	a := g.animator
	status := fmt.Sprintf("%s | hold %.1f/%.0f | factor %.1f | stress %v | fields %v",
		g.last.Phase, g.last.HoldTime, atom.HoldDuration, a.RandomFactor(), a.StressTest(), a.AtomFieldsEnabled())
	if g.player.loaded() {
		status += fmt.Sprintf(" | %s / %s", formatDuration(g.player.position), formatDuration(g.player.duration))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, "Space randomize  Enter fields  S stress  F/B random colors  C/V pick  Up/Down factor  O audio  Q quit", 12, h-20)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	switch {
	case g.buttonPressed:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.buttonHovered:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	text := "Open Audio"
	textX := config.ButtonX + (config.ButtonWidth-len(text)*6)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

// drawGauges shows each parameter against its bound, with a tick at the target.
func (g *Game) drawGauges(screen *ebiten.Image) {
	for i, f := range atom.Fields {
		b := f.BoundFor(g.animator.StressTest())
		y := float32(config.GaugeY + i*config.GaugeGap)
		cur := clamp01((f.Value(g.last.Parameters) - b.Floor) / (b.Max - b.Floor))
		tgt := clamp01((f.Value(g.last.Target) - b.Floor) / (b.Max - b.Floor))

		vector.DrawFilledRect(screen, config.GaugeX, y, config.GaugeWidth, config.GaugeHeight, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
		vector.DrawFilledRect(screen, config.GaugeX, y, float32(cur*config.GaugeWidth), config.GaugeHeight, color.RGBA{R: 120, G: 200, B: 255, A: 220}, false)
		tx := config.GaugeX + float32(tgt*config.GaugeWidth)
		vector.StrokeLine(screen, tx, y-2, tx, y+config.GaugeHeight+2, 2, color.RGBA{R: 255, G: 220, B: 120, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.2f", f.Name, f.Value(g.last.Parameters)), config.GaugeX+config.GaugeWidth+8, int(y)-4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
