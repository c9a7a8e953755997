package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
	"github.com/iburimskiy/atom-randomizer/internal/shader"
)

const (
	labelWidth = 20
	minGauge   = 10
)

// scope drives an animator at a fixed rate and draws its parameters as terminal gauges.
type scope struct {
	screen   tcell.Screen
	animator *atom.Animator
	material *shader.Material

	last  atom.Output
	ticks int64
}

func newScope(screen tcell.Screen, animator *atom.Animator, material *shader.Material) *scope {
	return &scope{screen: screen, animator: animator, material: material}
}

func (s *scope) tick(dt float64) {
	s.last = s.animator.Tick(dt)
	s.material.Apply(s.last)
	s.ticks++
}

// handleKey applies a key binding and reports whether the monitor should exit.
func (s *scope) handleKey(ev *tcell.EventKey) bool {
	a := s.animator
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		a.SetAtomFieldsEnabled(!a.AtomFieldsEnabled())
		log.Printf("[Scope] Toggled Randomizer (atom fields %v)", a.AtomFieldsEnabled())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			a.RequestRandomize()
			log.Printf("[Scope] Randomizing...")
		case 's':
			a.SetStressTest(!a.StressTest())
		case 'f':
			a.SetRandomizeForeground(!a.Colors().RandomizeForeground)
		case 'b':
			a.SetRandomizeBackground(!a.Colors().RandomizeBackground)
		case '+', '=':
			if !a.StressTest() {
				a.SetRandomFactor(a.RandomFactor() + 0.1)
			}
		case '-':
			if !a.StressTest() {
				a.SetRandomFactor(a.RandomFactor() - 0.1)
			}
		}
	}
	return false
}

// gaugeFill returns how many of width cells represent v within b.
func gaugeFill(v float64, b atom.Bound, width int) int {
	if width <= 0 || b.Max <= b.Floor {
		return 0
	}
	frac := (v - b.Floor) / (b.Max - b.Floor)
	frac = max(0, min(1, frac))
	return int(frac*float64(width) + 0.5)
}

func (s *scope) draw() {
	s.screen.Clear()
	w, _ := s.screen.Size()
	a := s.animator

	header := fmt.Sprintf("%-13s hold %4.1f/%.0f  factor %.1f  stress %-5v  fields %-5v  ticks %d",
		s.last.Phase, s.last.HoldTime, atom.HoldDuration, a.RandomFactor(), a.StressTest(), a.AtomFieldsEnabled(), s.ticks)
	s.print(0, 0, header, tcell.StyleDefault.Bold(true))

	fg := s.material.GetColor(shader.ForegroundColor)
	bar := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
	mark := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	gaugeWidth := max(w-labelWidth-12, minGauge)
	for i, f := range atom.Fields {
		y := 2 + i
		b := f.BoundFor(a.StressTest())
		cur := f.Value(s.material.Parameters())
		s.print(0, y, f.Name, tcell.StyleDefault)

		filled := gaugeFill(cur, b, gaugeWidth)
		target := gaugeFill(f.Value(s.last.Target), b, gaugeWidth)
		for x := 0; x < gaugeWidth; x++ {
			r, style := '·', tcell.StyleDefault.Dim(true)
			if x < filled {
				r, style = '█', bar
			}
			if x == min(target, gaugeWidth-1) {
				r, style = '|', mark
			}
			s.screen.SetContent(labelWidth+x, y, r, nil, style)
		}
		s.print(labelWidth+gaugeWidth+1, y, fmt.Sprintf("%9.2f", cur), tcell.StyleDefault)
	}

	colors := s.last.Colors
	s.print(0, 3+len(atom.Fields), fmt.Sprintf("fg %v random %v   bg %v random %v",
		colors.Foreground, colors.RandomizeForeground, colors.Background, colors.RandomizeBackground), tcell.StyleDefault)
	s.print(0, 5+len(atom.Fields), "space randomize  enter fields  s stress  f/b random colors  +/- factor  q quit", tcell.StyleDefault.Dim(true))
	s.screen.Show()
}

func (s *scope) print(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
