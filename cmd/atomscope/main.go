// Command atomscope runs the atom parameter animator headlessly and shows the
// parameter stream in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/atom-randomizer/internal/atom"
	"github.com/iburimskiy/atom-randomizer/internal/config"
	"github.com/iburimskiy/atom-randomizer/internal/shader"
)

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for parameter generation")
	rate := flag.Int("rate", 60, "ticks per second")
	stress := flag.Bool("stress", false, "start with stress test enabled")
	factor := flag.Float64("factor", atom.DefaultRandomFactor, "random factor in [0.1, 1.0]")
	materialPath := flag.String("material", "", "material YAML file (built-in values when empty)")
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("[Scope] %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	params, err := config.LoadMaterial(*materialPath)
	if err != nil {
		log.Fatalf("[Scope] %v", err)
	}

	colors := atom.DefaultColors()
	material := shader.NewMaterial(params, colors)
	animator := atom.NewAnimator(atom.NewSource(*seed))
	flags := atom.Flags{AtomFields: true, StressTest: *stress, RandomFactor: *factor}
	if err := animator.Initialize(material.Parameters(), colors, flags); err != nil {
		log.Fatalf("[Scope] %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("[Scope] %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("[Scope] %v", err)
	}
	defer screen.Fini()

	s := newScope(screen, animator, material)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys := make(chan *tcell.EventKey, 16)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				keys <- ev
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	run(ctx, s, keys, time.Second/time.Duration(max(*rate, 1)), cancel)
}

// run ticks the scope at interval until the context is cancelled. Keys are handled
// on the same goroutine as ticks, so the animator only ever sees one caller.
func run(ctx context.Context, s *scope, keys <-chan *tcell.EventKey, interval time.Duration, quit func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-keys:
			if s.handleKey(ev) {
				quit()
			}
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.tick(dt)
			s.draw()
		}
	}
}
