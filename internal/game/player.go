package game

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/atom-randomizer/internal/config"
)

var errUnsupportedAudio = errors.New("unsupported file type")

// player plays one soundtrack at a time and exposes its tap for onset detection.
type player struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *audioTap

	duration time.Duration
	position time.Duration
	paused   bool
	initDone bool
}

func (p *player) loaded() bool { return p.streamer != nil }

func decodeAudio(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, errUnsupportedAudio
}

func (p *player) loadAndPlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decodeAudio(path, f)
	if err != nil {
		_ = f.Close()
		return err
	}
	log.Printf("[Player] Loaded %s (%d Hz)", path, format.SampleRate)

	// streamer -> tap -> ctrl
	tap := newAudioTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
	default:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	p.closeCurrent()

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.paused = false
	p.duration = format.SampleRate.D(streamer.Len())
	p.position = 0

	speaker.Play(ctrl)
	return nil
}

func (p *player) togglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// advance moves the displayed position by one frame and reports whether the track ended.
func (p *player) advance(dt time.Duration) bool {
	if !p.loaded() || p.paused {
		return false
	}
	p.position += dt
	if p.position < p.duration {
		return false
	}
	p.stop()
	return true
}

func (p *player) stop() {
	if !p.loaded() {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	p.closeCurrent()
}

func (p *player) closeCurrent() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.duration = 0
	p.position = 0
}
