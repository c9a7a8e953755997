package game

import (
	"errors"
	"image/color"

	"github.com/ncruces/zenity"
)

// pickColor asks the user for a color. ok is false when the dialog was cancelled.
func pickColor(title string, initial color.RGBA) (c color.RGBA, ok bool, err error) {
	picked, err := zenity.SelectColor(
		zenity.Title(title),
		zenity.Color(initial),
		zenity.ShowPalette(),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return color.RGBA{}, false, nil
		}
		return color.RGBA{}, false, err
	}
	return toRGBA(picked), true, nil
}

// pickAudioFile asks for a soundtrack. An empty path means the dialog was cancelled.
func pickAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
