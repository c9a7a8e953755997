package game

import "time"

// onsetDetector flags sudden rises in loudness against a smoothed running average.
type onsetDetector struct {
	ratio     float64
	floor     float64
	smoothing float64
	cooldown  time.Duration

	average  float64
	lastFire time.Time
}

func newOnsetDetector(ratio, floor, smoothing float64, cooldown time.Duration) *onsetDetector {
	return &onsetDetector{
		ratio:     ratio,
		floor:     floor,
		smoothing: smoothing,
		cooldown:  cooldown,
	}
}

// observe feeds one loudness sample taken at now and reports whether it is an onset.
func (d *onsetDetector) observe(level float64, now time.Time) bool {
	fired := level > d.floor &&
		level > d.average*d.ratio &&
		now.Sub(d.lastFire) >= d.cooldown
	if fired {
		d.lastFire = now
	}
	d.average = d.smoothing*d.average + (1-d.smoothing)*level
	return fired
}

func (d *onsetDetector) reset() {
	d.average = 0
	d.lastFire = time.Time{}
}
