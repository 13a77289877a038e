// Package sound plays the short tone that marks the end of a countdown.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate    = beep.SampleRate(44100)
	toneFrequency = 880.0 // Hz
	toneLength    = 500 * time.Millisecond
	toneGain      = 0.5
	// gain falls to ~0.0001 over one second, as an exponential ramp
	decayPerSecond = 8.5
)

// Output is the audio sink. speaker satisfies it in production; tests swap it.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

// Beeper synthesizes the completion tone. The audio device is opened on first
// use; if that fails every later Play reports the same error.
type Beeper struct {
	output Output
	logger logrus.FieldLogger

	mu      sync.Mutex
	enabled bool
	volume  float64 // beep effects.Volume exponent, 0 is unchanged

	initOnce sync.Once
	initErr  error
}

// NewBeeper creates a Beeper writing to the system speaker
func NewBeeper(logger logrus.FieldLogger, enabled bool) *Beeper {
	return NewBeeperWithOutput(logger, enabled, speakerOutput{})
}

// NewBeeperWithOutput creates a Beeper writing to output
func NewBeeperWithOutput(logger logrus.FieldLogger, enabled bool, output Output) *Beeper {
	if logger == nil {
		panic("Beeper: logger cannot be nil")
	}
	if output == nil {
		panic("Beeper: output cannot be nil")
	}
	return &Beeper{output: output, logger: logger, enabled: enabled}
}

// SetEnabled switches sound on or off, e.g. after a config reload
func (b *Beeper) SetEnabled(enabled bool) {
	b.mu.Lock()
	b.enabled = enabled
	b.mu.Unlock()
}

// Enabled reports whether Play produces sound
func (b *Beeper) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// SetVolume sets the volume exponent (base 2) applied to the tone; 0 plays
// it unchanged, -1 at half amplitude.
func (b *Beeper) SetVolume(volume float64) {
	b.mu.Lock()
	b.volume = volume
	b.mu.Unlock()
}

// Play queues the tone and returns immediately.
func (b *Beeper) Play() error {
	b.mu.Lock()
	enabled, volume := b.enabled, b.volume
	b.mu.Unlock()
	if !enabled {
		return nil
	}

	b.initOnce.Do(func() {
		b.initErr = b.output.Init(sampleRate, sampleRate.N(time.Second/10))
		if b.initErr != nil {
			b.logger.Warnf("Beeper: audio unavailable: %v", b.initErr)
		}
	})
	if b.initErr != nil {
		return fmt.Errorf("sound: init speaker: %w", b.initErr)
	}

	b.output.Play(&effects.Volume{
		Streamer: Tone(sampleRate, toneFrequency, toneLength),
		Base:     2,
		Volume:   volume,
	})
	return nil
}

// Tone returns a decaying sine wave of the given frequency and length.
func Tone(sr beep.SampleRate, frequency float64, length time.Duration) beep.Streamer {
	total := sr.N(length)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			t := float64(pos) / float64(sr)
			v := toneGain * math.Exp(-decayPerSecond*t) * math.Sin(2*math.Pi*frequency*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// Silent is an alerter that never makes a sound
type Silent struct{}

func (Silent) Play() error { return nil }
