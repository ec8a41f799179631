package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/ezrec/tama/hal"
)

const (
	SAMPLE_RATE   = 44100
	BUZZER_VOLUME = 0.2
)

// buzzer is a square wave source for the piezo buzzer.
type buzzer struct {
	SampleRate int

	frequency atomic.Uint32 // In decihertz.
	playing   atomic.Bool
	phase     float64
	player    *oto.Player
}

// openBuzzer starts the audio device.
func openBuzzer(sampleRate int) (bz *buzzer, err error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready

	bz = &buzzer{SampleRate: sampleRate}
	bz.player = ctx.NewPlayer(bz)
	bz.player.Play()

	return
}

func (bz *buzzer) SetFrequency(decihertz uint32) {
	bz.frequency.Store(decihertz)
}

func (bz *buzzer) Play(enable bool) {
	bz.playing.Store(enable)
}

func (bz *buzzer) Close() (err error) {
	if bz.player == nil {
		return
	}
	err = bz.player.Close()
	bz.player = nil
	return
}

// Read fills p with little endian float32 samples.
func (bz *buzzer) Read(p []byte) (n int, err error) {
	hertz := float64(bz.frequency.Load()) / hal.DECIHERTZ
	playing := bz.playing.Load() && hertz > 0 && bz.SampleRate > 0

	for ; n+4 <= len(p); n += 4 {
		var sample float32
		if playing {
			bz.phase += hertz / float64(bz.SampleRate)
			bz.phase -= math.Floor(bz.phase)
			sample = BUZZER_VOLUME
			if bz.phase >= 0.5 {
				sample = -sample
			}
		}
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(sample))
	}

	return
}
