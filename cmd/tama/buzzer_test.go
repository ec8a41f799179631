package main

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplesOf(p []byte) (samples []float32) {
	for n := 0; n+4 <= len(p); n += 4 {
		samples = append(samples, math.Float32frombits(binary.LittleEndian.Uint32(p[n:])))
	}
	return
}

func TestBuzzerSilent(t *testing.T) {
	assert := assert.New(t)

	bz := &buzzer{SampleRate: 8000}
	bz.SetFrequency(10000)

	p := make([]byte, 64)
	n, err := bz.Read(p)
	assert.NoError(err)
	assert.Equal(64, n)
	for _, sample := range samplesOf(p) {
		assert.Equal(float32(0), sample)
	}
}

func TestBuzzerSquareWave(t *testing.T) {
	assert := assert.New(t)

	// 1000 Hz at 8000 samples per second: 4 high, 4 low.
	bz := &buzzer{SampleRate: 8000}
	bz.SetFrequency(10000)
	bz.Play(true)

	p := make([]byte, 8*4*2+3)
	n, err := bz.Read(p)
	assert.NoError(err)
	assert.Equal(8*4*2, n)

	high := 0
	for _, sample := range samplesOf(p[:n]) {
		assert.Equal(float32(BUZZER_VOLUME), float32(math.Abs(float64(sample))))
		if sample > 0 {
			high++
		}
	}
	assert.Equal(8, high)

	assert.NoError(bz.Close())
}
