package core

import (
	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseScale  = 0.15
)

// Noise samples 2D Perlin noise on an integer lattice.
type Noise struct {
	p *perlin.Perlin
}

// NewNoise builds a deterministic noise field for seed.
func NewNoise(seed int64) *Noise {
	return &Noise{p: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)}
}

// At returns the noise value for lattice point (x, y), roughly in [-1, 1].
func (n *Noise) At(x, y int) float64 {
	return n.p.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale)
}

// FillThreshold writes 1 into buf wherever the noise exceeds threshold. buf is
// row-major with w columns.
func (n *Noise) FillThreshold(buf []uint8, w int, threshold float64) {
	if w <= 0 {
		return
	}
	for i := range buf {
		buf[i] = 0
		if n.At(i%w, i/w) > threshold {
			buf[i] = 1
		}
	}
}
