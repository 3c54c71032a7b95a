// Package spectrum turns played audio into per-bin energy frames and reduces
// those frames into the bass, mids and highs driving signals.
package spectrum

// Frame holds one byte of energy per frequency bin, low bins first.
type Frame []uint8

// At returns the energy of bin i, or zero when i lies outside the frame.
func (f Frame) At(i int) uint8 {
	if i < 0 || i >= len(f) {
		return 0
	}
	return f[i]
}

// Norm returns At(i) scaled into [0,1].
func (f Frame) Norm(i int) float64 {
	return float64(f.At(i)) / 255
}

// Bands are the three normalized driving signals, each in [0,1].
type Bands struct {
	Bass  float64
	Mids  float64
	Highs float64
}

// Band ranges, half open.
const (
	bassLo, bassHi   = 0, 8
	midsLo, midsHi   = 32, 96
	highsLo, highsHi = 128, 255
)

func Split(f Frame) Bands {
	return Bands{
		Bass:  Bass(f),
		Mids:  Mids(f),
		Highs: Highs(f),
	}
}

func Bass(f Frame) float64  { return mean(f, bassLo, bassHi) }
func Mids(f Frame) float64  { return mean(f, midsLo, midsHi) }
func Highs(f Frame) float64 { return mean(f, highsLo, highsHi) }

// mean averages bins [lo,hi) over the full nominal width, so bins missing
// from a short frame count as silence.
func mean(f Frame, lo, hi int) float64 {
	sum := 0
	for i := lo; i < hi && i < len(f); i++ {
		sum += int(f[i])
	}
	return float64(sum) / float64((hi-lo)*255)
}
