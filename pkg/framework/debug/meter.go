package debug

import (
	"fmt"
	"math"
)

// ClipThreshold is the absolute sample value at or above which a sample counts as clipped.
const ClipThreshold = 0.99

// SilenceThreshold is the RMS below which a buffer counts as silent.
const SilenceThreshold = 0.0001

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	NaNCount       int
}

// Analyze measures peak, RMS, clipping and NaN content of a buffer.
// NaN samples are counted and excluded from the level figures.
func Analyze(buffer []float32) AnalysisResult {
	result := AnalysisResult{}
	if len(buffer) == 0 {
		return result
	}

	var sumSquares float64
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) {
			result.NaNCount++
			continue
		}

		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= ClipThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}
		sumSquares += float64(sample) * float64(sample)
	}

	result.RMS = float32(math.Sqrt(sumSquares / float64(len(buffer))))
	result.Silent = result.RMS < SilenceThreshold
	return result
}

// Meter tracks the levels of a stereo signal across blocks. Peaks are held
// until Reset; RMS reflects the last block only.
type Meter struct {
	peak    [2]float32
	rms     [2]float32
	clipped [2]int
}

// Update folds a stereo block into the meter.
func (m *Meter) Update(left, right []float32) {
	for ch, buf := range [2][]float32{left, right} {
		r := Analyze(buf)
		if r.Peak > m.peak[ch] {
			m.peak[ch] = r.Peak
		}
		m.rms[ch] = r.RMS
		m.clipped[ch] += r.ClippedSamples
	}
}

// Peak returns the held peak of a channel (0 = left, 1 = right).
func (m *Meter) Peak(ch int) float32 {
	if ch < 0 || ch > 1 {
		return 0
	}
	return m.peak[ch]
}

// RMS returns the RMS of the most recent block for a channel.
func (m *Meter) RMS(ch int) float32 {
	if ch < 0 || ch > 1 {
		return 0
	}
	return m.rms[ch]
}

// Clipped returns the number of clipped samples seen on a channel since Reset.
func (m *Meter) Clipped(ch int) int {
	if ch < 0 || ch > 1 {
		return 0
	}
	return m.clipped[ch]
}

// Reset clears held peaks and clip counts.
func (m *Meter) Reset() {
	*m = Meter{}
}

// String renders the meter as a single status line.
func (m *Meter) String() string {
	return fmt.Sprintf("L peak %.3f rms %.3f | R peak %.3f rms %.3f | clipped %d/%d",
		m.peak[0], m.rms[0], m.peak[1], m.rms[1], m.clipped[0], m.clipped[1])
}

// CompareBuffers reports the largest absolute difference between two buffers
// and its index. Buffers of different length compare only their common prefix.
func CompareBuffers(a, b []float32) (maxDiff float32, index int) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > maxDiff {
			maxDiff = diff
			index = i
		}
	}
	return maxDiff, index
}
