// Package gain provides amplitude and gain-related DSP operations.
//
// Every function here is allocation-free and safe to call from the audio thread.
package gain

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// LinearToDb32 is the float32 version of LinearToDb.
func LinearToDb32(linear float32) float32 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * float32(math.Log10(float64(linear)))
}

// Apply applies a gain factor to a sample.
func Apply(sample, gain float32) float32 {
	return sample * gain
}

// ApplyBuffer applies gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	for i := range buffer {
		buffer[i] *= gain
	}
}

// ApplyBufferTo writes src*gain into dst over the common length and returns
// the number of samples written.
func ApplyBufferTo(src []float32, gain float32, dst []float32) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i] * gain
	}
	return n
}

// ProcessStereo writes inL*gain to outL and inR*gain to outR in one pass.
// The block length is the shortest of the four slices; a zero-length block
// writes nothing.
func ProcessStereo(inL, inR, outL, outR []float32, gain float32) int {
	n := len(inL)
	if len(inR) < n {
		n = len(inR)
	}
	if len(outL) < n {
		n = len(outL)
	}
	if len(outR) < n {
		n = len(outR)
	}
	if n == 0 {
		return 0
	}

	// Reslice so the compiler can drop bounds checks in the loop.
	inL, inR, outL, outR = inL[:n], inR[:n], outL[:n], outR[:n]
	for i := range inL {
		outL[i] = inL[i] * gain
		outR[i] = inR[i] * gain
	}
	return n
}

// ApplyBufferTo64 is the double-precision variant of ApplyBufferTo, using the
// SIMD scale kernel where the CPU supports it.
func ApplyBufferTo64(src []float64, gain float64, dst []float64) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	vecmath.ScaleBlock(dst[:n], src[:n], gain)
	return n
}
