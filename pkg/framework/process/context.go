// Package process provides the audio processing context handed to processors.
package process

import "github.com/justyntemme/simplegain/pkg/framework/param"

// MaxChannels is the widest layout processors are asked to handle (stereo).
const MaxChannels = 2

// Context carries one process call: the channel buffers and parameter access.
// It is reused across calls, so filling it in allocates nothing.
//
// Exactly one of the 32-bit or 64-bit buffer pairs is set for a given call.
type Context struct {
	Input    [][]float32
	Output   [][]float32
	Input64  [][]float64
	Output64 [][]float64

	SampleRate   float64
	MaxBlockSize int

	params *param.Store
}

// NewContext creates a context reading parameters from params.
func NewContext(params *param.Store) *Context {
	return &Context{params: params}
}

// Set32 points the context at single-precision buffers for the next call.
func (c *Context) Set32(input, output [][]float32) {
	c.Input, c.Output = input, output
	c.Input64, c.Output64 = nil, nil
}

// Set64 points the context at double-precision buffers for the next call.
func (c *Context) Set64(input, output [][]float64) {
	c.Input, c.Output = nil, nil
	c.Input64, c.Output64 = input, output
}

// Is64 reports whether the current call uses double-precision buffers.
func (c *Context) Is64() bool {
	return c.Input64 != nil || c.Output64 != nil
}

// Param returns the current plain value of a parameter: one atomic load.
func (c *Context) Param(index int32) float32 {
	return c.params.Get(index)
}

// NumChannels returns the number of channel pairs to process, capped at MaxChannels.
func (c *Context) NumChannels() int {
	var n int
	if c.Is64() {
		n = min(len(c.Input64), len(c.Output64))
	} else {
		n = min(len(c.Input), len(c.Output))
	}
	return min(n, MaxChannels)
}

// NumSamples returns the block length: the shortest processed channel.
func (c *Context) NumSamples() int {
	channels := c.NumChannels()
	if channels == 0 {
		return 0
	}
	n := -1
	for ch := 0; ch < channels; ch++ {
		var l int
		if c.Is64() {
			l = min(len(c.Input64[ch]), len(c.Output64[ch]))
		} else {
			l = min(len(c.Input[ch]), len(c.Output[ch]))
		}
		if n < 0 || l < n {
			n = l
		}
	}
	return n
}

// PassThrough copies input to output (for bypass).
func (c *Context) PassThrough() {
	for ch := 0; ch < c.NumChannels(); ch++ {
		if c.Is64() {
			copy(c.Output64[ch], c.Input64[ch])
		} else {
			copy(c.Output[ch], c.Input[ch])
		}
	}
}

// Clear zeros the output buffers.
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
	for ch := range c.Output64 {
		clear(c.Output64[ch])
	}
}
