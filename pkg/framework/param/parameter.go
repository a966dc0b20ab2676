// Package param holds plugin parameters and the lock-free store shared by the
// audio path and the editor.
package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// Parameter represents a plugin parameter. Values are plain (not normalized)
// and always lie in [Min, Max].
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float32
	Max          float32
	DefaultValue float32
	Flags        uint32

	// Float bits, so the audio thread reads without locking and never sees a torn value.
	value atomic.Uint32

	formatFunc func(float32) string
	parseFunc  func(string) (float32, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
)

// GetValue returns the current plain value.
func (p *Parameter) GetValue() float32 {
	return math.Float32frombits(p.value.Load())
}

// SetValue stores a plain value, clamped to [Min, Max]. NaN is ignored.
func (p *Parameter) SetValue(value float32) {
	if value != value {
		return
	}
	p.value.Store(math.Float32bits(p.clamp(value)))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.value.Store(math.Float32bits(p.clamp(p.DefaultValue)))
}

// CanAutomate reports whether hosts may record automation for the parameter.
func (p *Parameter) CanAutomate() bool {
	return p.Flags&CanAutomate != 0 && p.Flags&IsReadOnly == 0
}

func (p *Parameter) clamp(value float32) float32 {
	if value < p.Min {
		return p.Min
	}
	if value > p.Max {
		return p.Max
	}
	if value == 0 {
		// -0 would format as "-0.000".
		return 0
	}
	return value
}

// FormatValue returns the display text for a plain value.
func (p *Parameter) FormatValue(plain float32) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// Text returns the display text of the current value.
func (p *Parameter) Text() string {
	return p.FormatValue(p.GetValue())
}

// ParseValue parses display text into a plain value. The result is not clamped.
func (p *Parameter) ParseValue(str string) (float32, error) {
	if p.parseFunc != nil {
		return p.parseFunc(str)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// Normalize converts a plain value to the 0-1 range used by normalized host APIs.
func (p *Parameter) Normalize(plain float32) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := float64(p.clamp(plain)-p.Min) / float64(p.Max-p.Min)
	return normalized
}

// Denormalize converts a 0-1 value to the plain range.
func (p *Parameter) Denormalize(normalized float64) float32 {
	if normalized < 0 {
		normalized = 0
	} else if normalized > 1 {
		normalized = 1
	}
	return p.Min + float32(normalized)*(p.Max-p.Min)
}
