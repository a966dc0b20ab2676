package param

import (
	"math"
	"testing"
)

func newGain() *Parameter {
	return New(0, "gain").
		Unit("[-]").
		Range(0, 4).
		Default(1).
		Formatter(FixedFormatter(3), FloatParser).
		Build()
}

func TestParameterDefaults(t *testing.T) {
	p := newGain()

	if p.GetValue() != 1 {
		t.Errorf("Expected default 1.0, got %f", p.GetValue())
	}
	if !p.CanAutomate() {
		t.Error("Expected parameter to be automatable by default")
	}
	if p.ShortName != "gain" {
		t.Errorf("Expected short name to default to name, got %q", p.ShortName)
	}
}

func TestParameterSetValue(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"unity", 1, 1},
		{"quarter", 0.25, 0.25},
		{"upper bound", 4, 4},
		{"above range clamps", 5, 4},
		{"negative clamps", -1, 0},
		{"positive infinity clamps", float32(math.Inf(1)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newGain()
			p.SetValue(tt.input)
			if got := p.GetValue(); got != tt.want {
				t.Errorf("SetValue(%v) -> %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParameterIgnoresNaN(t *testing.T) {
	p := newGain()
	p.SetValue(0.5)
	p.SetValue(float32(math.NaN()))

	if p.GetValue() != 0.5 {
		t.Errorf("NaN write should be ignored, value is %f", p.GetValue())
	}
}

func TestParameterNegativeZero(t *testing.T) {
	p := newGain()
	p.SetValue(float32(math.Copysign(0, -1)))

	if math.Signbit(float64(p.GetValue())) {
		t.Error("negative zero should be stored as +0")
	}
	if got := p.Text(); got != "0.000" {
		t.Errorf("Text() = %q, want 0.000", got)
	}
}

func TestParameterReset(t *testing.T) {
	p := newGain()
	p.SetValue(3)
	p.Reset()

	if p.GetValue() != 1 {
		t.Errorf("Reset should restore the default, got %f", p.GetValue())
	}
}

func TestParameterFormatting(t *testing.T) {
	p := newGain()

	tests := []struct {
		value float32
		want  string
	}{
		{0.5, "0.500"},
		{1.0, "1.000"},
		{0.75, "0.750"},
		{0, "0.000"},
		{3.14159, "3.142"},
	}

	for _, tt := range tests {
		if got := p.FormatValue(tt.value); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}

	p.SetValue(0.5)
	if p.Text() != "0.500" {
		t.Errorf("Text() = %q, want 0.500", p.Text())
	}
}

func TestParameterDefaultFormatter(t *testing.T) {
	p := New(1, "plain").Range(0, 10).Default(2.5).Build()

	if got := p.Text(); got != "2.50" {
		t.Errorf("default formatting = %q, want 2.50", got)
	}
	v, err := p.ParseValue(" 7.5 ")
	if err != nil || v != 7.5 {
		t.Errorf("ParseValue = (%v, %v), want 7.5", v, err)
	}
}

func TestParameterParse(t *testing.T) {
	p := newGain()

	tests := []struct {
		input   string
		want    float32
		wantErr bool
	}{
		{"0.25", 0.25, false},
		{" 2 ", 2, false},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1e-1", 0.1, false},
		{"0x1p-2", 0, true},
		{"0X1P-2", 0, true},
		{"-0x1p-2", 0, true},
		{"1_0", 0, true},
		{"1_000", 0, true},
	}

	for _, tt := range tests {
		got, err := p.ParseValue(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseValue(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParameterNormalization(t *testing.T) {
	p := newGain()

	if got := p.Normalize(1); got != 0.25 {
		t.Errorf("Normalize(1) = %v, want 0.25", got)
	}
	if got := p.Denormalize(0.5); got != 2 {
		t.Errorf("Denormalize(0.5) = %v, want 2", got)
	}
	if got := p.Denormalize(1.5); got != 4 {
		t.Errorf("Denormalize should clamp, got %v", got)
	}
	if got := p.Normalize(-3); got != 0 {
		t.Errorf("Normalize should clamp, got %v", got)
	}

	flat := New(2, "flat").Range(1, 1).Build()
	if flat.Normalize(1) != 0 {
		t.Error("degenerate range should normalize to 0")
	}
}

func TestReadOnlyIsNotAutomatable(t *testing.T) {
	p := New(3, "meter").ReadOnly().Hidden().Build()

	if p.CanAutomate() {
		t.Error("read-only parameter should not be automatable")
	}
	if p.Flags&IsHidden == 0 {
		t.Error("Hidden flag missing")
	}
}

func TestDecibelFormatter(t *testing.T) {
	if got := DecibelFormatter(-6.02); got != "-6.0 dB" {
		t.Errorf("DecibelFormatter(-6.02) = %q", got)
	}
	if got := DecibelFormatter(-80); got != "-∞ dB" {
		t.Errorf("DecibelFormatter(-80) = %q", got)
	}
}
