package process

import (
	"testing"

	"github.com/justyntemme/simplegain/pkg/framework/param"
)

func newContext() (*Context, *param.Store) {
	store := param.NewStore(param.New(0, "gain").Range(0, 4).Default(1).Build())
	return NewContext(store), store
}

func TestContextParam(t *testing.T) {
	ctx, store := newContext()

	if ctx.Param(0) != 1 {
		t.Errorf("Param(0) = %v, want default 1", ctx.Param(0))
	}
	store.Set(0, 0.5)
	if ctx.Param(0) != 0.5 {
		t.Errorf("Param(0) should follow the store, got %v", ctx.Param(0))
	}
	if ctx.Param(3) != 0 {
		t.Errorf("unknown parameter should read 0, got %v", ctx.Param(3))
	}
}

func TestContextChannelsAndSamples(t *testing.T) {
	ctx, _ := newContext()

	tests := []struct {
		name         string
		in, out      [][]float32
		wantChannels int
		wantSamples  int
	}{
		{"empty", nil, nil, 0, 0},
		{"stereo", [][]float32{make([]float32, 64), make([]float32, 64)}, [][]float32{make([]float32, 64), make([]float32, 64)}, 2, 64},
		{"mono", [][]float32{make([]float32, 32)}, [][]float32{make([]float32, 32), make([]float32, 32)}, 1, 32},
		{"capped", [][]float32{{0}, {0}, {0}}, [][]float32{{0}, {0}, {0}}, 2, 1},
		{"ragged", [][]float32{make([]float32, 10), make([]float32, 8)}, [][]float32{make([]float32, 9), make([]float32, 10)}, 2, 8},
		{"zero length", [][]float32{{}, {}}, [][]float32{{}, {}}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx.Set32(tt.in, tt.out)
			if got := ctx.NumChannels(); got != tt.wantChannels {
				t.Errorf("NumChannels() = %d, want %d", got, tt.wantChannels)
			}
			if got := ctx.NumSamples(); got != tt.wantSamples {
				t.Errorf("NumSamples() = %d, want %d", got, tt.wantSamples)
			}
		})
	}
}

func TestContextSwitchesPrecision(t *testing.T) {
	ctx, _ := newContext()

	ctx.Set64([][]float64{{1, 2}}, [][]float64{{0, 0}})
	if !ctx.Is64() || ctx.NumSamples() != 2 {
		t.Fatalf("expected a 64-bit call of 2 samples")
	}

	ctx.Set32([][]float32{{1}}, [][]float32{{0}})
	if ctx.Is64() {
		t.Error("Set32 should clear the 64-bit buffers")
	}
}

func TestContextPassThroughAndClear(t *testing.T) {
	ctx, _ := newContext()
	in := [][]float32{{1, 2}, {3, 4}}
	out := [][]float32{{0, 0}, {0, 0}}
	ctx.Set32(in, out)

	ctx.PassThrough()
	if out[0][1] != 2 || out[1][0] != 3 {
		t.Errorf("PassThrough did not copy: %v", out)
	}

	ctx.Clear()
	if out[0][1] != 0 || out[1][0] != 0 {
		t.Errorf("Clear did not zero: %v", out)
	}

	in64 := [][]float64{{5}}
	out64 := [][]float64{{0}}
	ctx.Set64(in64, out64)
	ctx.PassThrough()
	if out64[0][0] != 5 {
		t.Errorf("64-bit PassThrough did not copy: %v", out64)
	}
}
