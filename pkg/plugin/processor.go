package plugin

import (
	"github.com/justyntemme/simplegain/pkg/dsp/gain"
	"github.com/justyntemme/simplegain/pkg/framework/param"
	"github.com/justyntemme/simplegain/pkg/framework/process"
)

// Parameter indices.
const (
	ParamGain int32 = iota
)

// GainProcessor multiplies every sample by the gain parameter.
type GainProcessor struct {
	params *param.Store
}

// NewGainProcessor creates a processor whose gain starts at defaultGain and is
// clamped to [0, maxGain].
func NewGainProcessor(defaultGain, maxGain float32) *GainProcessor {
	return &GainProcessor{
		params: param.NewStore(
			param.New(uint32(ParamGain), "gain").
				ShortName("Gain").
				Unit("[-]").
				Range(0, maxGain).
				Default(defaultGain).
				Formatter(param.FixedFormatter(3), param.FloatParser).
				Build(),
		),
	}
}

// Initialize has nothing to prepare: the gain does not depend on the sample
// rate or block size.
func (p *GainProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	return nil
}

// ProcessAudio reads the gain once per block and applies it to every
// processed channel.
func (p *GainProcessor) ProcessAudio(ctx *process.Context) {
	n := ctx.NumSamples()
	if n == 0 {
		return
	}
	g := ctx.Param(ParamGain)

	if ctx.Is64() {
		for ch := 0; ch < ctx.NumChannels(); ch++ {
			gain.ApplyBufferTo64(ctx.Input64[ch][:n], float64(g), ctx.Output64[ch][:n])
		}
		return
	}

	switch ctx.NumChannels() {
	case 2:
		gain.ProcessStereo(ctx.Input[0], ctx.Input[1], ctx.Output[0], ctx.Output[1], g)
	case 1:
		gain.ApplyBufferTo(ctx.Input[0][:n], g, ctx.Output[0][:n])
	}
}

func (p *GainProcessor) Parameters() *param.Store {
	return p.params
}

func (p *GainProcessor) SetActive(active bool) error {
	return nil
}

func (p *GainProcessor) LatencySamples() int32 {
	return 0
}

func (p *GainProcessor) TailSamples() int32 {
	return 0
}
