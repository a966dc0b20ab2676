// Package plugin assembles the Simple Gain instance: parameter store, gain
// processor, host bridge and editor. An ABI shim creates one Plugin per host
// instance and forwards the host's calls to it.
package plugin

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/justyntemme/simplegain/pkg/editor"
	"github.com/justyntemme/simplegain/pkg/framework/bus"
	"github.com/justyntemme/simplegain/pkg/framework/debug"
	"github.com/justyntemme/simplegain/pkg/framework/host"
	"github.com/justyntemme/simplegain/pkg/framework/param"
	"github.com/justyntemme/simplegain/pkg/framework/plugin"
	"github.com/justyntemme/simplegain/pkg/framework/process"
)

// ErrInvalidConfig is returned by New when the configuration cannot describe
// a usable gain range.
var ErrInvalidConfig = errors.New("plugin: invalid config")

// ErrInvalidSetup is returned by Initialize for a non-positive sample rate or
// block size.
var ErrInvalidSetup = errors.New("plugin: invalid processing setup")

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called before processing starts
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// Parameters returns the parameter store
	Parameters() *param.Store

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// LatencySamples returns the processor's latency in samples
	LatencySamples() int32

	// TailSamples returns the tail length in samples
	TailSamples() int32
}

// Config controls the gain range and the editor.
type Config struct {
	DefaultGain float32 // initial linear gain
	MaxGain     float32 // upper clamp; the lower clamp is always 0

	EditorWidth  int
	EditorHeight int
	Document     editor.DocumentOptions
}

// DefaultConfig returns unity gain, a 0..4 range and the 480x500 editor.
func DefaultConfig() Config {
	return Config{
		DefaultGain:  1.0,
		MaxGain:      4.0,
		EditorWidth:  editor.DefaultWidth,
		EditorHeight: editor.DefaultHeight,
		Document:     editor.DefaultDocumentOptions(),
	}
}

func (c Config) validate() error {
	if math.IsNaN(float64(c.MaxGain)) || math.IsInf(float64(c.MaxGain), 0) || c.MaxGain <= 0 {
		return fmt.Errorf("%w: max gain %v", ErrInvalidConfig, c.MaxGain)
	}
	if math.IsNaN(float64(c.DefaultGain)) || c.DefaultGain < 0 || c.DefaultGain > c.MaxGain {
		return fmt.Errorf("%w: default gain %v outside [0, %v]", ErrInvalidConfig, c.DefaultGain, c.MaxGain)
	}
	return nil
}

// Option configures New.
type Option func(*options)

type options struct {
	config Config
	logger *debug.Logger
}

// WithConfig replaces the default configuration.
func WithConfig(c Config) Option {
	return func(o *options) { o.config = c }
}

// WithLogger sets the logger; components log under child names.
func WithLogger(l *debug.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Info returns the identity reported to hosts.
func Info() plugin.Info {
	return plugin.Info{
		ID:       "com.psykhedelicmandala.simplegain",
		Name:     "Simple Gain",
		Version:  "0.1.0",
		Vendor:   "Psykhedelic Mandala",
		Category: "Effect",
		UniqueID: 1337,
		Inputs:   2,
		Outputs:  2,
		Params:   1,
	}
}

// Plugin is one instance created for a host.
//
// Process and ProcessDouble run on the host's audio thread and only do one
// atomic load per block. Everything else runs on the UI or main thread.
type Plugin struct {
	info      plugin.Info
	config    Config
	processor Processor
	params    *param.Store
	buses     *bus.Layout
	ctx       *process.Context
	bridge    *host.Bridge
	editor    *editor.Editor
	logger    *debug.Logger
	active    atomic.Bool
}

// New creates an instance bound to the host callback cb. cb may be nil and
// attached later with SetHost.
func New(cb host.Callback, opts ...Option) (*Plugin, error) {
	o := options{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = debug.Discard()
	}
	if err := o.config.validate(); err != nil {
		return nil, err
	}

	info := Info()
	if err := info.ValidateUID(); err != nil {
		return nil, err
	}

	proc := NewGainProcessor(o.config.DefaultGain, o.config.MaxGain)
	params := proc.Parameters()
	bridge := host.NewBridge(cb, o.logger.Named("host"))
	dispatcher := editor.NewDispatcher(params, bridge, ParamGain, o.logger.Named("editor"))

	p := &Plugin{
		info:      info,
		config:    o.config,
		processor: proc,
		params:    params,
		buses:     bus.Stereo(),
		ctx:       process.NewContext(params),
		bridge:    bridge,
		editor: editor.New(dispatcher, editor.Config{
			Width:    o.config.EditorWidth,
			Height:   o.config.EditorHeight,
			Document: o.config.Document,
		}),
		logger: o.logger,
	}

	p.logger.Info("created %s", info)
	return p, nil
}

// Info returns the instance's identity.
func (p *Plugin) Info() plugin.Info { return p.info }

// Config returns the configuration the instance was built with.
func (p *Plugin) Config() Config { return p.config }

// Parameters returns the shared parameter store.
func (p *Plugin) Parameters() *param.Store { return p.params }

// Buses returns the audio bus layout reported to the host.
func (p *Plugin) Buses() *bus.Layout { return p.buses }

// Host returns the host bridge.
func (p *Plugin) Host() *host.Bridge { return p.bridge }

// SetHost attaches or replaces the host callback.
func (p *Plugin) SetHost(cb host.Callback) { p.bridge.SetCallback(cb) }

// Editor returns the control surface endpoint.
func (p *Plugin) Editor() *editor.Editor { return p.editor }

// Initialize prepares processing for the given setup.
func (p *Plugin) Initialize(sampleRate float64, maxBlockSize int32) error {
	if sampleRate <= 0 || maxBlockSize <= 0 {
		return fmt.Errorf("%w: %v Hz, %d samples", ErrInvalidSetup, sampleRate, maxBlockSize)
	}
	p.ctx.SampleRate = sampleRate
	p.ctx.MaxBlockSize = int(maxBlockSize)
	if err := p.processor.Initialize(sampleRate, maxBlockSize); err != nil {
		return fmt.Errorf("initialize processor: %w", err)
	}
	p.logger.Debug("initialized at %.0f Hz, block %d", sampleRate, maxBlockSize)
	return nil
}

// SetActive is called when the host starts or stops processing.
func (p *Plugin) SetActive(active bool) error {
	if err := p.processor.SetActive(active); err != nil {
		return err
	}
	p.active.Store(active)
	p.logger.Debug("active=%v", active)
	return nil
}

// IsActive reports the last state passed to SetActive.
func (p *Plugin) IsActive() bool { return p.active.Load() }

// LatencySamples returns the processing latency reported to the host.
func (p *Plugin) LatencySamples() int32 { return p.processor.LatencySamples() }

// TailSamples returns the tail length reported to the host.
func (p *Plugin) TailSamples() int32 { return p.processor.TailSamples() }

// Process runs one single-precision block. Channels beyond the first two and
// samples beyond the shortest buffer are left untouched.
func (p *Plugin) Process(inputs, outputs [][]float32) {
	p.ctx.Set32(inputs, outputs)
	p.processor.ProcessAudio(p.ctx)
}

// ProcessDouble runs one double-precision block.
func (p *Plugin) ProcessDouble(inputs, outputs [][]float64) {
	p.ctx.Set64(inputs, outputs)
	p.processor.ProcessAudio(p.ctx)
}

// Parameter returns the plain value of a parameter, as read by hosts.
func (p *Plugin) Parameter(index int32) float32 { return p.params.Get(index) }

// SetParameter stores a plain value coming from host automation. The host
// is not notified back.
func (p *Plugin) SetParameter(index int32, value float32) { p.params.Set(index, value) }

// ParameterNormalized returns a parameter's value mapped to 0..1.
func (p *Plugin) ParameterNormalized(index int32) float64 {
	prm := p.params.At(index)
	if prm == nil {
		return 0
	}
	return prm.Normalize(prm.GetValue())
}

// SetParameterNormalized stores a 0..1 value coming from host automation.
func (p *Plugin) SetParameterNormalized(index int32, normalized float64) {
	prm := p.params.At(index)
	if prm == nil {
		return
	}
	prm.SetValue(prm.Denormalize(normalized))
}
