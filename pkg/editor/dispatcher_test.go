package editor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/justyntemme/simplegain/pkg/framework/debug"
	"github.com/justyntemme/simplegain/pkg/framework/host"
	"github.com/justyntemme/simplegain/pkg/framework/param"
)

func newGainStore() *param.Store {
	return param.NewStore(
		param.New(0, "Gain").
			Unit("[-]").
			Range(0, 4).
			Default(1).
			Formatter(param.FixedFormatter(3), param.FloatParser).
			Build(),
	)
}

type fixture struct {
	store *param.Store
	rec   *host.Recorder
	log   *bytes.Buffer
	d     *Dispatcher
}

func newFixture() *fixture {
	f := &fixture{
		store: newGainStore(),
		rec:   &host.Recorder{},
		log:   &bytes.Buffer{},
	}
	logger := debug.New(f.log, "test", debug.FlagLevel)
	logger.SetLevel(debug.LogLevelWarn)
	f.d = NewDispatcher(f.store, host.NewBridge(f.rec, logger), 0, logger)
	return f
}

func TestGetGain(t *testing.T) {
	f := newFixture()

	if got := f.d.Invoke("getGain"); got != "1.000" {
		t.Errorf("getGain at default = %q, want 1.000", got)
	}
	f.store.Set(0, 0.75)
	if got := f.d.Invoke("getGain"); got != "0.750" {
		t.Errorf("getGain = %q, want 0.750", got)
	}
	if n := len(f.rec.Events()); n != 0 {
		t.Errorf("getGain should not notify the host, got %d events", n)
	}
}

func TestSetGain(t *testing.T) {
	f := newFixture()

	if got := f.d.Invoke("setGain 0.25"); got != "" {
		t.Errorf("setGain response = %q, want empty", got)
	}
	if v := f.store.Get(0); v != 0.25 {
		t.Errorf("store = %v, want 0.25", v)
	}

	events := f.rec.Events()
	if len(events) != 1 {
		t.Fatalf("got %d host events, want exactly 1: %+v", len(events), events)
	}
	want := host.Event{Kind: host.EventAutomate, Index: 0, Value: 0.25}
	if events[0] != want {
		t.Errorf("event = %+v, want %+v", events[0], want)
	}
}

func TestSetGainReportsClampedValue(t *testing.T) {
	f := newFixture()

	f.d.Invoke("setGain 9")

	if v := f.store.Get(0); v != 4 {
		t.Errorf("store = %v, want clamped 4", v)
	}
	events := f.rec.Events()
	if len(events) != 1 || events[0].Value != 4 {
		t.Errorf("host should see the stored value 4, got %+v", events)
	}
}

func TestSetGainNegativeZero(t *testing.T) {
	f := newFixture()

	f.d.Invoke("setGain -0")

	if got := f.d.Invoke("getGain"); got != "0.000" {
		t.Errorf("getGain = %q, want 0.000", got)
	}
}

func TestSetGainMalformed(t *testing.T) {
	for _, msg := range []string{"setGain abc", "setGain", "setGain NaN", "setGain -Inf", "setGain 1,5",
		"setGain 0x1p-2", "setGain 0X1p-2", "setGain 1_0", "setGain 1_000",
	} {
		t.Run(msg, func(t *testing.T) {
			f := newFixture()
			f.store.Set(0, 0.5)

			if got := f.d.Invoke(msg); got != "" {
				t.Errorf("response = %q, want empty", got)
			}
			if v := f.store.Get(0); v != 0.5 {
				t.Errorf("store changed to %v", v)
			}
			if n := len(f.rec.Events()); n != 0 {
				t.Errorf("host notified %d times", n)
			}
			if !strings.Contains(f.log.String(), "WARN") {
				t.Errorf("expected a warning, log was %q", f.log.String())
			}
		})
	}
}

func TestEditGesture(t *testing.T) {
	f := newFixture()

	f.d.Invoke("mouseOverGain")
	f.d.Invoke("releaseGain")

	events := f.rec.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0] != (host.Event{Kind: host.EventBeginEdit, Index: 0}) {
		t.Errorf("first event = %+v, want begin-edit 0", events[0])
	}
	if events[1] != (host.Event{Kind: host.EventEndEdit, Index: 0}) {
		t.Errorf("second event = %+v, want end-edit 0", events[1])
	}
	if f.rec.Count(host.EventAutomate) != 0 {
		t.Error("no automation expected during a bare gesture")
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture()

	for _, msg := range []string{"", "   ", "fooBar", "GETGAIN", "setgain 1"} {
		if got := f.d.Invoke(msg); got != "" {
			t.Errorf("Invoke(%q) = %q, want empty", msg, got)
		}
	}
	if v := f.store.Get(0); v != 1 {
		t.Errorf("store changed to %v", v)
	}
	if n := len(f.rec.Events()); n != 0 {
		t.Errorf("host notified %d times", n)
	}
}

type panicky struct{}

func (panicky) Automate(int32, float32) { panic("host crashed") }
func (panicky) BeginEdit(int32)         { panic("host crashed") }
func (panicky) EndEdit(int32)           { panic("host crashed") }

func TestInvokeSurvivesHostPanic(t *testing.T) {
	store := newGainStore()
	d := NewDispatcher(store, host.NewBridge(panicky{}, nil), 0, nil)

	for _, msg := range []string{"mouseOverGain", "setGain 2", "releaseGain"} {
		if got := d.Invoke(msg); got != "" {
			t.Errorf("Invoke(%q) = %q, want empty", msg, got)
		}
	}
	if v := store.Get(0); v != 2 {
		t.Errorf("store = %v, want 2", v)
	}
}

func BenchmarkInvokeSetGain(b *testing.B) {
	store := newGainStore()
	d := NewDispatcher(store, host.NewBridge(nil, nil), 0, nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Invoke("setGain 0.5")
	}
}
