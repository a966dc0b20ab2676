// Package host relays parameter gestures and automation from the plugin to the host.
package host

import (
	"sync"

	"github.com/justyntemme/simplegain/pkg/framework/debug"
)

// Callback is the host side of the plugin ABI. An ABI shim implements it on
// top of the callback handle the host passes at instantiation.
//
// None of the methods return a result: the ABI has nothing to report, so
// notifications are fire-and-forget.
type Callback interface {
	// Automate tells the host a parameter changed outside its own automation.
	Automate(index int32, value float32)
	// BeginEdit opens a user gesture on a parameter.
	BeginEdit(index int32)
	// EndEdit closes a user gesture on a parameter.
	EndEdit(index int32)
}

// EventKind identifies an automation notification.
type EventKind int

const (
	EventBeginEdit EventKind = iota
	EventAutomate
	EventEndEdit
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBeginEdit:
		return "begin-edit"
	case EventAutomate:
		return "automate"
	case EventEndEdit:
		return "end-edit"
	default:
		return "unknown"
	}
}

// Event is one notification relayed to the host.
type Event struct {
	Kind  EventKind
	Index int32
	Value float32 // only meaningful for EventAutomate
}

// Bridge wraps the host callback. It keeps no state besides the callback and
// its observers, and performs no validation: every call is passed through.
//
// The bridge is only used from the editor/UI context; the audio path never
// touches it.
type Bridge struct {
	mu        sync.RWMutex
	callback  Callback
	observers []func(Event)
	logger    *debug.Logger
}

// NewBridge creates a bridge around cb. A nil callback is allowed; calls are
// then dropped until SetCallback attaches one.
func NewBridge(cb Callback, logger *debug.Logger) *Bridge {
	if logger == nil {
		logger = debug.Discard()
	}
	return &Bridge{
		callback: cb,
		logger:   logger,
	}
}

// SetCallback replaces the host callback.
func (b *Bridge) SetCallback(cb Callback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callback = cb
}

// Observe registers fn to be called after every relayed event, on the
// calling goroutine.
func (b *Bridge) Observe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, fn)
}

// NotifyAutomated informs the host that a parameter changed programmatically.
func (b *Bridge) NotifyAutomated(index int32, value float32) {
	b.relay(Event{Kind: EventAutomate, Index: index, Value: value})
}

// BeginEdit brackets the start of a user gesture.
func (b *Bridge) BeginEdit(index int32) {
	b.relay(Event{Kind: EventBeginEdit, Index: index})
}

// EndEdit brackets the end of a user gesture.
func (b *Bridge) EndEdit(index int32) {
	b.relay(Event{Kind: EventEndEdit, Index: index})
}

func (b *Bridge) relay(ev Event) {
	b.mu.RLock()
	cb := b.callback
	observers := b.observers
	b.mu.RUnlock()

	if cb != nil {
		b.call(cb, ev)
	}
	for _, fn := range observers {
		fn(ev)
	}
}

// call invokes the host callback, containing any panic so it never unwinds
// into the host.
func (b *Bridge) call(cb Callback, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("host callback panicked on %s(%d): %v", ev.Kind, ev.Index, r)
		}
	}()

	switch ev.Kind {
	case EventAutomate:
		cb.Automate(ev.Index, ev.Value)
	case EventBeginEdit:
		cb.BeginEdit(ev.Index)
	case EventEndEdit:
		cb.EndEdit(ev.Index)
	}
	b.logger.Debug("%s index=%d value=%.3f", ev.Kind, ev.Index, ev.Value)
}
