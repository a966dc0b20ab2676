package host

import "sync"

// Recorder is a Callback that keeps every notification in order. It stands in
// for a real host in the preview harness and in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Automate implements Callback.
func (r *Recorder) Automate(index int32, value float32) {
	r.append(Event{Kind: EventAutomate, Index: index, Value: value})
}

// BeginEdit implements Callback.
func (r *Recorder) BeginEdit(index int32) {
	r.append(Event{Kind: EventBeginEdit, Index: index})
}

// EndEdit implements Callback.
func (r *Recorder) EndEdit(index int32) {
	r.append(Event{Kind: EventEndEdit, Index: index})
}

func (r *Recorder) append(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded notifications.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many notifications of a kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
