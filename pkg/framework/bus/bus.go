// Package bus describes the audio buses a plugin exposes to the host.
package bus

import "sync"

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

func (d Direction) String() string {
	if d == DirectionInput {
		return "input"
	}
	return "output"
}

// Info describes one audio bus.
type Info struct {
	Direction Direction
	Channels  int32
	Name      string
	Main      bool
	Active    bool
}

// Layout is the fixed set of audio buses of a plugin. Only the activation
// state changes after construction, and only on the host's main thread, but
// it is guarded so status views can read it from elsewhere.
type Layout struct {
	mu    sync.RWMutex
	buses []Info
}

// NewLayout creates a layout from the given buses.
func NewLayout(buses ...Info) *Layout {
	return &Layout{buses: append([]Info(nil), buses...)}
}

// Stereo returns one active stereo main input and output.
func Stereo() *Layout {
	return NewLayout(
		Info{Direction: DirectionInput, Channels: 2, Name: "Stereo In", Main: true, Active: true},
		Info{Direction: DirectionOutput, Channels: 2, Name: "Stereo Out", Main: true, Active: true},
	)
}

// Mono returns one active mono main input and output.
func Mono() *Layout {
	return NewLayout(
		Info{Direction: DirectionInput, Channels: 1, Name: "Mono In", Main: true, Active: true},
		Info{Direction: DirectionOutput, Channels: 1, Name: "Mono Out", Main: true, Active: true},
	)
}

// Count returns the number of buses in a direction.
func (l *Layout) Count(direction Direction) int32 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := int32(0)
	for _, b := range l.buses {
		if b.Direction == direction {
			count++
		}
	}
	return count
}

// At returns the index-th bus of a direction.
func (l *Layout) At(direction Direction, index int32) (Info, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.find(direction, index); i >= 0 {
		return l.buses[i], true
	}
	return Info{}, false
}

// Channels returns the total channel count of the active buses in a direction.
func (l *Layout) Channels(direction Direction) int32 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := int32(0)
	for _, b := range l.buses {
		if b.Direction == direction && b.Active {
			total += b.Channels
		}
	}
	return total
}

// SetActive switches a bus on or off. It reports false for unknown buses.
func (l *Layout) SetActive(direction Direction, index int32, active bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.find(direction, index)
	if i < 0 {
		return false
	}
	l.buses[i].Active = active
	return true
}

func (l *Layout) find(direction Direction, index int32) int {
	n := int32(0)
	for i := range l.buses {
		if l.buses[i].Direction == direction {
			if n == index {
				return i
			}
			n++
		}
	}
	return -1
}
