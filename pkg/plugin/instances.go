package plugin

import "sync"

// Handle identifies a registered instance. An ABI shim hands handles to C
// instead of Go pointers, which cgo does not allow to be retained.
type Handle uintptr

var (
	instances   = make(map[Handle]*Plugin)
	instancesMu sync.RWMutex
	nextHandle  Handle = 1
)

// Register stores p and returns its handle. Handles are never reused.
func Register(p *Plugin) Handle {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	h := nextHandle
	nextHandle++
	instances[h] = p
	return h
}

// Lookup returns the instance for h, or nil once it has been released.
func Lookup(h Handle) *Plugin {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return instances[h]
}

// Release drops the instance for h. It reports false for unknown handles.
// An editor session still open on the instance is closed.
func Release(h Handle) bool {
	instancesMu.Lock()
	p, ok := instances[h]
	delete(instances, h)
	instancesMu.Unlock()

	if ok {
		p.editor.CloseActive()
		p.logger.Debug("released instance %d", h)
	}
	return ok
}
