package editor

import (
	"github.com/justyntemme/simplegain/pkg/framework/debug"
	"github.com/justyntemme/simplegain/pkg/framework/host"
	"github.com/justyntemme/simplegain/pkg/framework/param"
)

// Dispatcher executes control surface commands against the parameter store
// and the host bridge. Each call completes before it returns; nothing is
// queued.
type Dispatcher struct {
	store  *param.Store
	host   *host.Bridge
	index  int32
	logger *debug.Logger
}

// NewDispatcher creates a dispatcher whose gain commands address the
// parameter at index.
func NewDispatcher(store *param.Store, bridge *host.Bridge, index int32, logger *debug.Logger) *Dispatcher {
	if logger == nil {
		logger = debug.Discard()
	}
	return &Dispatcher{
		store:  store,
		host:   bridge,
		index:  index,
		logger: logger,
	}
}

// Invoke runs one command and returns its response. It never panics: a
// malformed argument, or a failure anywhere below, yields "" and leaves the
// store untouched by that call.
func (d *Dispatcher) Invoke(message string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command %q panicked: %v", message, r)
			response = ""
		}
	}()

	cmd, err := ParseCommand(message)
	if err != nil {
		d.logger.Warn("ignoring command: %v", err)
		return ""
	}

	switch cmd.Name {
	case CmdGetGain:
		return d.store.DisplayText(d.index)

	case CmdSetGain:
		d.store.Set(d.index, cmd.Value)
		// Report what the store committed, which may be clamped.
		d.host.NotifyAutomated(d.index, d.store.Get(d.index))

	case CmdMouseOverGain:
		d.host.BeginEdit(d.index)

	case CmdReleaseGain:
		d.host.EndEdit(d.index)

	default:
		d.logger.Debug("unknown command %q", cmd.Name)
	}

	return ""
}
