// Package editor bridges the web-rendered control surface and the plugin.
//
// The UI talks to the plugin through one synchronous call that takes a text
// command and returns a text response:
//
//	getGain          -> current gain, three decimals ("0.750")
//	setGain <float>  -> store the gain, notify the host, ""
//	mouseOverGain    -> begin a host edit gesture, ""
//	releaseGain      -> end the host edit gesture, ""
//
// Anything else is ignored and answered with "".
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/justyntemme/simplegain/pkg/framework/param"
)

// Commands understood by the control surface.
const (
	CmdGetGain       = "getGain"
	CmdSetGain       = "setGain"
	CmdMouseOverGain = "mouseOverGain"
	CmdReleaseGain   = "releaseGain"
)

// ErrMalformedArgument is returned by ParseCommand when a command that needs a
// numeric argument gets a missing, non-numeric or non-finite one.
var ErrMalformedArgument = errors.New("editor: malformed argument")

// Command is one parsed request line.
type Command struct {
	Name  string
	Arg   string  // raw first argument, "" if absent
	Value float32 // parsed Arg, set only for CmdSetGain
}

// ParseCommand splits message on whitespace into a command name and its
// first argument; further tokens are ignored. Only setGain parses its
// argument.
func ParseCommand(message string) (Command, error) {
	var cmd Command

	fields := strings.Fields(message)
	if len(fields) > 0 {
		cmd.Name = fields[0]
	}
	if len(fields) > 1 {
		cmd.Arg = fields[1]
	}

	if cmd.Name == CmdSetGain {
		if cmd.Arg == "" {
			return cmd, fmt.Errorf("%w: %s needs a value", ErrMalformedArgument, CmdSetGain)
		}
		v, err := param.FloatParser(cmd.Arg)
		if err != nil {
			return cmd, fmt.Errorf("%w: %s %q: %v", ErrMalformedArgument, CmdSetGain, cmd.Arg, err)
		}
		cmd.Value = v
	}

	return cmd, nil
}
