// Package plugin describes plugin identity as reported to hosts.
package plugin

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUID is returned by ValidateUID when no class ID can be derived.
var ErrInvalidUID = errors.New("plugin: invalid UID")

// classNamespace seeds the name-based class IDs so that two plugins with the
// same reverse-DNS ID always share a UID and different IDs never collide.
var classNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("plugins.psykhedelicmandala.com"))

// Info contains plugin metadata
type Info struct {
	ID       string // Reverse-DNS identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Effect", "Synth")
	UniqueID int32  // Numeric identifier used by hosts that key plugins by integer
	Inputs   int32  // Audio input channels
	Outputs  int32  // Audio output channels
	Params   int32  // Parameter count
}

// UID derives the 16-byte class ID from the string ID (UUID version 5).
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(classNamespace, []byte(i.ID))
}

// ValidateUID reports whether a usable class ID can be derived.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return fmt.Errorf("%w: empty plugin ID", ErrInvalidUID)
	}
	if i.UID() == [16]byte{} {
		return fmt.Errorf("%w: zero UID for %q", ErrInvalidUID, i.ID)
	}
	return nil
}

// String returns a one-line description for logs.
func (i Info) String() string {
	return fmt.Sprintf("%s %s by %s (id %d, %s, %d in/%d out, %d params)",
		i.Name, i.Version, i.Vendor, i.UniqueID, i.Category, i.Inputs, i.Outputs, i.Params)
}
