package editor

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrSessionActive is returned by Open while another session is open.
	ErrSessionActive = errors.New("editor: session already active")
	// ErrSessionClosed is returned when closing a session twice.
	ErrSessionClosed = errors.New("editor: session closed")
)

// Config holds the editor window and document settings.
type Config struct {
	Width    int
	Height   int
	Document DocumentOptions
}

// DefaultConfig returns the 480x500 editor with the default document.
func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Document: DefaultDocumentOptions(),
	}
}

// Editor is the plugin's UI endpoint. It hands out at most one Session at a
// time, matching the single editor window a host opens.
type Editor struct {
	dispatcher *Dispatcher
	config     Config

	mu     sync.Mutex
	active *Session
	opened uint64
}

// New creates an editor executing commands through d. Zero sizes fall back to
// the defaults.
func New(d *Dispatcher, config Config) *Editor {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	return &Editor{dispatcher: d, config: config}
}

// Size returns the preferred window size.
func (e *Editor) Size() (width, height int) {
	return e.config.Width, e.config.Height
}

// Document renders the page for the host's web view.
func (e *Editor) Document() (string, error) {
	return Document(e.config.Document)
}

// Dispatcher returns the command dispatcher shared by all sessions.
func (e *Editor) Dispatcher() *Dispatcher {
	return e.dispatcher
}

// Open starts a session.
func (e *Editor) Open() (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, ErrSessionActive
	}
	e.opened++
	s := &Session{editor: e, id: e.opened}
	e.active = s
	e.dispatcher.logger.Debug("editor session %d opened", s.id)
	return s, nil
}

// IsOpen reports whether a session is active.
func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

// CloseActive closes the open session, if any.
func (e *Editor) CloseActive() {
	e.mu.Lock()
	s := e.active
	e.mu.Unlock()
	if s != nil {
		s.Close()
	}
}

func (e *Editor) release(s *Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == s {
		e.active = nil
	}
}

// Session is one open editor window. Its Invoke is the callback handed to
// the web view.
type Session struct {
	editor *Editor
	id     uint64
	closed atomic.Bool
}

// ID numbers sessions in the order they were opened, starting at 1.
func (s *Session) ID() uint64 { return s.id }

// Invoke runs one command from the UI. After Close it answers "" and does
// nothing.
func (s *Session) Invoke(message string) string {
	if s.closed.Load() {
		s.editor.dispatcher.logger.Debug("session %d closed, dropping %q", s.id, message)
		return ""
	}
	return s.editor.dispatcher.Invoke(message)
}

// Close ends the session and frees the editor for the next Open.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrSessionClosed
	}
	s.editor.release(s)
	s.editor.dispatcher.logger.Debug("editor session %d closed", s.id)
	return nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}
