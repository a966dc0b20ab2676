package main

import (
	"io"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/justyntemme/simplegain/pkg/editor"
	"github.com/justyntemme/simplegain/pkg/framework/debug"
	"github.com/justyntemme/simplegain/pkg/plugin"
)

// maxCommandBytes bounds a POST /invoke body; real commands are a few dozen bytes.
const maxCommandBytes = 1 << 10

// externalShim gives a plain browser the external.invoke call a plugin web
// view injects, backed by a synchronous POST so the UI sees the same
// blocking semantics.
const externalShim = `(function () {
  window.external = {
    invoke: function (msg) {
      var xhr = new XMLHttpRequest();
      xhr.open("POST", "/invoke", false);
      xhr.setRequestHeader("Content-Type", "text/plain");
      xhr.send(msg);
      return xhr.status === 200 ? xhr.responseText : "";
    }
  };
})();
`

// server serves the editor document to a browser and relays its commands
// into one editor session.
type server struct {
	plugin  *plugin.Plugin
	session *editor.Session
	script  atomic.Pointer[string]
	logger  *debug.Logger
}

func newServer(p *plugin.Plugin, logger *debug.Logger) (*server, error) {
	if logger == nil {
		logger = debug.Discard()
	}
	session, err := p.Editor().Open()
	if err != nil {
		return nil, err
	}
	return &server{plugin: p, session: session, logger: logger}, nil
}

// setScript replaces the UI bundle served with the document.
func (s *server) setScript(script string) {
	s.script.Store(&script)
}

func (s *server) close() error {
	return s.session.Close()
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDocument)
	mux.HandleFunc("GET /external.js", s.handleShim)
	mux.HandleFunc("POST /invoke", s.handleInvoke)
	return mux
}

func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	opts := s.plugin.Config().Document
	opts.Scripts = append(slices.Clone(opts.Scripts), "/external.js")
	if script := s.script.Load(); script != nil {
		opts.Script = *script
	}

	doc, err := editor.Document(opts)
	if err != nil {
		s.logger.Error("render document: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	io.WriteString(w, doc)
}

func (s *server) handleShim(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	io.WriteString(w, externalShim)
}

func (s *server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCommandBytes))
	if err != nil {
		s.logger.Warn("invoke: %v", err)
		http.Error(w, "command too large", http.StatusRequestEntityTooLarge)
		return
	}
	response := s.session.Invoke(string(body))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, response)
}
