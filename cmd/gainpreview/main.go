// Command gainpreview hosts Simple Gain outside a DAW for UI work. It serves
// the editor document over HTTP, so the control surface runs in a browser,
// and stands in for the host in the terminal: the console shows the gain and
// output level and every edit the UI reports, and the arrow keys automate
// the gain the way a host would.
//
//	gainpreview -addr localhost:8480 -bundle pkg/editor/assets/bundle.js
//
// With -bundle the script is re-read on every write, so a gopherjs rebuild
// shows up on the next page load.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/simplegain/pkg/framework/debug"
	"github.com/justyntemme/simplegain/pkg/framework/host"
	"github.com/justyntemme/simplegain/pkg/plugin"
)

type options struct {
	addr     string
	bundle   string
	logFile  string
	logLevel string
	gain     float64
	maxGain  float64
}

func parseFlags(args []string) (options, error) {
	def := plugin.DefaultConfig()
	o := options{}
	fs := flag.NewFlagSet("gainpreview", flag.ContinueOnError)
	fs.StringVar(&o.addr, "addr", "localhost:8480", "HTTP listen address for the editor")
	fs.StringVar(&o.bundle, "bundle", "", "UI script to serve and reload on change (default: embedded bundle)")
	fs.StringVar(&o.logFile, "log", "gainpreview.log", "log file; the terminal belongs to the console")
	fs.StringVar(&o.logLevel, "level", "info", "log level: debug, info, warn, error")
	fs.Float64Var(&o.gain, "gain", float64(def.DefaultGain), "initial gain")
	fs.Float64Var(&o.maxGain, "max", float64(def.MaxGain), "maximum gain")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func parseLevel(s string) (debug.LogLevel, error) {
	for l := debug.LogLevelDebug; l <= debug.LogLevelError; l++ {
		if strings.EqualFold(l.String(), s) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gainpreview:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	level, err := parseLevel(o.logLevel)
	if err != nil {
		return err
	}

	logger, err := debug.NewFileLogger(o.logFile, "gainpreview", debug.DefaultFlags)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.SetLevel(level)

	cfg := plugin.DefaultConfig()
	cfg.DefaultGain = float32(o.gain)
	cfg.MaxGain = float32(o.maxGain)

	rec := &host.Recorder{}
	p, err := plugin.New(rec, plugin.WithConfig(cfg), plugin.WithLogger(logger))
	if err != nil {
		return err
	}
	handle := plugin.Register(p)
	defer plugin.Release(handle)

	if err := p.Initialize(sampleRate, int32(blockSize)); err != nil {
		return err
	}
	if err := p.SetActive(true); err != nil {
		return err
	}
	defer p.SetActive(false)

	events := make(chan host.Event, 64)
	p.Host().Observe(func(ev host.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	srv, err := newServer(p, logger.Named("http"))
	if err != nil {
		return err
	}
	defer srv.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads chan int
	if o.bundle != "" {
		reloads = make(chan int, 1)
		script, err := watchBundle(ctx, o.bundle, logger.Named("watch"), func(script string) {
			srv.setScript(script)
			select {
			case reloads <- len(script):
			default:
			}
		})
		if err != nil {
			return err
		}
		srv.setScript(script)
	}

	ln, err := net.Listen("tcp", o.addr)
	if err != nil {
		return err
	}
	httpServer := &http.Server{Handler: srv.routes(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http: %v", err)
		}
	}()
	logger.Info("editor at http://%s", ln.Addr())

	_, runErr := tea.NewProgram(newConsole(p, ln.Addr().String(), events, reloads), tea.WithAltScreen()).Run()

	shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown: %v", err)
	}
	logger.Info("automation events seen by host: %d", rec.Count(host.EventAutomate))
	return runErr
}
