package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/simplegain/pkg/dsp/gain"
	"github.com/justyntemme/simplegain/pkg/framework/debug"
	"github.com/justyntemme/simplegain/pkg/framework/host"
	"github.com/justyntemme/simplegain/pkg/plugin"
)

const (
	tickInterval = 50 * time.Millisecond
	sampleRate   = 48000
	blockSize    = sampleRate * int(tickInterval/time.Millisecond) / 1000
	toneHz       = 440
	toneLevel    = 0.5
	automateStep = 0.05
	historySize  = 8
	barWidth     = 40
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8fd"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	clipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f55")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

type tickMsg time.Time

type hostEventMsg host.Event

type reloadMsg int

// console is the terminal side of the preview host: it plays a test tone
// through the plugin, shows the gain and output level, lists what the UI
// told the host, and lets the operator automate the gain like a DAW would.
type console struct {
	plugin  *plugin.Plugin
	addr    string
	events  <-chan host.Event
	reloads <-chan int

	meter   *debug.Meter
	in, out [][]float32
	phase   float64

	history  []string
	reloaded int
	quitting bool
}

func newConsole(p *plugin.Plugin, addr string, events <-chan host.Event, reloads <-chan int) *console {
	return &console{
		plugin:  p,
		addr:    addr,
		events:  events,
		reloads: reloads,
		meter:   &debug.Meter{},
		in:      [][]float32{make([]float32, blockSize), make([]float32, blockSize)},
		out:     [][]float32{make([]float32, blockSize), make([]float32, blockSize)},
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func listenForEvents(events <-chan host.Event) tea.Cmd {
	return func() tea.Msg {
		return hostEventMsg(<-events)
	}
}

func listenForReloads(reloads <-chan int) tea.Cmd {
	return func() tea.Msg {
		return reloadMsg(<-reloads)
	}
}

func (m *console) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), listenForEvents(m.events)}
	if m.reloads != nil {
		cmds = append(cmds, listenForReloads(m.reloads))
	}
	return tea.Batch(cmds...)
}

func (m *console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k", "+":
			m.automate(m.plugin.Parameter(plugin.ParamGain) + automateStep)
		case "down", "j", "-":
			m.automate(m.plugin.Parameter(plugin.ParamGain) - automateStep)
		case "0":
			m.automate(0)
		case "1":
			m.automate(1)
		case "r":
			m.meter.Reset()
		}

	case tickMsg:
		m.render()
		return m, tick()

	case hostEventMsg:
		m.record(formatEvent(host.Event(msg)))
		return m, listenForEvents(m.events)

	case reloadMsg:
		m.reloaded++
		m.record(fmt.Sprintf("bundle reloaded (%d bytes)", int(msg)))
		return m, listenForReloads(m.reloads)
	}
	return m, nil
}

// automate changes the gain the way host automation does: straight into the
// store, without a notification back to the host.
func (m *console) automate(v float32) {
	m.plugin.SetParameter(plugin.ParamGain, v)
	m.record(fmt.Sprintf("host automation -> %s", m.plugin.Parameters().DisplayText(plugin.ParamGain)))
}

// render pushes one block of the test tone through the plugin.
func (m *console) render() {
	step := 2 * math.Pi * toneHz / sampleRate
	for i := range m.in[0] {
		s := float32(toneLevel * math.Sin(m.phase))
		m.in[0][i], m.in[1][i] = s, s
		m.phase += step
	}
	m.phase = math.Mod(m.phase, 2*math.Pi)

	m.plugin.Process(m.in, m.out)
	m.meter.Update(m.out[0], m.out[1])
}

func (m *console) record(line string) {
	m.history = append(m.history, time.Now().Format("15:04:05.000")+"  "+line)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func formatEvent(ev host.Event) string {
	if ev.Kind == host.EventAutomate {
		return fmt.Sprintf("ui %s(%d) = %.3f", ev.Kind, ev.Index, ev.Value)
	}
	return fmt.Sprintf("ui %s(%d)", ev.Kind, ev.Index)
}

func levelBar(v, full float32) string {
	filled := 0
	if full > 0 {
		filled = int(float32(barWidth) * min(max(v/full, 0), 1))
	}
	return valueStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("·", barWidth-filled))
}

func (m *console) View() string {
	if m.quitting {
		return ""
	}

	params := m.plugin.Parameters()
	g := params.Get(plugin.ParamGain)
	maxGain := params.At(plugin.ParamGain).Max

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.plugin.Info().Name) + statusStyle.Render("  editor at http://"+m.addr) + "\n\n")

	fmt.Fprintf(&b, "gain   %s  %s %s\n", levelBar(g, maxGain),
		valueStyle.Render(params.DisplayText(plugin.ParamGain)),
		dimStyle.Render(fmt.Sprintf("(%.1f dB)", gain.LinearToDb32(g))))

	for ch, name := range []string{"L", "R"} {
		peak := m.meter.Peak(ch)
		line := fmt.Sprintf("%s out  %s  %.3f", name, levelBar(m.meter.RMS(ch), 1), peak)
		if clipped := m.meter.Clipped(ch); clipped > 0 {
			line += clipStyle.Render(fmt.Sprintf("  CLIP %d", clipped))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if len(m.history) == 0 {
		b.WriteString(dimStyle.Render("no host events yet") + "\n")
	}
	for _, line := range m.history {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + statusStyle.Render("↑/↓ automate  0 mute  1 unity  r reset meter  q quit"))
	if m.reloaded > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  bundle reloads: %d", m.reloaded)))
	}
	return b.String() + "\n"
}
