//go:build js
// +build js

// Command surface is the Simple Gain control surface, compiled to JavaScript
// with gopherjs and inlined into the editor document:
//
//	go generate ./pkg/editor
//
// It talks to the plugin only through external.invoke.
package main

import (
	"strconv"
	"time"

	"github.com/gopherjs/gopherjs/js"
)

const (
	maxGain      = 4.0
	pollInterval = 250 * time.Millisecond
)

func invoke(message string) string {
	external := js.Global.Get("external")
	if external == js.Undefined || external == nil || external.Get("invoke") == js.Undefined {
		return ""
	}
	res := external.Call("invoke", message)
	if res == js.Undefined || res == nil {
		return ""
	}
	return res.String()
}

type surface struct {
	slider  *js.Object
	readout *js.Object
	editing bool
}

func (s *surface) refresh() {
	text := invoke("getGain")
	if text == "" {
		return
	}
	if _, err := strconv.ParseFloat(text, 32); err != nil {
		return
	}
	if !s.editing {
		s.slider.Set("value", text)
	}
	s.readout.Set("textContent", text)
}

func main() {
	doc := js.Global.Get("document")
	root := doc.Call("getElementById", "app")
	if root == nil || root == js.Undefined {
		panic("app element not found")
	}
	style := root.Get("style")
	style.Set("fontFamily", "'Baloo Tammudu 2', sans-serif")
	style.Set("textAlign", "center")
	style.Set("paddingTop", "120px")

	title := doc.Call("createElement", "h2")
	title.Set("textContent", "Simple Gain")

	slider := doc.Call("createElement", "input")
	slider.Set("type", "range")
	slider.Set("min", "0")
	slider.Set("max", strconv.FormatFloat(maxGain, 'f', -1, 64))
	slider.Set("step", "0.001")
	slider.Get("style").Set("width", "360px")

	readout := doc.Call("createElement", "p")

	s := &surface{slider: slider, readout: readout}

	slider.Call("addEventListener", "mouseenter", func(*js.Object) {
		invoke("mouseOverGain")
	})
	slider.Call("addEventListener", "mouseleave", func(*js.Object) {
		invoke("releaseGain")
	})
	slider.Call("addEventListener", "mousedown", func(*js.Object) { s.editing = true })
	slider.Call("addEventListener", "mouseup", func(*js.Object) { s.editing = false })
	slider.Call("addEventListener", "input", func(*js.Object) {
		invoke("setGain " + slider.Get("value").String())
		s.refresh()
	})

	root.Call("appendChild", title)
	root.Call("appendChild", slider)
	root.Call("appendChild", readout)

	s.refresh()
	js.Global.Call("setInterval", s.refresh, int(pollInterval/time.Millisecond))
}
