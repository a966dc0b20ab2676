package editor

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

// Preferred editor size in pixels.
const (
	DefaultWidth  = 480
	DefaultHeight = 500
)

// ContainerID is the element the UI bundle mounts into.
const ContainerID = "app"

// bundle is the control surface script inlined into the document. The
// checked-in copy is a plain fallback control; go generate replaces it with
// the gopherjs build of cmd/surface.
//
//go:generate gopherjs build -m -o assets/bundle.js github.com/justyntemme/simplegain/cmd/surface
//go:embed assets/bundle.js
var bundle string

// Bundle returns the embedded control surface script.
func Bundle() string { return bundle }

// DocumentOptions controls what goes into the editor document's head and body.
type DocumentOptions struct {
	Title       string
	Stylesheets []string // <link rel="stylesheet"> hrefs
	Scripts     []string // <script src> URLs, loaded before the bundle
	HeadCSS     string   // inline <style> body
	Script      string   // inline UI script; Bundle() when empty
}

// DefaultDocumentOptions returns the head resources the shipped UI expects:
// the element-ui theme and runtime plus the Baloo Tammudu 2 font.
func DefaultDocumentOptions() DocumentOptions {
	return DocumentOptions{
		Title:       "Simple Gain",
		Stylesheets: []string{"https://unpkg.com/element-ui/lib/theme-chalk/index.css"},
		Scripts:     []string{"https://unpkg.com/element-ui/lib/index.js"},
		HeadCSS:     "@import url('https://fonts.googleapis.com/css2?family=Baloo+Tammudu+2:wght@500&display=swap');",
	}
}

// html/template strips comments, and the conditional comments are the point.
var documentTemplate = template.Must(template.New("document").Parse(`<!doctype html>
<html>
    <head>
        <meta charset="utf-8">
        <meta name="viewport" content="width=device-width, initial-scale=1.0">
{{- if .Title}}
        <title>{{.Title}}</title>
{{- end}}
{{- range .Stylesheets}}
        <link rel="stylesheet" href="{{.}}">
{{- end}}
{{- range .Scripts}}
        <script src="{{.}}"></script>
{{- end}}
{{- if .HeadCSS}}
        <style>
            {{.HeadCSS}}
        </style>
{{- end}}
    </head>
    <body>
        <div id="{{.Container}}"></div>
        <!--[if lt IE 9]>
        <div class="ie-upgrade-container">
            <p class="ie-upgrade-message">Please, upgrade Internet Explorer to continue using this software.</p>
            <a class="ie-upgrade-link" target="_blank" href="https://www.microsoft.com/en-us/download/internet-explorer.aspx">Upgrade</a>
        </div>
        <![endif]-->
        <!--[if gte IE 9 | !IE ]> <!-->
        <script type="text/javascript">{{.Script}}</script>
        <![endif]-->
    </body>
</html>
`))

type documentData struct {
	DocumentOptions
	Container string
}

// Document renders the editor page handed to the host's web view.
func Document(opts DocumentOptions) (string, error) {
	if opts.Script == "" {
		opts.Script = bundle
	}
	if strings.Contains(strings.ToLower(opts.Script), "</script") {
		return "", fmt.Errorf("editor: inline script contains a closing script tag")
	}

	var b strings.Builder
	if err := documentTemplate.Execute(&b, documentData{DocumentOptions: opts, Container: ContainerID}); err != nil {
		return "", fmt.Errorf("editor: render document: %w", err)
	}
	return b.String(), nil
}
