package web

import "embed"

const (
	TemplateFile   = "templates/relatorio.html"
	StylesheetFile = "static/css/estilo.css"
)

// TemplatesFS embeds the default report template.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the default stylesheet.
//
//go:embed static/*
var StaticFS embed.FS

// DefaultTemplate returns the report template shipped with the binary.
func DefaultTemplate() ([]byte, error) {
	return TemplatesFS.ReadFile(TemplateFile)
}

// DefaultStylesheet returns the stylesheet shipped with the binary.
func DefaultStylesheet() ([]byte, error) {
	return StaticFS.ReadFile(StylesheetFile)
}
