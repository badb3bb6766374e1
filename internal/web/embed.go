package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(embeddedTemplates, "templates/*.tmpl")
}

// AssetsFS exposes the static assets served under /static/.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
