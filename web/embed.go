package web

import "embed"

// TemplatesFS embeds the HTML page templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (css/images) copied next to the pages.
//
//go:embed static/*
var StaticFS embed.FS
