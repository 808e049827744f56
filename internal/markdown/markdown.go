// Package markdown renders stories, which models often return with light
// markdown, as HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.Typographer),
)

// ToHTML converts markdown to an HTML fragment. Raw HTML in the input is
// omitted by goldmark's default renderer.
func ToHTML(md []byte) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert(md, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>body{max-width:38em;margin:3em auto;font:1.2em/1.7 Georgia,serif;color:#333;background:#fdfaf3}</style>
</head>
<body>
%s</body>
</html>
`

// Page renders md as a standalone HTML document titled title.
func Page(title string, md []byte) (string, error) {
	body, err := ToHTML(md)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body), nil
}
