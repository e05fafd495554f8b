package editor

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/settings"
	"github.com/yuin/goldmark"
)

var cssColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// md renders without raw HTML passthrough: tags in the OCR text come out
// as an omission comment, never as markup.
var md = goldmark.New()

const page = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: '%s', sans-serif; font-size: %dpx; color: %s; background: %s; line-height: 1.5; max-width: 48em; margin: 2em auto; }
.notice { border: 1px solid currentColor; padding: .5em; }
</style>
</head>
<body>
%s</body>
</html>
`

// ExportHTML writes doc as a standalone HTML page styled with s. The
// document text is treated as Markdown.
func ExportHTML(w io.Writer, doc models.DocumentState, s models.TextSettings) error {
	s = s.Clamped()
	def := models.DefaultTextSettings()
	if !cssColor.MatchString(s.TextColor) {
		s.TextColor = def.TextColor
	}
	if !cssColor.MatchString(s.BackgroundColor) {
		s.BackgroundColor = def.BackgroundColor
	}

	var body bytes.Buffer
	if doc.Unreviewed() {
		fmt.Fprintf(&body, "<p class=\"notice\">%s</p>\n", html.EscapeString(UnreviewedNotice))
	}
	if doc.Description != "" {
		fmt.Fprintf(&body, "<p><em>%s</em></p>\n", html.EscapeString(doc.Description))
	}
	if err := md.Convert([]byte(doc.Text), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	title := "Documento"
	if doc.Source != "" {
		title = doc.Source
	}
	_, err := fmt.Fprintf(w, page,
		html.EscapeString(title),
		settings.NormalizeFamily(s.FontFamily),
		s.FontSize,
		s.TextColor,
		s.BackgroundColor,
		body.String(),
	)
	return err
}
