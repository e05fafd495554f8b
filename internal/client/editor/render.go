// Package editor shows, edits and exports the document text using the
// user's text settings.
package editor

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"golang.org/x/term"
)

// UnreviewedNotice marks text whose AI correction was attempted but did not
// come through.
const UnreviewedNotice = "✋ Esta es una versión sin revisar, podría contener errores"

const ansiReset = "\x1b[0m"

// rgb parses #rrggbb. ok is false for anything else.
func rgb(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// colorPrefix returns the 24-bit ANSI sequence for the given colours.
// Colours that do not parse are left to the terminal.
func colorPrefix(fg, bg string) string {
	var sb strings.Builder
	if r, g, b, ok := rgb(fg); ok {
		fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", r, g, b)
	}
	if r, g, b, ok := rgb(bg); ok {
		fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return sb.String()
}

// Render prints text in the settings' colours under a header naming the
// font. A terminal cannot change fonts, so family and size are informative.
func Render(w io.Writer, text string, s models.TextSettings) error {
	s = s.Clamped()
	prefix := colorPrefix(s.TextColor, s.BackgroundColor)

	if _, err := fmt.Fprintf(w, "[%s, %dpx]\n", s.FontFamily, s.FontSize); err != nil {
		return err
	}
	for _, line := range strings.Split(text, "\n") {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, line, ansiReset); err != nil {
			return err
		}
	}
	return nil
}

// RenderDocument prints doc preceded by its notices and description. An
// image without text shows only the description.
func RenderDocument(w io.Writer, doc models.DocumentState, s models.TextSettings) error {
	if doc.Error != "" {
		_, err := fmt.Fprintln(w, doc.Error)
		return err
	}
	if !doc.HasContent() && len(doc.Warnings) == 0 {
		_, err := fmt.Fprintln(w, "(sin documento)")
		return err
	}
	if doc.Unreviewed() {
		fmt.Fprintln(w, UnreviewedNotice)
	}
	for _, warn := range doc.Warnings {
		fmt.Fprintln(w, "⚠ "+warn)
	}
	if doc.Description != "" {
		fmt.Fprintln(w, doc.Description)
	}
	if !doc.HasText() {
		return nil
	}
	return Render(w, doc.Text, s)
}

// TerminalWidth returns the width of stdout, or 80 if it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
