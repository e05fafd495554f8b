package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
)

const minColumn = 10

// Compare prints original and corrected side by side in columns that fit
// width. It never changes either text.
func Compare(w io.Writer, original, corrected string, width int, s models.TextSettings) error {
	col := (width - 3) / 2
	if col < minColumn {
		col = minColumn
	}
	left := wrap(original, col)
	right := wrap(corrected, col)
	prefix := colorPrefix(s.TextColor, s.BackgroundColor)

	if _, err := fmt.Fprintf(w, "%-*s | %s\n", col, "Original", "Corregido"); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s-+-%s\n", strings.Repeat("-", col), strings.Repeat("-", col))

	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		pad := col - len([]rune(l))
		if _, err := fmt.Fprintf(w, "%s%s%s%s | %s%s%s\n", prefix, l, ansiReset, strings.Repeat(" ", pad), prefix, r, ansiReset); err != nil {
			return err
		}
	}
	return nil
}

// wrap breaks text into lines of at most width runes, preferring spaces.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := []rune{}
		for _, word := range strings.Fields(para) {
			wr := []rune(word)
			for len(wr) > width {
				if len(line) > 0 {
					out = append(out, string(line))
					line = line[:0]
				}
				out = append(out, string(wr[:width]))
				wr = wr[width:]
			}
			switch {
			case len(line) == 0:
				line = append(line, wr...)
			case len(line)+1+len(wr) <= width:
				line = append(line, ' ')
				line = append(line, wr...)
			default:
				out = append(out, string(line))
				line = append([]rune{}, wr...)
			}
		}
		out = append(out, string(line))
	}
	return out
}
