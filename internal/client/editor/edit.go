package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var ErrReadOnly = errors.New("el texto es de solo lectura")

// runEditor is a test seam; it opens path in the given editor and waits.
var runEditor = func(ctx context.Context, editor, path string) error {
	parts := strings.Fields(editor)
	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// EditorCommand picks $VISUAL, then $EDITOR, then vi.
func EditorCommand() string {
	for _, k := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return "vi"
}

// Edit hands text to the user's editor through a temporary file and
// returns the edited result.
func Edit(ctx context.Context, text string, readOnly bool) (string, error) {
	if readOnly {
		return text, ErrReadOnly
	}

	f, err := os.CreateTemp("", "accessdoc-*.txt")
	if err != nil {
		return text, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return text, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return text, err
	}

	if err := runEditor(ctx, EditorCommand(), path); err != nil {
		return text, fmt.Errorf("run editor: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return text, fmt.Errorf("read temp file: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}
