package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// stdinIsTerminal decides between the promptui widgets and plain line
// answers read from the shell's input.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// getSimpleText, getPassword, confirm and selectOption are indirections
// used to facilitate testing. They point to interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
	selectOption  = SelectOption
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Contraseña: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// Confirm asks a yes/no question. Declining is not an error.
//
// On a terminal it shows a promptui confirmation fed from reader, so input
// already buffered by the shell is not lost. Otherwise it prints the
// question to w and reads one answer line.
func Confirm(reader *bufio.Reader, w io.Writer, label string) (bool, error) {
	if !stdinIsTerminal() {
		fmt.Fprintf(w, "%s [s/N] ", label)
		line, err := readAnswer(reader)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "s", "si", "sí", "y", "yes":
			return true, nil
		}
		return false, nil
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(reader),
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SelectOption shows a picker over items and returns the chosen index.
// Without a terminal the items are listed on w and the answer is a 1-based
// number; an empty answer keeps start.
func SelectOption(reader *bufio.Reader, w io.Writer, label string, items []string, start int) (int, error) {
	if !stdinIsTerminal() {
		fmt.Fprintln(w, label)
		for i, it := range items {
			fmt.Fprintf(w, "  %d) %s\n", i+1, it)
		}
		fmt.Fprint(w, "> ")
		line, err := readAnswer(reader)
		if err != nil {
			return 0, err
		}
		if line == "" {
			return start, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(items) {
			return 0, fmt.Errorf("opción no válida: %q", line)
		}
		return n - 1, nil
	}

	s := promptui.Select{
		Label:     label,
		Items:     items,
		Size:      10,
		CursorPos: start,
		Stdin:     io.NopCloser(reader),
	}
	idx, _, err := s.Run()
	return idx, err
}

// readAnswer reads one trimmed line. A last line without newline counts.
func readAnswer(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
