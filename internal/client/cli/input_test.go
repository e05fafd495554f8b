package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  ana \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Usuario", &out)
	require.NoError(t, err)
	require.Equal(t, "ana", got)
	require.Equal(t, "Usuario\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("secreto"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "secreto", string(pw))
	require.Equal(t, "Contraseña: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func lineInput(t *testing.T, s string) *bufio.Reader {
	t.Helper()
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })
	return bufio.NewReader(strings.NewReader(s))
}

func TestConfirm_FromShellInput(t *testing.T) {
	in := lineInput(t, "s\nno\nYes\n")
	var out bytes.Buffer

	for _, want := range []bool{true, false, true} {
		ok, err := Confirm(in, &out, "¿Seguro?")
		require.NoError(t, err)
		require.Equal(t, want, ok)
	}
	require.Equal(t, strings.Repeat("¿Seguro? [s/N] ", 3), out.String())

	_, err := Confirm(in, &out, "¿Seguro?")
	require.ErrorIs(t, err, io.EOF)
}

func TestConfirm_LeavesFollowingLinesBuffered(t *testing.T) {
	in := lineInput(t, "s\nshow\n")
	ok, err := Confirm(in, io.Discard, "¿Seguro?")
	require.NoError(t, err)
	require.True(t, ok)

	rest, err := in.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "show\n", rest)
}

func TestSelectOption_FromShellInput(t *testing.T) {
	items := []string{"Arial", "Verdana", "Georgia"}
	var out bytes.Buffer

	idx, err := SelectOption(lineInput(t, "3\n"), &out, "Fuente", items, 0)
	require.NoError(t, err)
	require.Equal(t, 2, idx)
	require.Contains(t, out.String(), "  2) Verdana\n")

	idx, err = SelectOption(lineInput(t, "\n"), io.Discard, "Fuente", items, 1)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	_, err = SelectOption(lineInput(t, "9\n"), io.Discard, "Fuente", items, 0)
	require.Error(t, err)
}
