package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinaries are tried in order when no command is configured.
var DefaultBinaries = []string{"espeak-ng", "espeak"}

// lookPath is a test seam for exec.LookPath.
var lookPath = exec.LookPath

const (
	espeakBaseWPM = 175
	espeakMinWPM  = 80
	espeakMaxWPM  = 500
)

type EspeakEngine struct {
	bin string
}

// NewEspeakEngine resolves command (or the first of DefaultBinaries when
// empty) on PATH. The engine reports itself unavailable if nothing was
// found.
func NewEspeakEngine(command string) *EspeakEngine {
	candidates := DefaultBinaries
	if command != "" {
		candidates = []string{command}
	}
	for _, c := range candidates {
		if p, err := lookPath(c); err == nil {
			return &EspeakEngine{bin: p}
		}
	}
	return &EspeakEngine{}
}

func (e *EspeakEngine) Available() bool { return e != nil && e.bin != "" }

func (e *EspeakEngine) Voices(ctx context.Context) ([]Voice, error) {
	if !e.Available() {
		return nil, ErrUnsupported
	}
	out, err := exec.CommandContext(ctx, e.bin, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	return ParseVoices(out), nil
}

func (e *EspeakEngine) Speak(ctx context.Context, u Utterance) error {
	if !e.Available() {
		return ErrUnsupported
	}
	cmd := exec.CommandContext(ctx, e.bin, Args(u)...)
	cmd.Stdin = strings.NewReader(u.Text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("espeak: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Args maps an utterance onto espeak flags. The text itself goes on stdin.
func Args(u Utterance) []string {
	wpm := int(math.Round(u.Rate * espeakBaseWPM))
	wpm = min(max(wpm, espeakMinWPM), espeakMaxWPM)

	pitch := int(math.Round(u.Pitch * 50))
	pitch = min(max(pitch, 0), 99)

	amp := int(math.Round(u.Volume * 100))
	amp = min(max(amp, 0), 200)

	args := []string{
		"-s", strconv.Itoa(wpm),
		"-p", strconv.Itoa(pitch),
		"-a", strconv.Itoa(amp),
	}
	if u.Voice != "" {
		args = append(args, "-v", u.Voice)
	}
	return append(args, "--stdin")
}

// ParseVoices reads the table printed by `espeak --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  es              --/M      Spanish_(Spain)    roa/es
func ParseVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		f := strings.Fields(sc.Text())
		if len(f) < 4 {
			continue
		}
		voices = append(voices, Voice{Lang: f[1], Name: f[3]})
	}
	return voices
}
