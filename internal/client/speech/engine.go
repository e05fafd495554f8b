// Package speech reads document text aloud through the host's speech
// synthesiser.
//
// Engine is the synthesiser seam; EspeakEngine drives the espeak-ng (or
// classic espeak) binary. VoiceReader layers the play/stop toggle on top
// and guarantees at most one utterance at a time.
package speech

import (
	"context"
	"errors"
)

const (
	// UnsupportedMessage is shown when no synthesiser is installed.
	UnsupportedMessage = "Tu sistema no soporta la síntesis de voz."
	// TestSentence is spoken by VoiceReader.Test.
	TestSentence = "Esta es una prueba de voz con los ajustes actuales."
)

var (
	ErrUnsupported = errors.New("speech synthesis not supported")
	ErrNoText      = errors.New("nothing to read")
)

type Voice struct {
	Name string
	Lang string
}

// Utterance is one request to speak. Rate and Pitch use the reader
// settings scale (1 is normal); Volume is in [0, 1]. An empty Voice means
// the engine default.
type Utterance struct {
	Text   string
	Rate   float64
	Pitch  float64
	Volume float64
	Voice  string
}

type Engine interface {
	Available() bool
	Voices(ctx context.Context) ([]Voice, error)
	// Speak blocks until the utterance has finished or ctx is done.
	Speak(ctx context.Context, u Utterance) error
}
