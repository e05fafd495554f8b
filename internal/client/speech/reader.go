package speech

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
)

// Event reports the end of an utterance.
type Event struct {
	Err       error
	Cancelled bool
}

// VoiceReader plays one utterance at a time and toggles between reading and
// idle.
type VoiceReader struct {
	engine Engine

	mu      sync.Mutex
	reading bool
	cancel  context.CancelFunc
	gen     uint64
	voices  []Voice

	events chan Event
	wg     sync.WaitGroup
}

func NewVoiceReader(e Engine) *VoiceReader {
	return &VoiceReader{engine: e, events: make(chan Event, 1)}
}

func (v *VoiceReader) Supported() bool {
	return v.engine != nil && v.engine.Available()
}

func (v *VoiceReader) Reading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reading
}

// Events delivers one Event per finished utterance. Events are dropped if
// nobody drains the channel.
func (v *VoiceReader) Events() <-chan Event { return v.events }

// Toggle stops the current utterance if one is playing, otherwise starts
// reading text with s. It returns whether the reader is now reading.
func (v *VoiceReader) Toggle(ctx context.Context, text string, s models.ReaderSettings) (bool, error) {
	if !v.Supported() {
		return false, ErrUnsupported
	}

	v.mu.Lock()
	if v.reading {
		v.stopLocked()
		v.mu.Unlock()
		return false, nil
	}
	v.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return false, ErrNoText
	}
	v.start(ctx, text, s)
	return true, nil
}

// Test speaks the fixed sample sentence, replacing anything playing.
func (v *VoiceReader) Test(ctx context.Context, s models.ReaderSettings) error {
	if !v.Supported() {
		return ErrUnsupported
	}
	v.Stop()
	v.start(ctx, TestSentence, s)
	return nil
}

// Stop cancels the current utterance, if any.
func (v *VoiceReader) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
}

// Wait blocks until every started utterance has returned.
func (v *VoiceReader) Wait() { v.wg.Wait() }

func (v *VoiceReader) stopLocked() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.reading = false
}

func (v *VoiceReader) start(ctx context.Context, text string, s models.ReaderSettings) {
	s = s.Clamped()
	u := Utterance{
		Text:   text,
		Rate:   s.Rate,
		Pitch:  s.Pitch,
		Volume: s.Volume,
		Voice:  ResolveVoice(v.voiceList(ctx), s.Voice),
	}

	taskCtx, cancel := context.WithCancel(ctx)

	v.mu.Lock()
	v.stopLocked()
	v.gen++
	gen := v.gen
	v.cancel = cancel
	v.reading = true
	v.mu.Unlock()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()

		err := v.engine.Speak(taskCtx, u)
		ev := Event{Err: err}
		if errors.Is(err, context.Canceled) {
			ev = Event{Cancelled: true}
		}

		v.mu.Lock()
		if v.gen == gen {
			v.reading = false
			v.cancel = nil
		}
		v.mu.Unlock()

		select {
		case v.events <- ev:
		default:
		}
	}()
}

func (v *VoiceReader) voiceList(ctx context.Context) []Voice {
	v.mu.Lock()
	cached := v.voices
	v.mu.Unlock()
	if cached != nil {
		return cached
	}

	voices, err := v.engine.Voices(ctx)
	if err != nil || len(voices) == 0 {
		return nil
	}
	v.mu.Lock()
	v.voices = voices
	v.mu.Unlock()
	return voices
}

// ResolveVoice finds the first voice whose name or language contains want,
// ignoring case. Empty, "default" or unmatched names give "" (engine
// default).
func ResolveVoice(voices []Voice, want string) string {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" || want == models.DefaultVoice {
		return ""
	}
	for _, vc := range voices {
		if strings.Contains(strings.ToLower(vc.Name), want) || strings.Contains(strings.ToLower(vc.Lang), want) {
			return vc.Name
		}
	}
	return ""
}
