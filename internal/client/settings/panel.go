// Package settings holds the editable draft behind the settings panel.
//
// A Panel keeps its own copy of the reader and text settings. Every edit is
// clamped, applied to the draft and pushed to the owner straight away so the
// document view previews it; Commit hands the draft over for persistence.
package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/speech"
)

// SampleText is read aloud by the voice test.
const SampleText = speech.TestSentence

var (
	ErrUnknownField = errors.New("unknown setting")
	ErrInvalidColor = errors.New("colour must be #rrggbb")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Callbacks connect the panel to its owner. Any of them may be nil.
type Callbacks struct {
	OnReaderChange func(models.ReaderSettings)
	OnTextChange   func(models.TextSettings)
	OnSave         func(context.Context, models.ReaderSettings, models.TextSettings) error
	StopSpeech     func()
}

type Panel struct {
	reader models.ReaderSettings
	text   models.TextSettings
	cb     Callbacks
}

func New(cb Callbacks) *Panel {
	return &Panel{
		reader: models.DefaultReaderSettings(),
		text:   models.DefaultTextSettings(),
		cb:     cb,
	}
}

// Load replaces the draft with fresh initial values from the owner.
func (p *Panel) Load(r models.ReaderSettings, t models.TextSettings) {
	p.reader = r.Clamped()
	p.text = t.Clamped()
}

func (p *Panel) Reader() models.ReaderSettings { return p.reader }

func (p *Panel) Text() models.TextSettings { return p.text }

// ReaderFields and TextFields name the editable fields.
var (
	ReaderFields = []string{"rate", "pitch", "volume", "voice"}
	TextFields   = []string{"size", "font", "color", "background"}
)

// SetReaderField parses raw into the named reader field. Numeric input
// that does not parse counts as 0 and is then clamped.
func (p *Panel) SetReaderField(name, raw string) error {
	r := p.reader
	switch strings.ToLower(name) {
	case "rate":
		r.Rate = parseFloat(raw)
	case "pitch":
		r.Pitch = parseFloat(raw)
	case "volume":
		r.Volume = parseFloat(raw)
	case "voice":
		r.Voice = strings.TrimSpace(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	p.stopSpeech()
	p.reader = r.Clamped()
	p.emitReader()
	return nil
}

// SetTextField parses raw into the named text field. A font size that is
// not a number becomes the default; an unknown family becomes Arial; an
// invalid colour is rejected and the draft keeps its previous value.
func (p *Panel) SetTextField(name, raw string) error {
	t := p.text
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(name) {
	case "size", "font_size":
		n, ok := parseLeadingInt(raw)
		if !ok || n == 0 {
			n = models.DefaultFontSize
		}
		t.FontSize = n
	case "font", "font_family":
		t.FontFamily = NormalizeFamily(raw)
	case "color", "text_color":
		if !hexColor.MatchString(raw) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, raw)
		}
		t.TextColor = strings.ToLower(raw)
	case "background", "background_color":
		if !hexColor.MatchString(raw) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, raw)
		}
		t.BackgroundColor = strings.ToLower(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	p.stopSpeech()
	p.text = t.Clamped()
	p.emitText()
	return nil
}

func (p *Panel) ResetReader() {
	p.stopSpeech()
	p.reader = models.DefaultReaderSettings()
	p.emitReader()
}

func (p *Panel) ResetText() {
	p.stopSpeech()
	p.text = models.DefaultTextSettings()
	p.emitText()
}

// Commit hands the current draft to the save callback.
func (p *Panel) Commit(ctx context.Context) error {
	if p.cb.OnSave == nil {
		return nil
	}
	return p.cb.OnSave(ctx, p.reader, p.text)
}

func (p *Panel) Sample() string { return SampleText }

func (p *Panel) stopSpeech() {
	if p.cb.StopSpeech != nil {
		p.cb.StopSpeech()
	}
}

func (p *Panel) emitReader() {
	if p.cb.OnReaderChange != nil {
		p.cb.OnReaderChange(p.reader)
	}
}

func (p *Panel) emitText() {
	if p.cb.OnTextChange != nil {
		p.cb.OnTextChange(p.text)
	}
}

// NormalizeFamily maps name onto the canonical spelling from
// models.FontFamilies, falling back to Arial.
func NormalizeFamily(name string) string {
	for _, f := range models.FontFamilies {
		if strings.EqualFold(f, strings.TrimSpace(name)) {
			return f
		}
	}
	return models.DefaultTextSettings().FontFamily
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLeadingInt reads an optional sign and the leading decimal digits of
// s, so "18px" gives 18.
func parseLeadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// overflow: saturate, the clamp does the rest
		if s[0] == '-' {
			return models.MinFontSize, true
		}
		return models.MaxFontSize, true
	}
	return n, true
}
