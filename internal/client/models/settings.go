package models

import "strconv"

// Clamp ranges for the numeric settings.
const (
	MinRate     = 0.1
	MaxRate     = 10.0
	MinPitch    = 0.0
	MaxPitch    = 2.0
	MinVolume   = 0.0
	MaxVolume   = 1.0
	MinFontSize = 7
	MaxFontSize = 72

	DefaultFontSize = 16
	DefaultVoice    = "default"
)

// FontFamilies lists the families the settings panel offers.
var FontFamilies = []string{
	"Arial", "Verdana", "Georgia", "Courier New", "Tahoma", "Trebuchet MS",
	"Times New Roman", "Lucida Console", "Comic Sans MS", "Impact", "Segoe UI",
	"Roboto", "Open Sans", "Lato", "Ubuntu", "Monospace", "Helvetica",
}

// ReaderSettings are the voice parameters used for read-aloud.
type ReaderSettings struct {
	Rate   float64
	Pitch  float64
	Volume float64
	Voice  string
}

// TextSettings are the visual parameters of the document view.
type TextSettings struct {
	FontSize        int
	FontFamily      string
	TextColor       string
	BackgroundColor string
}

func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{Rate: 1, Pitch: 1, Volume: 1, Voice: DefaultVoice}
}

func DefaultTextSettings() TextSettings {
	return TextSettings{
		FontSize:        DefaultFontSize,
		FontFamily:      "Arial",
		TextColor:       "#000000",
		BackgroundColor: "#ffffff",
	}
}

// Clamped returns a copy with every numeric field inside its range.
func (r ReaderSettings) Clamped() ReaderSettings {
	r.Rate = ClampFloat(r.Rate, MinRate, MaxRate)
	r.Pitch = ClampFloat(r.Pitch, MinPitch, MaxPitch)
	r.Volume = ClampFloat(r.Volume, MinVolume, MaxVolume)
	if r.Voice == "" {
		r.Voice = DefaultVoice
	}
	return r
}

// Clamped returns a copy with FontSize inside [MinFontSize, MaxFontSize].
func (t TextSettings) Clamped() TextSettings {
	t.FontSize = ClampInt(t.FontSize, MinFontSize, MaxFontSize)
	return t
}

func ClampFloat(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SettingsPayload is the wire shape of /me/settings. The backend stores
// every field as a string.
type SettingsPayload struct {
	FontSize        FlexString `json:"font_size"`
	FontFamily      string     `json:"font_family"`
	TextColor       string     `json:"text_color"`
	BackgroundColor string     `json:"background_color"`
	Rate            FlexString `json:"rate"`
	Pitch           FlexString `json:"pitch"`
	Volume          FlexString `json:"volume"`
}

// NewSettingsPayload converts local settings to the wire shape.
func NewSettingsPayload(r ReaderSettings, t TextSettings) SettingsPayload {
	return SettingsPayload{
		FontSize:        FlexString(strconv.Itoa(t.FontSize)),
		FontFamily:      t.FontFamily,
		TextColor:       t.TextColor,
		BackgroundColor: t.BackgroundColor,
		Rate:            FlexString(formatFloat(r.Rate)),
		Pitch:           FlexString(formatFloat(r.Pitch)),
		Volume:          FlexString(formatFloat(r.Volume)),
	}
}

// Settings converts the payload back into clamped local settings. Fields
// that do not parse keep their defaults. The voice is never persisted
// server-side, so it is always the default.
func (p SettingsPayload) Settings() (ReaderSettings, TextSettings) {
	r := DefaultReaderSettings()
	t := DefaultTextSettings()

	if v, err := strconv.ParseFloat(string(p.Rate), 64); err == nil {
		r.Rate = v
	}
	if v, err := strconv.ParseFloat(string(p.Pitch), 64); err == nil {
		r.Pitch = v
	}
	if v, err := strconv.ParseFloat(string(p.Volume), 64); err == nil {
		r.Volume = v
	}
	if v, err := strconv.Atoi(string(p.FontSize)); err == nil {
		t.FontSize = v
	}
	if p.FontFamily != "" {
		t.FontFamily = p.FontFamily
	}
	if p.TextColor != "" {
		t.TextColor = p.TextColor
	}
	if p.BackgroundColor != "" {
		t.BackgroundColor = p.BackgroundColor
	}
	return r.Clamped(), t.Clamped()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
