package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	stops   int
	readers []models.ReaderSettings
	texts   []models.TextSettings
	saved   int
	saveErr error
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnReaderChange: func(s models.ReaderSettings) { r.readers = append(r.readers, s) },
		OnTextChange:   func(s models.TextSettings) { r.texts = append(r.texts, s) },
		OnSave: func(context.Context, models.ReaderSettings, models.TextSettings) error {
			r.saved++
			return r.saveErr
		},
		StopSpeech: func() { r.stops++ },
	}
}

func TestSetReaderField_ClampsAndPropagates(t *testing.T) {
	tests := []struct {
		field string
		raw   string
		get   func(models.ReaderSettings) float64
		want  float64
	}{
		{"rate", "25", func(s models.ReaderSettings) float64 { return s.Rate }, models.MaxRate},
		{"rate", "0", func(s models.ReaderSettings) float64 { return s.Rate }, models.MinRate},
		{"rate", "abc", func(s models.ReaderSettings) float64 { return s.Rate }, models.MinRate},
		{"rate", "1.5", func(s models.ReaderSettings) float64 { return s.Rate }, 1.5},
		{"pitch", "-3", func(s models.ReaderSettings) float64 { return s.Pitch }, models.MinPitch},
		{"pitch", "3", func(s models.ReaderSettings) float64 { return s.Pitch }, models.MaxPitch},
		{"volume", "0.25", func(s models.ReaderSettings) float64 { return s.Volume }, 0.25},
		{"volume", "7", func(s models.ReaderSettings) float64 { return s.Volume }, models.MaxVolume},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			rec := &recorder{}
			p := New(rec.callbacks())

			require.NoError(t, p.SetReaderField(tt.field, tt.raw))
			assert.Equal(t, tt.want, tt.get(p.Reader()))
			assert.Equal(t, 1, rec.stops)
			require.Len(t, rec.readers, 1)
			assert.Equal(t, p.Reader(), rec.readers[0])
			assert.Empty(t, rec.texts)
		})
	}
}

func TestSetTextField_FontSize(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"20", 20},
		{"18px", 18},
		{"abc", models.DefaultFontSize},
		{"", models.DefaultFontSize},
		{"500", models.MaxFontSize},
		{"2", models.MinFontSize},
		{"99999999999999999999999", models.MaxFontSize},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rec := &recorder{}
			p := New(rec.callbacks())
			require.NoError(t, p.SetTextField("size", tt.raw))
			assert.Equal(t, tt.want, p.Text().FontSize)
			require.Len(t, rec.texts, 1)
			assert.Equal(t, 1, rec.stops)
		})
	}
}

func TestSetTextField_FamilyAndColours(t *testing.T) {
	rec := &recorder{}
	p := New(rec.callbacks())

	require.NoError(t, p.SetTextField("font", "verdana"))
	assert.Equal(t, "Verdana", p.Text().FontFamily)

	require.NoError(t, p.SetTextField("font", "Papyrus"))
	assert.Equal(t, "Arial", p.Text().FontFamily)

	require.NoError(t, p.SetTextField("color", "#FFEE00"))
	assert.Equal(t, "#ffee00", p.Text().TextColor)

	err := p.SetTextField("background", "red")
	require.True(t, errors.Is(err, ErrInvalidColor))
	assert.Equal(t, "#ffffff", p.Text().BackgroundColor)
	assert.Len(t, rec.texts, 3)
}

func TestUnknownField(t *testing.T) {
	rec := &recorder{}
	p := New(rec.callbacks())
	require.ErrorIs(t, p.SetReaderField("speed", "1"), ErrUnknownField)
	require.ErrorIs(t, p.SetTextField("weight", "bold"), ErrUnknownField)
	assert.Zero(t, rec.stops)
}

func TestResetAndLoad(t *testing.T) {
	rec := &recorder{}
	p := New(rec.callbacks())

	p.Load(models.ReaderSettings{Rate: 3, Pitch: 0.5, Volume: 0.5, Voice: "es"}, models.TextSettings{FontSize: 100, FontFamily: "Lato", TextColor: "#111111", BackgroundColor: "#eeeeee"})
	assert.Equal(t, 3.0, p.Reader().Rate)
	assert.Equal(t, models.MaxFontSize, p.Text().FontSize)
	assert.Empty(t, rec.readers, "load does not echo back to the owner")

	p.ResetReader()
	assert.Equal(t, models.DefaultReaderSettings(), p.Reader())
	p.ResetText()
	assert.Equal(t, models.DefaultTextSettings(), p.Text())
	assert.Len(t, rec.readers, 1)
	assert.Len(t, rec.texts, 1)
	assert.Equal(t, 2, rec.stops)
}

func TestCommit(t *testing.T) {
	rec := &recorder{}
	p := New(rec.callbacks())
	require.NoError(t, p.Commit(context.Background()))
	assert.Equal(t, 1, rec.saved)

	rec.saveErr = errors.New("nope")
	require.Error(t, p.Commit(context.Background()))

	assert.NoError(t, New(Callbacks{}).Commit(context.Background()))
	assert.Equal(t, SampleText, p.Sample())
}
