package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/settings"
	"github.com/dmitrijs2005/accessdoc/internal/client/speech"
)

const msgSettingsSaved = "Ajustes guardados"

const settingsUsage = "Uso: settings [show | set <campo> <valor> | reset reader | reset text | font | save | test]\n" +
	"Campos de voz: rate (0.1-10), pitch (0-2), volume (0-1), voice\n" +
	"Campos de texto: size (7-72), font, color (#rrggbb), background (#rrggbb)"

// Settings drives the settings panel. Every change is applied to the
// shell at once; "save" persists the current values.
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		a.printSettings()
		return nil

	case "set":
		if len(args) < 3 {
			return errors.New(settingsUsage)
		}
		field, value := args[1], strings.Join(args[2:], " ")
		var err error
		switch name := strings.ToLower(field); {
		case slices.Contains(settings.ReaderFields, name):
			err = a.panel.SetReaderField(name, value)
		case slices.Contains(settings.TextFields, name):
			err = a.panel.SetTextField(name, value)
		default:
			return fmt.Errorf("%w: %q\n%s", settings.ErrUnknownField, field, settingsUsage)
		}
		if err != nil {
			return err
		}
		a.printSettings()
		return nil

	case "reset":
		if len(args) < 2 {
			return errors.New(settingsUsage)
		}
		switch args[1] {
		case "reader", "voz":
			a.panel.ResetReader()
		case "text", "texto":
			a.panel.ResetText()
		default:
			return errors.New(settingsUsage)
		}
		a.printSettings()
		return nil

	case "font":
		start := slices.Index(models.FontFamilies, a.panel.Text().FontFamily)
		idx, err := selectOption(a.in, a.out, "Fuente", models.FontFamilies, max(start, 0))
		if err != nil {
			return err
		}
		return a.panel.SetTextField("font", models.FontFamilies[idx])

	case "save":
		// the outcome is reported through the transient notice
		_ = a.panel.Commit(ctx)
		return nil

	case "test":
		if err := a.voice.Test(ctx, a.panel.Reader()); err != nil {
			if errors.Is(err, speech.ErrUnsupported) {
				printlnFn(speech.UnsupportedMessage)
				return nil
			}
			return err
		}
		return nil

	default:
		return errors.New(settingsUsage)
	}
}

func (a *App) applyReader(r models.ReaderSettings) {
	a.reader = r
}

func (a *App) applyText(t models.TextSettings) {
	a.text = t
}

// saveSettings persists both groups. Local values are kept whatever the
// outcome; the result is shown as a transient message.
func (a *App) saveSettings(ctx context.Context, r models.ReaderSettings, t models.TextSettings) error {
	if err := a.settingsService.Save(ctx, a.session, r, t); err != nil {
		a.notify(err.Error())
		return err
	}
	a.notify(msgSettingsSaved)
	return nil
}

func (a *App) printSettings() {
	r, t := a.reader, a.text
	printlnFn(fmt.Sprintf("Voz:   rate=%g pitch=%g volume=%g voice=%s", r.Rate, r.Pitch, r.Volume, r.Voice))
	printlnFn(fmt.Sprintf("Texto: size=%d font=%q color=%s background=%s", t.FontSize, t.FontFamily, t.TextColor, t.BackgroundColor))
}
