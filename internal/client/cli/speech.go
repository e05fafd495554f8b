package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/accessdoc/internal/client/speech"
)

// Read toggles read-aloud of the current document.
func (a *App) Read(ctx context.Context) error {
	if !a.voice.Supported() {
		printlnFn(speech.UnsupportedMessage)
		return nil
	}
	if !a.doc.HasContent() && !a.voice.Reading() {
		return errNoDocument
	}

	reading, err := a.voice.Toggle(ctx, a.doc.ReadableText(), a.reader)
	if err != nil {
		if errors.Is(err, speech.ErrUnsupported) {
			printlnFn(speech.UnsupportedMessage)
			return nil
		}
		return err
	}
	if reading {
		printlnFn("Leyendo… (escribe 'stop' o 'read' para detener)")
	} else {
		printlnFn("Lectura detenida")
	}
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	a.voice.Stop()
	return nil
}

// watchSpeech logs how each utterance ended until ctx is done.
func (a *App) watchSpeech(ctx context.Context) {
	for {
		select {
		case ev := <-a.voice.Events():
			if ev.Err != nil {
				a.log.Warn(ctx, "speech failed", "error", ev.Err)
			} else {
				a.log.Debug(ctx, "speech finished", "cancelled", ev.Cancelled)
			}
		case <-ctx.Done():
			return
		}
	}
}
