package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/editor"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/uploader"
)

var (
	errUploadInProgress = errors.New("ya hay una subida en curso")
	errNoDocument       = errors.New("no hay ningún documento cargado")
	errQuotaExceeded    = errors.New("la cuota de IA se ha agotado; puedes seguir editando el texto manualmente")
	errNotImage         = errors.New("solo se admiten imágenes (PNG/JPG/JPEG)")
)

// openBlob and editText are test seams.
var (
	openBlob = uploader.Open
	editText = editor.Edit
)

const defaultExportPath = "documento.html"

// Upload sends one file for text extraction. While it is outstanding the
// document is in the loading state; on return it holds either the new text
// or only the error.
func (a *App) Upload(ctx context.Context, path string) error {
	if a.doc.IsLoading {
		return errUploadInProgress
	}
	if strings.TrimSpace(path) == "" {
		p, err := getSimpleText(a.in, "Ruta del archivo", a.out)
		if err != nil {
			return err
		}
		path = p
	}

	blob, err := openBlob(path)
	if err != nil {
		return err
	}
	defer blob.Close()
	if !blob.IsImage() {
		return fmt.Errorf("%s (%s): %w", blob.Name, blob.ContentType, errNotImage)
	}

	a.voice.Stop()
	a.doc = models.DocumentState{IsLoading: true, Source: blob.Path}

	doc, err := a.documentService.Upload(ctx, blob.Path, blob.Name, blob.ContentType, blob.WithProgress(a.out))
	doc.IsLoading = false
	doc.Source = blob.Path
	a.doc = doc

	if err != nil {
		if errors.Is(err, client.ErrQuotaExceeded) {
			a.setQuota(true)
		}
		return err
	}
	if doc.QuotaExceeded {
		a.setQuota(true)
	}
	return a.Show(ctx)
}

func (a *App) Show(ctx context.Context) error {
	return editor.RenderDocument(a.out, a.doc, a.text)
}

// Edit opens the text in the user's editor. Editing stays available even
// when AI verification is not.
func (a *App) Edit(ctx context.Context) error {
	if !a.doc.HasText() {
		return errNoDocument
	}
	text, err := editText(ctx, a.doc.Text, a.doc.IsLoading)
	if err != nil {
		return err
	}
	if text != a.doc.Text {
		a.voice.Stop()
		a.doc.Text = text
		printlnFn("Texto actualizado")
	}
	return nil
}

func (a *App) Compare(ctx context.Context) error {
	if !a.doc.HasText() {
		return errNoDocument
	}
	if a.doc.OriginalText == "" || a.doc.OriginalText == a.doc.Text {
		printlnFn("No hay diferencias con el texto original")
		return nil
	}
	return editor.Compare(a.out, a.doc.OriginalText, a.doc.Text, editor.TerminalWidth(), a.text)
}

// Verify asks the backend to correct the current text with AI. It is
// refused once the quota is known to be exhausted.
func (a *App) Verify(ctx context.Context) error {
	if !a.doc.HasText() {
		return errNoDocument
	}
	if a.quota() || a.doc.QuotaExceeded {
		return errQuotaExceeded
	}

	doc, err := a.documentService.Verify(ctx, a.doc)
	a.doc = doc
	if doc.QuotaExceeded {
		a.setQuota(true)
	}
	if err != nil {
		if errors.Is(err, client.ErrQuotaExceeded) {
			a.setQuota(true)
			return errQuotaExceeded
		}
		return err
	}
	a.voice.Stop()
	return a.Show(ctx)
}

// Export writes the document as a styled HTML page.
func (a *App) Export(ctx context.Context, path string) error {
	if !a.doc.HasContent() {
		return errNoDocument
	}
	if path == "" {
		path = defaultExportPath
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := editor.ExportHTML(f, a.doc, a.text); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Exportado a %s", path))
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	a.voice.Stop()
	a.doc = models.DocumentState{}
	return nil
}
