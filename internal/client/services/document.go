package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
)

const msgUploadFailed = "Error al procesar el archivo"

// ErrNothingToVerify is returned by Verify for an empty text.
var ErrNothingToVerify = errors.New("no hay texto para verificar")

// DocumentService runs uploads and AI verification against the backend.
type DocumentService interface {
	Upload(ctx context.Context, source, name, contentType string, r io.Reader) (models.DocumentState, error)
	Verify(ctx context.Context, doc models.DocumentState) (models.DocumentState, error)
	Status(ctx context.Context) (*models.APIStatus, error)
}

type documentService struct {
	client client.Client
	log    logging.Logger
}

func NewDocumentService(c client.Client, log logging.Logger) DocumentService {
	return &documentService{client: c, log: log}
}

// Upload sends the file and converts the response into a fresh document.
// On failure the returned state carries only the error message.
func (d *documentService) Upload(ctx context.Context, source, name, contentType string, r io.Reader) (models.DocumentState, error) {
	res, err := d.client.Upload(ctx, name, contentType, r)
	if err != nil {
		d.log.Warn(ctx, "upload failed", "file", name, "error", err)
		msg := msgUploadFailed
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			msg = apiErr.Detail
		}
		return models.DocumentState{Error: msg}, &MessageError{Msg: msg, Err: err}
	}

	doc := res.Document(source)
	d.log.Info(ctx, "document processed", "file", name, "chars", len(doc.Text), "corrected", doc.IsCorrected, "warnings", len(doc.Warnings))
	return doc, nil
}

// Verify asks the backend to correct the current text. The original text
// of doc is preserved; a quota failure latches QuotaExceeded.
func (d *documentService) Verify(ctx context.Context, doc models.DocumentState) (models.DocumentState, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return doc, ErrNothingToVerify
	}
	if doc.QuotaExceeded {
		return doc, client.ErrQuotaExceeded
	}

	res, err := d.client.VerifyText(ctx, doc.Text)
	if err != nil {
		if errors.Is(err, client.ErrQuotaExceeded) {
			doc.QuotaExceeded = true
		}
		return doc, err
	}

	doc.CorrectionAttempted = true
	if res.CorrectedText != "" {
		doc.Text = res.CorrectedText
	}
	doc.IsCorrected = res.CorrectionSource == models.SourceGemini
	if res.Warning != "" {
		doc.Warnings = append(doc.Warnings, res.Warning)
		if models.MentionsQuota(res.Warning) {
			doc.QuotaExceeded = true
		}
	}
	return doc, nil
}

func (d *documentService) Status(ctx context.Context) (*models.APIStatus, error) {
	return d.client.Status(ctx)
}
