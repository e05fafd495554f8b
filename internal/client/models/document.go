package models

import "strings"

// Correction source tags reported by the backend.
const (
	SourceGemini = "gemini"
	SourceBasic  = "basic"
	// SourceNone prefixes tags such as "none (sin texto)" for uploads
	// where no correction ran.
	SourceNone = "none"
)

// DocumentState is the shell's view of the current document.
type DocumentState struct {
	Text                string
	OriginalText        string
	Description         string
	IsCorrected         bool
	CorrectionAttempted bool
	IsLoading           bool
	Error               string
	Warnings            []string
	QuotaExceeded       bool
	// Source is the local path of the uploaded file.
	Source string
}

// Unreviewed reports whether the AI correction was attempted but did not
// produce a reviewed text.
func (d DocumentState) Unreviewed() bool {
	return d.Text != "" && d.CorrectionAttempted && !d.IsCorrected
}

func (d DocumentState) HasText() bool {
	return d.Text != ""
}

// HasContent reports whether there is anything to show: extracted text or,
// for images without text, the server's description.
func (d DocumentState) HasContent() bool {
	return d.Text != "" || d.Description != ""
}

// ReadableText is what gets read aloud: the text, or the description when
// the image had no text.
func (d DocumentState) ReadableText() string {
	if d.Text != "" {
		return d.Text
	}
	return d.Description
}

// UploadResult is the /upload response.
type UploadResult struct {
	Status           string   `json:"status"`
	Type             string   `json:"type"`
	OriginalText     string   `json:"original_text"`
	CorrectedText    string   `json:"corrected_text"`
	Description      string   `json:"description"`
	CorrectionSource string   `json:"correction_source"`
	GeminiAvailable  *bool    `json:"gemini_available"`
	Warning          string   `json:"warning"`
	Warnings         []string `json:"warnings"`
}

// AllWarnings merges the single and list warning fields.
func (u UploadResult) AllWarnings() []string {
	out := make([]string, 0, len(u.Warnings)+1)
	if u.Warning != "" {
		out = append(out, u.Warning)
	}
	out = append(out, u.Warnings...)
	return out
}

// Document converts the upload response into a fresh DocumentState.
//
// The corrected text wins over the original when non-empty. The correction
// counts as attempted when the server says the AI service was available;
// when that flag is missing, a correction_source tag other than "none..."
// implies an attempt.
func (u UploadResult) Document(source string) DocumentState {
	text := u.CorrectedText
	if text == "" {
		text = u.OriginalText
	}

	attempted := u.CorrectionSource != "" && !strings.HasPrefix(u.CorrectionSource, SourceNone)
	if u.GeminiAvailable != nil {
		attempted = *u.GeminiAvailable
	}

	warnings := u.AllWarnings()
	return DocumentState{
		Text:                text,
		OriginalText:        u.OriginalText,
		Description:         u.Description,
		IsCorrected:         u.CorrectionSource == SourceGemini,
		CorrectionAttempted: attempted,
		Warnings:            warnings,
		QuotaExceeded:       MentionsQuota(warnings...),
		Source:              source,
	}
}

// VerifyResult is the /verify-text response.
type VerifyResult struct {
	OriginalText     string `json:"original_text"`
	CorrectedText    string `json:"corrected_text"`
	CorrectionSource string `json:"correction_source"`
	Warning          string `json:"warning"`
}

// APIStatus is the /api-status response.
type APIStatus struct {
	GeminiAvailable     bool   `json:"gemini_available"`
	LastError           string `json:"last_error"`
	ErrorCount          int    `json:"error_count"`
	LikelyQuotaExceeded bool   `json:"likely_quota_exceeded"`
}

// MentionsQuota reports whether any message talks about an exhausted quota.
func MentionsQuota(msgs ...string) bool {
	for _, m := range msgs {
		l := strings.ToLower(m)
		if strings.Contains(l, "cuota") || strings.Contains(l, "quota") {
			return true
		}
	}
	return false
}
