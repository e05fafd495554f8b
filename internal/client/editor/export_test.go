package editor

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHTML_Styled(t *testing.T) {
	var buf bytes.Buffer
	doc := models.DocumentState{Text: "# Título\n\nUn *párrafo*.", Source: "scan.png"}
	s := models.TextSettings{FontSize: 24, FontFamily: "Georgia", TextColor: "#112233", BackgroundColor: "#fafafa"}

	require.NoError(t, ExportHTML(&buf, doc, s))
	out := buf.String()
	assert.Contains(t, out, "<title>scan.png</title>")
	assert.Contains(t, out, "font-family: 'Georgia', sans-serif; font-size: 24px; color: #112233; background: #fafafa;")
	assert.Contains(t, out, "<h1>Título</h1>")
	assert.Contains(t, out, "<em>párrafo</em>")
}

func TestExportHTML_NoRawHTML(t *testing.T) {
	var buf bytes.Buffer
	doc := models.DocumentState{Text: "<script>alert(1)</script>\n\nhola <b>x</b>", Description: "<img src=x>"}
	s := models.TextSettings{FontSize: 16, FontFamily: "</style><script>", TextColor: "red;}", BackgroundColor: "#ffffff"}

	require.NoError(t, ExportHTML(&buf, doc, s))
	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "font-family: 'Arial'")
	assert.Contains(t, out, "color: #000000;")
}

func TestExportHTML_UnreviewedNotice(t *testing.T) {
	var buf bytes.Buffer
	doc := models.DocumentState{Text: "abc", CorrectionAttempted: true}
	require.NoError(t, ExportHTML(&buf, doc, models.DefaultTextSettings()))
	assert.Contains(t, buf.String(), "sin revisar")
}
