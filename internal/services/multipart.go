package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

// ResumePayload is a selected resume ready to be sent: its declared name
// and media type plus a reader over the stored bytes.
type ResumePayload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func payloadFor(resume *models.ResumeFile, body io.Reader) ResumePayload {
	return ResumePayload{
		Filename:    resume.Filename,
		ContentType: resume.ContentType,
		Body:        body,
	}
}

// buildResumeForm encodes the resume and a job description the way the
// browser form does: a "resume" file part carrying the declared media type
// and a "jobDescription" text field.
func buildResumeForm(resume ResumePayload, description string) (*bytes.Buffer, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, escapeQuotes(resume.Filename)))
	h.Set("Content-Type", resume.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, resume.Body); err != nil {
		return nil, "", fmt.Errorf("failed to copy resume into form: %w", err)
	}

	field, err := w.CreateFormField("jobDescription")
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(field, strings.NewReader(description)); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &b, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
