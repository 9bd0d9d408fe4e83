package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"alfredoptarigan/resume-matcher/internal/models"
)

//go:embed templates/result_email.html
var emailFS embed.FS

const (
	msgShortlisted    = "Your resume has been selected and moving forward!"
	msgNotShortlisted = "Unfortunately, you have not been shortlisted."
)

type EmailRenderer interface {
	Render(result *models.MatchResult) (string, error)
}

type emailRenderer struct {
	tmpl *template.Template
	now  func() time.Time
}

type verdict struct {
	Message    string
	Background template.CSS
	Foreground template.CSS
}

type emailData struct {
	Result        *models.MatchResult
	Band          BandStyle
	Verdict       verdict
	TipsThreshold int
	Year          int
}

func NewEmailRenderer(now func() time.Time) (EmailRenderer, error) {
	tmpl, err := template.ParseFS(emailFS, "templates/result_email.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}

	if now == nil {
		now = time.Now
	}

	return &emailRenderer{tmpl: tmpl, now: now}, nil
}

// Render builds the HTML body of the result email. result is the last
// stored match result and may be nil. Interpolated text is escaped.
func (r *emailRenderer) Render(result *models.MatchResult) (string, error) {
	data := emailData{
		Result:        result,
		TipsThreshold: TipsThreshold,
		Year:          r.now().Year(),
	}

	if result != nil {
		data.Band = BandFor(result.Match).Style()
		data.Verdict = verdictFor(result.Match)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}

	return buf.String(), nil
}

func verdictFor(match string) verdict {
	if Shortlisted(match) {
		pass := BandStrong.Style()
		return verdict{Message: msgShortlisted, Background: pass.Background, Foreground: pass.Foreground}
	}
	fail := BandWeak.Style()
	return verdict{Message: msgNotShortlisted, Background: fail.Background, Foreground: fail.Foreground}
}
