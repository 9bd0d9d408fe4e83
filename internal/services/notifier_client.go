package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	// SentinelDescription stands in for the job description when the
	// resume is only sent for email extraction.
	SentinelDescription = "Email extraction"
	ResultEmailSubject  = "Your Resume Match Results"
)

type NotifierClient interface {
	Analyze(ctx context.Context, resume ResumePayload) (string, error)
	SendEmail(ctx context.Context, msg models.SendEmailRequest) error
}

type notifierClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewNotifierClient(baseURL string, httpClient *http.Client, logger *zap.Logger) NotifierClient {
	return &notifierClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Analyze asks the notifier to extract the candidate's email address from
// the resume. An empty address is a failure, not an empty success.
func (c *notifierClient) Analyze(ctx context.Context, resume ResumePayload) (string, error) {
	body, contentType, err := buildResumeForm(resume, SentinelDescription)
	if err != nil {
		return "", fmt.Errorf("failed to build analyze form: %w", err)
	}

	url := c.baseURL + "/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("make request", zap.String("url", url), zap.String("resume", resume.Filename))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return "", &StatusError{Prefix: "Error", StatusCode: resp.StatusCode}
	}

	var payload models.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode analyze response: %w", err)
	}

	if payload.Email == "" {
		return "", ErrNoEmailFound
	}

	return payload.Email, nil
}

// SendEmail asks the notifier to deliver msg. Delivery counts only when the
// service answers 2xx with success set.
func (c *notifierClient) SendEmail(ctx context.Context, msg models.SendEmailRequest) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	url := c.baseURL + "/send-email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create send-email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("make request", zap.String("url", url), zap.String("to", msg.Email))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send-email request failed: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return &StatusError{Prefix: "Error sending email", StatusCode: resp.StatusCode}
	}

	var payload models.SendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode send-email response: %w", err)
	}

	if !payload.Success {
		if payload.Error != "" {
			return &SendError{Message: payload.Error}
		}
		return &SendError{Message: msgSendFailed}
	}

	return nil
}
