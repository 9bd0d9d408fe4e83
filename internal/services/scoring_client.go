package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

type ScoringClient interface {
	Score(ctx context.Context, description string, resume ResumePayload) (*models.MatchResult, error)
}

type scoringClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewScoringClient(url string, httpClient *http.Client, logger *zap.Logger) ScoringClient {
	return &scoringClient{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

// scoreResponse accepts match as a JSON string or a bare number.
type scoreResponse struct {
	Match   json.RawMessage `json:"match"`
	Summary string          `json:"summary"`
}

// Score posts the resume and job description to the scoring service and
// returns its answer verbatim.
func (c *scoringClient) Score(ctx context.Context, description string, resume ResumePayload) (*models.MatchResult, error) {
	body, contentType, err := buildResumeForm(resume, description)
	if err != nil {
		return nil, fmt.Errorf("failed to build score form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("make request", zap.String("url", c.url), zap.String("resume", resume.Filename))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return nil, &StatusError{Prefix: "Error", StatusCode: resp.StatusCode}
	}

	var payload scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}

	result := &models.MatchResult{
		Match:   rawToString(payload.Match),
		Summary: payload.Summary,
	}

	c.logger.Debug("got score",
		zap.String("match", result.Match),
		zap.String("summary", logger.TruncateForLog(result.Summary, 80)),
	)

	return result, nil
}

func rawToString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
