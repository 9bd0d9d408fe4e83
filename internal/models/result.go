package models

// AnalyzeResponse is the body returned by the notifier's /analyze endpoint.
type AnalyzeResponse struct {
	Email string `json:"email"`
}

type SendEmailRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type MatchRequest struct {
	JobDescription string `json:"jobDescription" form:"jobDescription"`
}

type AcceptedResponse struct {
	Message string          `json:"message"`
	Session SessionSnapshot `json:"session"`
}

type ResumeResponse struct {
	Message string      `json:"message"`
	Resume  *ResumeFile `json:"resume,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}
