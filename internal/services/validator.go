package services

import (
	"errors"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

var (
	ErrMissingDescription = errors.New("Please enter a job description.")
	ErrMissingResume      = errors.New("Please upload a resume.")
	ErrWrongType          = errors.New("Please upload a PDF file only.")
	ErrNoResumeForNotify  = errors.New("Please upload a resume to extract email from.")
)

// ValidateSubmission checks the match form. Only the first problem is
// reported: the description is checked before the resume.
func ValidateSubmission(description string, resume *models.ResumeFile) error {
	if strings.TrimSpace(description) == "" {
		return ErrMissingDescription
	}
	if resume == nil {
		return ErrMissingResume
	}
	return nil
}

// ValidateResumeType accepts exactly the PDF media type. It runs when a
// file is selected, independent of any submit.
func ValidateResumeType(contentType string) error {
	if contentType != models.ResumeContentType {
		return ErrWrongType
	}
	return nil
}

func validateNotify(resume *models.ResumeFile) error {
	if resume == nil {
		return ErrNoResumeForNotify
	}
	return nil
}
