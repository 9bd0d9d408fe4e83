package services

import (
	"errors"
	"testing"

	"alfredoptarigan/resume-matcher/internal/models"
)

func TestValidateSubmission(t *testing.T) {
	resume := &models.ResumeFile{Filename: "cv.pdf"}

	tests := []struct {
		name        string
		description string
		resume      *models.ResumeFile
		want        error
	}{
		{name: "empty description", description: "", resume: resume, want: ErrMissingDescription},
		{name: "whitespace description", description: " \n\t ", resume: resume, want: ErrMissingDescription},
		{name: "description checked first", description: "", resume: nil, want: ErrMissingDescription},
		{name: "missing resume", description: "Go engineer", resume: nil, want: ErrMissingResume},
		{name: "valid", description: "Go engineer", resume: resume, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateSubmission(tt.description, tt.resume); !errors.Is(err, tt.want) {
				t.Fatalf("ValidateSubmission() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateResumeType(t *testing.T) {
	if err := ValidateResumeType("application/pdf"); err != nil {
		t.Fatalf("pdf rejected: %v", err)
	}
	for _, ct := range []string{"", "application/msword", "application/PDF", "application/pdf; charset=binary", "text/plain"} {
		if err := ValidateResumeType(ct); !errors.Is(err, ErrWrongType) {
			t.Errorf("ValidateResumeType(%q) = %v, want ErrWrongType", ct, err)
		}
	}
}
