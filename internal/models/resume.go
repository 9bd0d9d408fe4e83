package models

import "time"

const ResumeContentType = "application/pdf"

// ResumeFile is the resume currently selected in a session. The bytes live
// on disk under StoredName; Path is the absolute location.
type ResumeFile struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StoredName  string    `json:"-"`
	Path        string    `json:"-"`
	PageCount   int       `json:"page_count,omitempty"`
	SelectedAt  time.Time `json:"selected_at"`
}

// ResumeUpload is a resume as received from the browser, before selection.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
