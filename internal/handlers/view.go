package handlers

import (
	"fmt"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type pageView struct {
	Description string
	Resume      *models.ResumeFile
	ResumeError string
	Match       matchView
	Notify      notifyView
	Refresh     bool
	MaxFileMB   int64
}

type matchView struct {
	Running bool
	Error   string
	Result  *resultView
}

type resultView struct {
	Match   string
	Summary string
	Band    services.Band
	Token   string
}

type notifyView struct {
	Running bool
	Error   string
	SentTo  string
	Enabled bool
}

func buildPageView(snap models.SessionSnapshot, maxFileSize int64) pageView {
	v := pageView{
		Description: snap.Description,
		Resume:      snap.Resume,
		ResumeError: snap.ResumeError,
		Match:       matchViewFor(snap.Match, snap.LastResult),
		Notify:      notifyViewFor(snap.Notify),
		MaxFileMB:   maxFileSize >> 20,
	}
	v.Notify.Enabled = snap.Resume != nil && !v.Notify.Running
	v.Refresh = v.Match.Running || v.Notify.Running
	return v
}

// matchViewFor shows the last result next to the flow state. A rejected
// submit keeps the previous result on screen.
func matchViewFor(state models.FlowState[models.MatchResult], last *models.MatchResult) matchView {
	var v matchView
	switch state.Status {
	case models.FlowIdle, models.FlowSucceeded:
	case models.FlowRunning:
		v.Running = true
	case models.FlowFailed:
		v.Error = state.Reason
	default:
		panic(fmt.Sprintf("unknown match flow status %q", state.Status))
	}

	if last != nil {
		band := services.BandFor(last.Match)
		v.Result = &resultView{
			Match:   last.Match,
			Summary: last.Summary,
			Band:    band,
			Token:   band.Style().Token,
		}
	}
	return v
}

func notifyViewFor(state models.FlowState[models.NotifyOutcome]) notifyView {
	switch state.Status {
	case models.FlowIdle:
		return notifyView{}
	case models.FlowRunning:
		return notifyView{Running: true}
	case models.FlowSucceeded:
		return notifyView{SentTo: state.Data.Email}
	case models.FlowFailed:
		return notifyView{Error: state.Reason}
	default:
		panic(fmt.Sprintf("unknown notify flow status %q", state.Status))
	}
}
