package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

func idleSnapshot() models.SessionSnapshot {
	return models.SessionSnapshot{
		Match:  models.Idle[models.MatchResult](),
		Notify: models.Idle[models.NotifyOutcome](),
	}
}

func TestBuildPageViewIdle(t *testing.T) {
	v := buildPageView(idleSnapshot(), 10<<20)

	assert.False(t, v.Refresh)
	assert.False(t, v.Notify.Enabled)
	assert.Nil(t, v.Match.Result)
	assert.Equal(t, int64(10), v.MaxFileMB)
}

func TestBuildPageViewRunning(t *testing.T) {
	snap := idleSnapshot()
	snap.Resume = &models.ResumeFile{Filename: "jane.pdf"}
	snap.Notify = models.Running[models.NotifyOutcome]()

	v := buildPageView(snap, 1)
	assert.True(t, v.Refresh)
	assert.True(t, v.Notify.Running)
	assert.False(t, v.Notify.Enabled)

	snap.Notify = models.Idle[models.NotifyOutcome]()
	snap.Match = models.Running[models.MatchResult]()
	v = buildPageView(snap, 1)
	assert.True(t, v.Refresh)
	assert.True(t, v.Notify.Enabled)
}

func TestBuildPageViewResult(t *testing.T) {
	snap := idleSnapshot()
	result := models.MatchResult{Match: "62.5", Summary: "Decent"}
	snap.Match = models.Succeeded(result)
	snap.LastResult = &result

	v := buildPageView(snap, 1)
	if assert.NotNil(t, v.Match.Result) {
		assert.Equal(t, services.BandModerate, v.Match.Result.Band)
		assert.Equal(t, "yellow", v.Match.Result.Token)
		assert.Equal(t, "62.5", v.Match.Result.Match)
	}
}

func TestBuildPageViewRejectedSubmitKeepsResult(t *testing.T) {
	snap := idleSnapshot()
	snap.Match = models.Failed[models.MatchResult]("Please enter a job description.")
	snap.LastResult = &models.MatchResult{Match: "85", Summary: "Good fit"}

	v := buildPageView(snap, 1)
	assert.Equal(t, "Please enter a job description.", v.Match.Error)
	if assert.NotNil(t, v.Match.Result) {
		assert.Equal(t, "green", v.Match.Result.Token)
	}
}

func TestBuildPageViewFailures(t *testing.T) {
	snap := idleSnapshot()
	snap.Match = models.Failed[models.MatchResult]("Error: 500")
	snap.Notify = models.Failed[models.NotifyOutcome]("No email found in the resume")

	v := buildPageView(snap, 1)
	assert.Equal(t, "Error: 500", v.Match.Error)
	assert.Equal(t, "No email found in the resume", v.Notify.Error)
	assert.Empty(t, v.Notify.SentTo)
}

func TestBuildPageViewUnknownStatusPanics(t *testing.T) {
	snap := idleSnapshot()
	snap.Match.Status = "paused"

	assert.Panics(t, func() { buildPageView(snap, 1) })
}
