package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

// Orchestrator owns the sessions behind the form and drives the two
// request flows for them: match (score the resume against the job
// description) and notify (extract the candidate's address, render the
// result email, deliver it).
type Orchestrator interface {
	NewSession() (*models.Session, error)
	GetSession(id string) (*models.Session, error)
	EndSession(session *models.Session) error
	EndIdleSessions(ttl time.Duration) int
	EndAllSessions() int

	SelectResume(session *models.Session, upload models.ResumeUpload) (*models.ResumeFile, error)
	RejectResume(session *models.Session, reason string)
	RemoveResume(session *models.Session)
	StartMatch(session *models.Session, description string) error
	StartNotify(session *models.Session) error
}

var errWorkerStopped = errors.New("worker stopped")

type orchestrator struct {
	sessions repositories.SessionRepository
	storage  StorageService
	pdf      PDFInspector
	scoring  ScoringClient
	notifier NotifierClient
	renderer EmailRenderer
	worker   Worker
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrchestrator(
	sessions repositories.SessionRepository,
	storage StorageService,
	pdf PDFInspector,
	scoring ScoringClient,
	notifier NotifierClient,
	renderer EmailRenderer,
	worker Worker,
	logger *zap.Logger,
) Orchestrator {
	return &orchestrator{
		sessions: sessions,
		storage:  storage,
		pdf:      pdf,
		scoring:  scoring,
		notifier: notifier,
		renderer: renderer,
		worker:   worker,
		logger:   logger,
		now:      time.Now,
	}
}

func (o *orchestrator) NewSession() (*models.Session, error) {
	session := models.NewSession(uuid.New().String(), o.now())
	if err := o.sessions.Create(session); err != nil {
		return nil, err
	}

	o.logger.Debug("session created", zap.String("session", session.ID))
	return session, nil
}

func (o *orchestrator) GetSession(id string) (*models.Session, error) {
	session, err := o.sessions.FindByID(id)
	if err != nil {
		return nil, err
	}

	session.Touch(o.now())
	return session, nil
}

// EndSession aborts the session's in-flight requests, removes its stored
// resume and forgets it.
func (o *orchestrator) EndSession(session *models.Session) error {
	o.discard(session.End())

	if err := o.sessions.Delete(session.ID); err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
		return err
	}

	o.logger.Debug("session ended", zap.String("session", session.ID))
	return nil
}

func (o *orchestrator) EndIdleSessions(ttl time.Duration) int {
	idle := o.sessions.FindIdle(o.now().Add(-ttl))
	for _, session := range idle {
		if err := o.EndSession(session); err != nil {
			o.logger.Warn("failed to end idle session", zap.String("session", session.ID), zap.Error(err))
		}
	}
	return len(idle)
}

func (o *orchestrator) EndAllSessions() int {
	all := o.sessions.FindAll()
	for _, session := range all {
		if err := o.EndSession(session); err != nil {
			o.logger.Warn("failed to end session", zap.String("session", session.ID), zap.Error(err))
		}
	}
	return len(all)
}

// SelectResume puts an uploaded file into the session's resume slot. A
// file whose declared media type is not PDF empties the slot instead and
// records the type error.
func (o *orchestrator) SelectResume(session *models.Session, upload models.ResumeUpload) (*models.ResumeFile, error) {
	if err := ValidateResumeType(upload.ContentType); err != nil {
		o.discard(session.RejectResume(err.Error()))
		return nil, err
	}

	storedName, path, err := o.storage.SaveResume(upload.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	pages, err := o.pdf.PageCount(path)
	if err != nil {
		o.logger.Warn("could not read resume pages", zap.String("session", session.ID), zap.Error(err))
	}

	resume := &models.ResumeFile{
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		Size:        int64(len(upload.Data)),
		StoredName:  storedName,
		Path:        path,
		PageCount:   pages,
		SelectedAt:  o.now(),
	}

	o.discard(session.SelectResume(resume))
	if session.Ended() {
		o.discard(session.RemoveResume())
	}

	o.logger.Info("resume selected",
		zap.String("session", session.ID),
		zap.String("filename", resume.Filename),
		zap.Int64("size", resume.Size),
		zap.Int("pages", resume.PageCount),
	)
	return resume, nil
}

// RejectResume empties the resume slot for a selection refused before it
// reached the type check, such as an oversized upload.
func (o *orchestrator) RejectResume(session *models.Session, reason string) {
	o.discard(session.RejectResume(reason))
}

func (o *orchestrator) RemoveResume(session *models.Session) {
	o.discard(session.RemoveResume())
}

// StartMatch validates the form and, if valid, queues the scoring request.
// It returns ErrFlowBusy without side effects while a match is running.
func (o *orchestrator) StartMatch(session *models.Session, description string) error {
	resume, err := session.BeginMatch(description, ValidateSubmission)
	if err != nil {
		return err
	}

	body, err := o.storage.Open(resume.StoredName)
	if err != nil {
		o.failMatch(session, err)
		return nil
	}

	job := Job{
		Name: "match:" + session.ID,
		Run: func(ctx context.Context) {
			defer body.Close()
			o.runMatch(ctx, session, description, payloadFor(resume, body))
		},
		Drop: func() {
			body.Close()
			o.failMatch(session, errWorkerStopped)
		},
	}
	if !o.worker.EnqueueJob(job) {
		job.Drop()
	}

	return nil
}

func (o *orchestrator) runMatch(workerCtx context.Context, session *models.Session, description string, resume ResumePayload) {
	ctx, cancel := sessionScope(workerCtx, session)
	defer cancel()

	result, err := o.scoring.Score(ctx, description, resume)
	if err != nil {
		o.failMatch(session, err)
		return
	}

	if session.FinishMatch(models.Succeeded(*result)) {
		o.logger.Info("match scored",
			zap.String("session", session.ID),
			zap.String("match", result.Match),
			zap.String("band", string(BandFor(result.Match))),
			zap.String("summary", logger.TruncateForLog(result.Summary, 80)),
		)
	}
}

func (o *orchestrator) failMatch(session *models.Session, err error) {
	reason := UserMessage(err, msgMatchFailed)
	if session.FinishMatch(models.Failed[models.MatchResult](reason)) {
		o.logger.Warn("match failed", zap.String("session", session.ID), zap.String("reason", reason), zap.Error(err))
	}
}

// StartNotify queues the notify flow: extract the address from the
// selected resume, render the email from the last match result, send it.
// It returns ErrFlowBusy without side effects while a notify is running.
func (o *orchestrator) StartNotify(session *models.Session) error {
	resume, last, err := session.BeginNotify(validateNotify)
	if err != nil {
		return err
	}

	body, err := o.storage.Open(resume.StoredName)
	if err != nil {
		o.failNotify(session, err)
		return nil
	}

	job := Job{
		Name: "notify:" + session.ID,
		Run: func(ctx context.Context) {
			defer body.Close()
			o.runNotify(ctx, session, payloadFor(resume, body), last)
		},
		Drop: func() {
			body.Close()
			o.failNotify(session, errWorkerStopped)
		},
	}
	if !o.worker.EnqueueJob(job) {
		job.Drop()
	}

	return nil
}

func (o *orchestrator) runNotify(workerCtx context.Context, session *models.Session, resume ResumePayload, last *models.MatchResult) {
	ctx, cancel := sessionScope(workerCtx, session)
	defer cancel()

	email, err := o.notifier.Analyze(ctx, resume)
	if err != nil {
		o.failNotify(session, err)
		return
	}

	message, err := o.renderer.Render(last)
	if err != nil {
		o.failNotify(session, err)
		return
	}

	err = o.notifier.SendEmail(ctx, models.SendEmailRequest{
		Email:   email,
		Subject: ResultEmailSubject,
		Message: message,
	})
	if err != nil {
		o.failNotify(session, err)
		return
	}

	if session.FinishNotify(models.Succeeded(models.NotifyOutcome{Email: email})) {
		o.logger.Info("result email sent", zap.String("session", session.ID), zap.Bool("with_score", last != nil))
	}
}

func (o *orchestrator) failNotify(session *models.Session, err error) {
	reason := UserMessage(err, msgNotifyFailed)
	if session.FinishNotify(models.Failed[models.NotifyOutcome](reason)) {
		o.logger.Warn("notify failed", zap.String("session", session.ID), zap.String("reason", reason), zap.Error(err))
	}
}

// discard removes the stored bytes of a resume that left its slot.
func (o *orchestrator) discard(resume *models.ResumeFile) {
	if resume == nil || resume.StoredName == "" {
		return
	}
	if err := o.storage.DeleteFile(resume.StoredName); err != nil && !errors.Is(err, os.ErrNotExist) {
		o.logger.Warn("failed to delete stored resume", zap.String("file", resume.StoredName), zap.Error(err))
	}
}

// sessionScope derives a request context that is cancelled when either the
// worker shuts down or the session ends.
func sessionScope(workerCtx context.Context, session *models.Session) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(session.Context())
	stop := context.AfterFunc(workerCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
