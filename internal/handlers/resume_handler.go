package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

const resumeField = "resume"

type ResumeHandler struct {
	orchestrator services.Orchestrator
	maxFileSize  int64
}

func NewResumeHandler(orchestrator services.Orchestrator, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		orchestrator: orchestrator,
		maxFileSize:  maxFileSize,
	}
}

// HandleSelect handles POST /resume
func (h *ResumeHandler) HandleSelect(c *fiber.Ctx) error {
	if _, err := h.selectFrom(c); err != nil && !isUserError(err) {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleRemove handles POST /resume/remove
func (h *ResumeHandler) HandleRemove(c *fiber.Ctx) error {
	h.orchestrator.RemoveResume(currentSession(c))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleSelectAPI handles POST /api/v1/resume
func (h *ResumeHandler) HandleSelectAPI(c *fiber.Ctx) error {
	resume, err := h.selectFrom(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.ResumeResponse{
		Message: "Resume selected",
		Resume:  resume,
	})
}

// HandleRemoveAPI handles DELETE /api/v1/resume
func (h *ResumeHandler) HandleRemoveAPI(c *fiber.Ctx) error {
	h.orchestrator.RemoveResume(currentSession(c))
	return c.JSON(models.ResumeResponse{
		Message: "Resume removed",
	})
}

// selectFrom runs the selection for the request's "resume" file. A
// request without one is recorded like any other refused selection.
func (h *ResumeHandler) selectFrom(c *fiber.Ctx) (*models.ResumeFile, error) {
	file, err := c.FormFile(resumeField)
	if err != nil {
		h.orchestrator.RejectResume(currentSession(c), errNoFile.message)
		return nil, errNoFile
	}
	return h.selectFile(c, file)
}

// selectOptional selects the request's resume file when one was sent.
func (h *ResumeHandler) selectOptional(c *fiber.Ctx) error {
	file, err := c.FormFile(resumeField)
	if err != nil {
		return nil
	}
	_, err = h.selectFile(c, file)
	return err
}

func (h *ResumeHandler) selectFile(c *fiber.Ctx, file *multipart.FileHeader) (*models.ResumeFile, error) {
	session := currentSession(c)

	if file.Size > h.maxFileSize {
		err := &userError{status: fiber.StatusBadRequest, message: h.tooLarge()}
		h.orchestrator.RejectResume(session, err.message)
		return nil, err
	}

	upload, err := readUpload(file, h.maxFileSize)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file")
	}

	resume, err := h.orchestrator.SelectResume(session, upload)
	if err != nil {
		if errors.Is(err, services.ErrWrongType) {
			return nil, &userError{status: fiber.StatusUnsupportedMediaType, message: err.Error()}
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to store resume")
	}

	return resume, nil
}

// rejectOversized records a too-large upload on the session named by the
// request cookie. It reports false when there is no such session.
func (h *ResumeHandler) rejectOversized(c *fiber.Ctx) bool {
	id := c.Cookies(SessionCookie)
	if id == "" {
		return false
	}

	session, err := h.orchestrator.GetSession(id)
	if err != nil {
		return false
	}

	h.orchestrator.RejectResume(session, h.tooLarge())
	return true
}

func (h *ResumeHandler) tooLarge() string {
	return fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize)
}

func readUpload(file *multipart.FileHeader, limit int64) (models.ResumeUpload, error) {
	src, err := file.Open()
	if err != nil {
		return models.ResumeUpload{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return models.ResumeUpload{}, err
	}
	if int64(len(data)) > limit {
		return models.ResumeUpload{}, fmt.Errorf("file exceeds %d bytes", limit)
	}

	return models.ResumeUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
