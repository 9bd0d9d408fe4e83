package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var pageFS embed.FS

type PageHandler struct {
	tmpl        *template.Template
	maxFileSize int64
}

func NewPageHandler(maxFileSize int64) (*PageHandler, error) {
	tmpl, err := template.ParseFS(pageFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &PageHandler{
		tmpl:        tmpl,
		maxFileSize: maxFileSize,
	}, nil
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	view := buildPageView(currentSession(c).Snapshot(), h.maxFileSize)

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
