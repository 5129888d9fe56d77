package handler

import (
	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/service/export"
)

type ExportHandler struct {
	exportSvc export.Service
}

func NewExportHandler(exportSvc export.Service) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportLeads uploads the caller's visible leads as CSV and answers with a
// presigned download link. It takes the same filters as the lead listing.
func (h *ExportHandler) ExportLeads(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	filter, err := leadFilter(c)
	if err != nil {
		return err
	}

	result, err := h.exportSvc.ExportLeads(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
