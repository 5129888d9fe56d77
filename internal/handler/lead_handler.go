package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/middleware"
	"leadtrack-crm/internal/service/lead"
)

type LeadHandler struct {
	leadService lead.Service
}

func NewLeadHandler(leadService lead.Service) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) Create(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateLeadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.leadService.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *LeadHandler) List(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	filter, err := leadFilter(c)
	if err != nil {
		return err
	}

	result, err := h.leadService.List(c.UserContext(), actor, filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *LeadHandler) Get(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	found, err := h.leadService.GetByID(c.UserContext(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(found)
}

func (h *LeadHandler) Update(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	var input domain.UpdateLeadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.leadService.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	if err := h.leadService.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *LeadHandler) AddNote(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	var input domain.CreateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	note, err := h.leadService.AddNote(c.UserContext(), actor, leadID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *LeadHandler) ListNotes(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	notes, err := h.leadService.ListNotes(c.UserContext(), actor, leadID)
	if err != nil {
		return err
	}

	return c.JSON(notes)
}

func (h *LeadHandler) UpdateNote(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}
	noteID, err := paramID(c, "noteId", "note")
	if err != nil {
		return err
	}

	var input domain.UpdateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	note, err := h.leadService.UpdateNote(c.UserContext(), actor, leadID, noteID, input)
	if err != nil {
		return err
	}

	return c.JSON(note)
}

func (h *LeadHandler) ListActivities(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	result, err := h.leadService.ListActivities(c.UserContext(), actor, leadID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *LeadHandler) LogEmail(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	var input domain.LogEmailInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	logged, err := h.leadService.LogEmail(c.UserContext(), actor, leadID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(logged)
}

func (h *LeadHandler) ListEmails(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	emails, err := h.leadService.ListEmails(c.UserContext(), actor, leadID)
	if err != nil {
		return err
	}

	return c.JSON(emails)
}

func (h *LeadHandler) SendEmail(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	leadID, err := paramID(c, "id", "lead")
	if err != nil {
		return err
	}

	var input domain.SendEmailInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.leadService.SendEmail(c.UserContext(), actor, leadID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func leadFilter(c *fiber.Ctx) (domain.LeadFilter, error) {
	filter := domain.LeadFilter{
		Search: c.Query("search"),
		Status: domain.LeadStatus(c.Query("status")),
	}

	var err error
	if filter.StartDate, err = queryTime(c, "start_date"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = queryTime(c, "end_date"); err != nil {
		return filter, err
	}

	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, domain.NewValidationError("assigned_to", "must be a user id")
		}
		filter.AssignedTo = &id
	}

	return filter, nil
}
