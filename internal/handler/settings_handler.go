package handler

import (
	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/middleware"
	"leadtrack-crm/internal/service/settings"
)

type SettingsHandler struct {
	settingsService settings.Service
}

func NewSettingsHandler(settingsService settings.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) List(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.settingsService.List(c.UserContext(), actor)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settingsService.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}

	return c.JSON(setting)
}

// Update takes a flat JSON object of key/value pairs.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var values map[string]string
	if err := c.BodyParser(&values); err != nil {
		return middleware.BadRequest("Settings must be a JSON object of string values")
	}

	result, err := h.settingsService.Update(c.UserContext(), actor, values)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *SettingsHandler) Initialize(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.settingsService.Initialize(c.UserContext(), actor)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
