package handler

import (
	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/middleware"
	"leadtrack-crm/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Role == "" {
		input.Role = domain.RoleTeamMember
	}

	created, err := h.userService.Register(c.UserContext(), actor, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.userService.List(c.UserContext(), actor, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}
