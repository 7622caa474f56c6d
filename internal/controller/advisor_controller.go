package controller

import (
	"errors"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/dto"
	"scent-advisor-be/internal/pkg/serverutils"
	"scent-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdvisorController interface {
	RegisterRoutes(r fiber.Router, rateLimit fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type advisorController struct {
	service service.IAdvisorService
}

func NewAdvisorController(service service.IAdvisorService) IAdvisorController {
	return &advisorController{service: service}
}

func (c *advisorController) RegisterRoutes(r fiber.Router, rateLimit fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Post("/session", c.CreateSession)
	h.Post("/message", rateLimit, c.SendMessage)
	h.Get("/session/:id/messages", c.GetHistory)
}

func (c *advisorController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constant.InvalidRequestMessage)
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), &req)
	if err != nil {
		return translateAdvisorError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *advisorController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constant.InvalidRequestMessage)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), &req)
	if err != nil {
		return translateAdvisorError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *advisorController) GetHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, constant.InvalidRequestMessage)
	}

	res, err := c.service.GetHistory(ctx.UserContext(), id)
	if err != nil {
		return translateAdvisorError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func translateAdvisorError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Session introuvable.")
	case errors.Is(err, service.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Création introuvable.")
	case errors.Is(err, service.ErrInvalidStep):
		return fiber.NewError(fiber.StatusBadRequest, constant.InvalidRequestMessage)
	default:
		return err
	}
}
