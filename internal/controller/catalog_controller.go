package controller

import (
	"scent-advisor-be/internal/pkg/serverutils"
	"scent-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products/v1")
	h.Get("", c.GetAll)
	h.Get("/:slug", c.Show)
}

func (c *catalogController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all products", res))
}

func (c *catalogController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetBySlug(ctx.UserContext(), ctx.Params("slug"))
	if err != nil {
		return translateAdvisorError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get product", res))
}
