package controller

import (
	"brainmode-be/internal/dto"
	"brainmode-be/internal/pkg/serverutils"
	"brainmode-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContextController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	Clone(ctx *fiber.Ctx) error
	ApplyResponse(ctx *fiber.Ctx) error
	SetFields(ctx *fiber.Ctx) error
	CheckGuard(ctx *fiber.Ctx) error
	CheckHeight(ctx *fiber.Ctx) error
	PutAtoms(ctx *fiber.Ctx) error
	VisibleAtoms(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
}

type contextController struct {
	service service.IContextService
}

func NewContextController(service service.IContextService) IContextController {
	return &contextController{service: service}
}

func (c *contextController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/context/v1")
	h.Use(auth)
	h.Post("", c.Open)
	h.Get("height/:height", c.CheckHeight)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Close)
	h.Patch(":id", c.SetFields)
	h.Post(":id/clone", c.Clone)
	h.Post(":id/response", c.ApplyResponse)
	h.Get(":id/guard/:name", c.CheckGuard)
	h.Put(":id/atoms", c.PutAtoms)
	h.Get(":id/atoms", c.VisibleAtoms)

	m := r.Group("/messages/v1")
	m.Use(auth)
	m.Get("", c.Messages)
}

func badRequest(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

func (c *contextController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenContextRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return badRequest(err)
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Open(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open context", res))
}

func (c *contextController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show context", res))
}

func (c *contextController) Close(ctx *fiber.Ctx) error {
	if err := c.service.Close(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success close context", nil))
}

func (c *contextController) Clone(ctx *fiber.Ctx) error {
	var req dto.CloneContextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Clone(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success clone context", res))
}

// ApplyResponse takes the graph server's reply verbatim.
func (c *contextController) ApplyResponse(ctx *fiber.Ctx) error {
	res, err := c.service.ApplyResponse(ctx.Context(), ctx.Params("id"), ctx.Body())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success parse response", res))
}

func (c *contextController) SetFields(ctx *fiber.Ctx) error {
	var req dto.SetFieldsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	res, err := c.service.SetFields(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update context", res))
}

func (c *contextController) CheckGuard(ctx *fiber.Ctx) error {
	res, err := c.service.CheckGuard(ctx.Context(), ctx.Params("id"), ctx.Params("name"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Guard passed", res))
}

func (c *contextController) CheckHeight(ctx *fiber.Ctx) error {
	height, err := ctx.ParamsInt("height")
	if err != nil {
		return badRequest(err)
	}

	res, err := c.service.CheckHeight(height)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Height in bounds", res))
}

func (c *contextController) PutAtoms(ctx *fiber.Ctx) error {
	var req dto.PutAtomsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.PutAtoms(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cache atoms", res))
}

func (c *contextController) VisibleAtoms(ctx *fiber.Ctx) error {
	res, err := c.service.VisibleAtoms(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get visible atoms", res))
}

func (c *contextController) Messages(ctx *fiber.Ctx) error {
	res, err := c.service.Messages(ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}
