package controller

import (
	"strconv"
	"strings"

	"curio-be/internal/dto"
	"curio-be/internal/pkg/serverutils"
	"curio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
	OpenQuestion(ctx *fiber.Ctx) error
	CloseQuestion(ctx *fiber.Ctx) error
	Popstate(ctx *fiber.Ctx) error
	KeyPress(ctx *fiber.Ctx) error
	Simplify(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	suggestionCap  int
}

func NewSessionController(sessionService service.ISessionService, suggestionCap int) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		suggestionCap:  suggestionCap,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/suggest", c.Suggest)

	h := r.Group("/session")
	h.Post("", c.Start)
	h.Get(":id", c.Show)
	h.Post(":id/search", c.Search)
	h.Post(":id/questions/:index/open", c.OpenQuestion)
	h.Post(":id/close", c.CloseQuestion)
	h.Post(":id/popstate", c.Popstate)
	h.Post(":id/key", c.KeyPress)
	h.Post(":id/simplify", c.Simplify)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Start(ctx.Context(), req.Query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetState(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Submit(ctx.Context(), ctx.Params("id"), req.Query)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success run search", res))
}

func (c *sessionController) Suggest(ctx *fiber.Ctx) error {
	term := strings.TrimSpace(ctx.Query("term"))
	if term == "" {
		return ctx.JSON(serverutils.SuccessResponse("Success suggest", dto.SuggestResponse{Suggestions: []string{}}))
	}
	max := ctx.QueryInt("max", c.suggestionCap)
	if max <= 0 || max > c.suggestionCap {
		max = c.suggestionCap
	}

	suggestions := c.sessionService.Suggest(ctx.Context(), term, max)
	if suggestions == nil {
		suggestions = []string{}
	}
	return ctx.JSON(serverutils.SuccessResponse("Success suggest", dto.SuggestResponse{Suggestions: suggestions}))
}

func (c *sessionController) OpenQuestion(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid question index")
	}

	res, err := c.sessionService.OpenQuestion(ctx.Context(), ctx.Params("id"), index)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success open question", res))
}

func (c *sessionController) CloseQuestion(ctx *fiber.Ctx) error {
	res, err := c.sessionService.CloseQuestion(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success close question", res))
}

func (c *sessionController) Popstate(ctx *fiber.Ctx) error {
	var req dto.PopstateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Popstate(ctx.Context(), ctx.Params("id"), req.EntryIndex)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply popstate", res))
}

func (c *sessionController) KeyPress(ctx *fiber.Ctx) error {
	var req dto.KeyPressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.KeyPress(ctx.Context(), ctx.Params("id"), req.Key)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success handle key", res))
}

func (c *sessionController) Simplify(ctx *fiber.Ctx) error {
	var req dto.SimplifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	eli5 := c.sessionService.Simplify(ctx.Context(), req.Text, req.TitleHint)
	return ctx.JSON(serverutils.SuccessResponse("Success simplify", dto.SimplifyResponse{Eli5: eli5}))
}
