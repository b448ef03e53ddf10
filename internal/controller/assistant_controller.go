package controller

import (
	"ai-docassist-be/internal/dto"
	"ai-docassist-be/internal/pkg/serverutils"
	"ai-docassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	jwtSecret        string
}

func NewAssistantController(assistantService service.IAssistantService, jwtSecret string) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		jwtSecret:        jwtSecret,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.NewJwtMiddleware(c.jwtSecret))
	h.Post("/ask", c.Ask)
	h.Get("/history/:session_id", c.History)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result := c.assistantService.ProcessQuery(ctx.Context(), req.SessionId, req.Query)

	res := &dto.AskResponse{
		SessionId: req.SessionId,
		Result:    result,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process query", res))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	turns := c.assistantService.GetHistory(sessionID)

	res := &dto.GetHistoryResponse{
		SessionId: sessionID,
		Turns:     make([]dto.HistoryTurnDTO, 0, len(turns)),
	}
	for _, turn := range turns {
		res.Turns = append(res.Turns, dto.HistoryTurnDTO{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}
