package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// MessageHandler handles the messaging endpoints backing the support chat.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	Text        string `json:"text"         validate:"required,min=1,max=2000"`
	RecipientID string `json:"recipient_id"`
}

type broadcastRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// List handles GET /v1/messages — the caller's conversation, or every user
// submission for admins.
func (h *MessageHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	messages, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OK(messages))
}

// Send handles POST /v1/messages.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message body"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), actor, ports.SendMessageInput{
		Text:        req.Text,
		RecipientID: req.RecipientID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK(msg))
}

// Broadcast handles POST /v1/messages/broadcast — admin only.
func (h *MessageHandler) Broadcast(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.service.Broadcast(c.Request().Context(), actor, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OK(msg))
}

// MarkRead handles PUT /v1/messages/:id/read — admin read receipt.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OKMessage("message marked as read"))
}
