package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "advising/internal/errors"
	"advising/internal/model"
	"advising/internal/service"
)

// MessageHandler serves messaging between students and staff.
type MessageHandler struct {
	messages service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messages service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// SendMessageRequest represents a message to send.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid"`
	Content     string `json:"content" validate:"required,max=2000"`
}

// ConversationResponse is the caller's messages and who they may write to.
type ConversationResponse struct {
	Messages []model.Message `json:"messages"`
	Contacts []model.User    `json:"contacts"`
}

// Conversation godoc
// @Summary List my messages
// @Description Messages sent or received by the caller, oldest first, plus the people the caller may message.
// @Tags messages
// @Produce json
// @Success 200 {object} ConversationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /student/messages [get]
// @Router /advisor/messages [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	id, userID, err := identityWithID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	messages, err := h.messages.Conversation(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	contacts, err := h.messages.Contacts(ctx, *id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ConversationResponse{Messages: messages, Contacts: contacts})
}

// Send godoc
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /student/messages [post]
// @Router /advisor/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	id, _, err := identityWithID(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	message, err := h.messages.Send(c.Request().Context(), *id, uuid.MustParse(req.RecipientID), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, message)
}

// Recent godoc
// @Summary List recent messages across the platform
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum messages (default 20, max 100)"
// @Success 200 {array} model.Message
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /admin/messages [get]
func (h *MessageHandler) Recent(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return fail(c, apperrors.Validation("limit must be a number"))
	}

	messages, err := h.messages.Recent(c.Request().Context(), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}
