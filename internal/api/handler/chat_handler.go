package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/service"
)

// ChatHandler serves the FAQ chatbot endpoint. Unlike the v1 API it does
// not use the response envelope: the chat widget consumes {reply} and
// {error} shapes directly.
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Chat relays a question to the assistant.
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ChatErrorResponse{Error: "Invalid request body."})
		return
	}

	result, err := h.chatSvc.Reply(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrChatMessageRequired) {
			c.JSON(http.StatusBadRequest, dto.ChatErrorResponse{Error: err.Error()})
			return
		}
		// configuration and upstream failures are already user-safe
		c.JSON(http.StatusInternalServerError, dto.ChatErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
