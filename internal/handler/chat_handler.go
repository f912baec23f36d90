package handler

import (
	"net/http"

	"hospital-management/internal/chat"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	responder *chat.Responder
}

func NewChatHandler(responder *chat.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers a widget message with a bare {response, actions} body
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.responder.Respond(req.Message))
}
